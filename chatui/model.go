// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// FocusRegion identifies where keyboard input routes.
type FocusRegion int

const (
	// FocusChannels means navigation keys move the channel cursor.
	FocusChannels FocusRegion = iota
	// FocusMessages means navigation keys move the message cursor.
	FocusMessages
	// FocusCompose means keystrokes go to the message input.
	FocusCompose
	// FocusFilter means keystrokes go to the channel filter input.
	FocusFilter
	// FocusModal means a modal overlay is active and all input
	// routes to it until submitted or dismissed.
	FocusModal
)

// modalKind identifies which overlay is open.
type modalKind int

const (
	modalNone modalKind = iota
	modalChannelCreate
	modalChannelEdit
	modalMessageEdit
	modalReact
	modalInvite
	modalProfileView
	modalProfileEdit
	modalConfirmDelete
	modalConfirmLeave
)

// messagePageSize mirrors api.MessagePageSize. A shorter page
// means the channel history is exhausted.
const messagePageSize = api.MessagePageSize

// errorFadeDelay is how long a failure notice stays in the status bar.
const errorFadeDelay = 4 * time.Second

// Model is the top-level bubbletea model for the chat TUI. It is a
// reducer: Update never blocks and never calls the network directly;
// all requests run inside tea.Cmd closures and come back as typed
// messages.
type Model struct {
	ctx     context.Context
	session *api.Session
	theme   Theme
	keys    KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	focus      FocusRegion
	priorFocus FocusRegion // Saved focus when entering filter or a modal.

	// Channel pane.
	channels      []api.Channel
	filter        FilterModel
	channelRows   []channelRow
	channelCursor int
	channelScroll int

	// Active channel.
	activeChannel ident.ChannelID
	details       *api.ChannelDetails

	// Message pane. fetched accumulates wire-order (newest-first)
	// pages; nextStart is the offset for the next older page.
	fetched       []api.Message
	nextStart     int
	allLoaded     bool
	messageCursor int
	messageScroll int

	// Compose input.
	compose string

	// Modal state. Exactly one of form, picker, confirm, or profile
	// is live, selected by modal.
	modal        modalKind
	form         *FormModal
	picker       *PickerModal
	confirm      *ConfirmModal
	profile      *api.UserProfile
	editTarget   ident.MessageID
	editOriginal string
	deleteTarget ident.MessageID
	leaveTarget  ident.ChannelID

	// User directory: emails from the all-users listing, display
	// names filled lazily from fetched profiles.
	emails map[ident.UserID]string
	names  map[ident.UserID]string

	errorNotice string

	// Background log record surfaced in the status bar (from LogHandler).
	logNotice string
	logLevel  slog.Level
}

// NewModel creates a Model over an authenticated session. The context
// bounds every request the TUI issues; cancel it to abort in-flight
// work on shutdown.
func NewModel(ctx context.Context, session *api.Session) Model {
	return Model{
		ctx:     ctx,
		session: session,
		theme:   DefaultTheme,
		keys:    DefaultKeyMap,
		emails:  make(map[ident.UserID]string),
		names:   make(map[ident.UserID]string),
	}
}

// Init implements tea.Model: load the channel list and the user
// directory up front.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		loadChannels(model.ctx, model.session),
		loadUsers(model.ctx, model.session),
	)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case channelsLoadedMsg:
		if message.err != nil {
			return model, model.setError(message.err)
		}
		model.channels = message.channels
		model.rebuildRows()

	case channelDetailsLoadedMsg:
		if message.err != nil {
			return model, model.setError(message.err)
		}
		if message.channelID == model.activeChannel {
			model.details = message.details
		}

	case messagesLoadedMsg:
		if message.err != nil {
			return model, model.setError(message.err)
		}
		if message.channelID != model.activeChannel {
			break // Stale response for a channel no longer open.
		}
		if message.replace {
			model.fetched = message.page.Messages
			model.messageCursor = 0
			model.messageScroll = 0
		} else {
			model.fetched = append(model.fetched, message.page.Messages...)
		}
		model.nextStart = message.page.Start + len(message.page.Messages)
		model.allLoaded = len(message.page.Messages) < messagePageSize
		return model, model.fetchMissingProfiles()

	case usersLoadedMsg:
		if message.err != nil {
			return model, model.setError(message.err)
		}
		for _, user := range message.users {
			model.emails[user.ID] = user.Email
		}

	case profileLoadedMsg:
		if message.err != nil {
			return model, model.setError(message.err)
		}
		model.names[message.userID] = message.profile.Name
		if message.display {
			model.profile = message.profile
			model.openModal(modalProfileView)
		}

	case mutationDoneMsg:
		if message.err != nil {
			return model, model.setError(message.err)
		}
		switch message.refresh {
		case refreshChannels:
			return model, loadChannels(model.ctx, model.session)
		case refreshMessages:
			return model, tea.Batch(
				loadMessages(model.ctx, model.session, model.activeChannel, 0),
				loadChannelDetails(model.ctx, model.session, model.activeChannel),
			)
		case refreshChannelDetails:
			return model, tea.Batch(
				loadChannels(model.ctx, model.session),
				loadChannelDetails(model.ctx, model.session, model.activeChannel),
			)
		}

	case errorFadeMsg:
		model.errorNotice = ""

	case logRecordMsg:
		model.logNotice = message.Summary
		model.logLevel = message.Level
		return model, tea.Tick(errorFadeDelay, func(time.Time) tea.Msg {
			return logFadeMsg{}
		})

	case logFadeMsg:
		model.logNotice = ""
	}
	return model, nil
}

// setError records a failure notice and schedules its fade-out. The
// server's message is shown verbatim.
func (model *Model) setError(err error) tea.Cmd {
	model.errorNotice = err.Error()
	return tea.Tick(errorFadeDelay, func(time.Time) tea.Msg {
		return errorFadeMsg{}
	})
}

// fetchMissingProfiles returns a batch that resolves display names
// for message senders not yet in the cache.
func (model *Model) fetchMissingProfiles() tea.Cmd {
	seen := make(map[ident.UserID]bool)
	var cmds []tea.Cmd
	for _, message := range model.fetched {
		if seen[message.Sender] {
			continue
		}
		seen[message.Sender] = true
		if _, cached := model.names[message.Sender]; !cached {
			cmds = append(cmds, loadProfile(model.ctx, model.session, message.Sender, false))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// senderName resolves a user ID for display: profile name, then
// email, then the bare ID while a profile fetch is in flight.
func (model *Model) senderName(userID ident.UserID) string {
	if name := model.names[userID]; name != "" {
		return name
	}
	if email := model.emails[userID]; email != "" {
		return email
	}
	return "user " + userID.String()
}

// displayMessages returns the message pane's render order: the pinned
// section first, then the regular chronological flow.
func (model *Model) displayMessages() []api.Message {
	pinned, rest := SplitPinned(DisplayOrder(model.fetched))
	return append(pinned, rest...)
}

// selectedMessage returns the message under the cursor, or nil.
func (model *Model) selectedMessage() *api.Message {
	display := model.displayMessages()
	if model.messageCursor < 0 || model.messageCursor >= len(display) {
		return nil
	}
	return &display[model.messageCursor]
}

// selectedChannel returns the channel row under the cursor, or nil
// for headers and empty lists.
func (model *Model) selectedChannel() *channelRow {
	if model.channelCursor < 0 || model.channelCursor >= len(model.channelRows) {
		return nil
	}
	row := &model.channelRows[model.channelCursor]
	if row.IsHeader {
		return nil
	}
	return row
}

// rebuildRows recomputes the channel pane rows from the fetched list
// and the active filter, then clamps the cursor onto a channel row.
func (model *Model) rebuildRows() {
	partition := PartitionChannels(model.channels)
	self := model.session.UserID()

	if model.filter.Input == "" {
		model.channelRows = buildChannelRows(partition, self)
	} else {
		var rows []channelRow
		appendMatches := func(header string, matches []ChannelMatch) {
			if len(matches) == 0 {
				return
			}
			rows = append(rows, channelRow{IsHeader: true, Header: header})
			for _, match := range matches {
				rows = append(rows, channelRow{
					Channel:        match.Channel,
					Joined:         IsMember(match.Channel, self),
					MatchPositions: match.Positions,
				})
			}
		}
		appendMatches("Public Channels", model.filter.ApplyFuzzy(partition.Public))
		appendMatches("Private Channels", model.filter.ApplyFuzzy(partition.Private))
		model.channelRows = rows
	}

	if model.channelCursor >= len(model.channelRows) {
		model.channelCursor = len(model.channelRows) - 1
	}
	if model.channelCursor < 0 {
		model.channelCursor = 0
	}
	// Never rest on a header.
	for model.channelCursor < len(model.channelRows) && model.channelRows[model.channelCursor].IsHeader {
		model.channelCursor++
	}
	if model.channelCursor >= len(model.channelRows) {
		model.channelCursor = 0
	}
}

// openModal switches focus to a modal overlay, remembering where to
// return on dismiss.
func (model *Model) openModal(kind modalKind) {
	if model.focus != FocusModal {
		model.priorFocus = model.focus
	}
	model.modal = kind
	model.focus = FocusModal
}

// closeModal tears down whichever overlay is live and restores focus.
func (model *Model) closeModal() {
	model.modal = modalNone
	model.form = nil
	model.picker = nil
	model.confirm = nil
	model.profile = nil
	model.focus = model.priorFocus
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.focus {
	case FocusModal:
		return model.handleModalKeys(message)
	case FocusFilter:
		return model.handleFilterKeys(message)
	case FocusCompose:
		return model.handleComposeKeys(message)
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusChannels && model.activeChannel != 0 {
			model.focus = FocusMessages
		} else {
			model.focus = FocusChannels
		}

	case key.Matches(message, model.keys.Refresh):
		cmds := []tea.Cmd{loadChannels(model.ctx, model.session)}
		if model.activeChannel != 0 {
			cmds = append(cmds,
				loadMessages(model.ctx, model.session, model.activeChannel, 0),
				loadChannelDetails(model.ctx, model.session, model.activeChannel))
		}
		return model, tea.Batch(cmds...)

	case key.Matches(message, model.keys.Profile):
		return model, loadProfile(model.ctx, model.session, model.session.UserID(), true)
	}

	if model.focus == FocusChannels {
		return model.handleChannelKeys(message)
	}
	return model.handleMessageKeys(message)
}

func (model Model) handleChannelKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.moveChannelCursor(-1)

	case key.Matches(message, model.keys.Down):
		model.moveChannelCursor(1)

	case key.Matches(message, model.keys.PageUp):
		for step := 0; step < model.pageStep(); step++ {
			model.moveChannelCursor(-1)
		}

	case key.Matches(message, model.keys.PageDown):
		for step := 0; step < model.pageStep(); step++ {
			model.moveChannelCursor(1)
		}

	case key.Matches(message, model.keys.FilterActivate):
		model.priorFocus = model.focus
		model.focus = FocusFilter
		model.filter.Active = true
		model.channelCursor = 0
		model.rebuildRows()

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.rebuildRows()
		}

	case key.Matches(message, model.keys.Select):
		row := model.selectedChannel()
		if row == nil {
			break
		}
		if !row.Joined {
			if row.Channel.Private {
				return model, model.setError(fmt.Errorf("private channel: you need an invite to join"))
			}
			// Opening an unjoined public channel joins it first; the
			// refresh re-renders the row as joined and the user can
			// then open it.
			channelID := row.Channel.ID
			return model, runMutation(refreshChannels, func() error {
				return model.session.JoinChannel(model.ctx, channelID)
			})
		}
		model.activeChannel = row.Channel.ID
		model.details = nil
		model.fetched = nil
		model.allLoaded = false
		model.focus = FocusMessages
		return model, tea.Batch(
			loadMessages(model.ctx, model.session, row.Channel.ID, 0),
			loadChannelDetails(model.ctx, model.session, row.Channel.ID),
		)

	case key.Matches(message, model.keys.JoinChannel):
		if row := model.selectedChannel(); row != nil && !row.Joined {
			channelID := row.Channel.ID
			return model, runMutation(refreshChannels, func() error {
				return model.session.JoinChannel(model.ctx, channelID)
			})
		}

	case key.Matches(message, model.keys.NewChannel):
		model.form = &FormModal{
			Title:    "New channel",
			Fields:   []FormField{{Label: "Name"}, {Label: "Description"}},
			Checkbox: "Private",
		}
		model.openModal(modalChannelCreate)

	case key.Matches(message, model.keys.LeaveChannel):
		if row := model.selectedChannel(); row != nil && row.Joined {
			model.leaveTarget = row.Channel.ID
			model.confirm = &ConfirmModal{
				Title:  "Leave channel",
				Prompt: fmt.Sprintf("Leave #%s?", row.Channel.Name),
			}
			model.openModal(modalConfirmLeave)
		}
	}
	return model, nil
}

// pageStep is the cursor distance for page up/down: half the content
// area, so two pages overlap by half a screen.
func (model *Model) pageStep() int {
	step := (model.height - 2) / 2
	if step < 1 {
		step = 1
	}
	return step
}

func (model *Model) moveChannelCursor(delta int) {
	cursor := model.channelCursor
	for {
		cursor += delta
		if cursor < 0 || cursor >= len(model.channelRows) {
			return
		}
		if !model.channelRows[cursor].IsHeader {
			model.channelCursor = cursor
			return
		}
	}
}

func (model Model) handleMessageKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	display := model.displayMessages()

	switch {
	case key.Matches(message, model.keys.Up):
		if model.messageCursor > 0 {
			model.messageCursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.messageCursor < len(display)-1 {
			model.messageCursor++
		}

	case key.Matches(message, model.keys.PageUp):
		model.messageCursor -= model.pageStep()
		if model.messageCursor < 0 {
			model.messageCursor = 0
		}

	case key.Matches(message, model.keys.PageDown):
		model.messageCursor += model.pageStep()
		if model.messageCursor >= len(display) {
			model.messageCursor = len(display) - 1
		}
		if model.messageCursor < 0 {
			model.messageCursor = 0
		}

	case key.Matches(message, model.keys.Home):
		model.messageCursor = 0

	case key.Matches(message, model.keys.End):
		model.messageCursor = len(display) - 1

	case key.Matches(message, model.keys.Compose):
		model.focus = FocusCompose

	case key.Matches(message, model.keys.LoadOlder):
		if !model.allLoaded {
			return model, loadMessages(model.ctx, model.session, model.activeChannel, model.nextStart)
		}

	case key.Matches(message, model.keys.EditMessage):
		selected := model.selectedMessage()
		if selected == nil {
			break
		}
		if selected.Sender != model.session.UserID() {
			return model, model.setError(fmt.Errorf("only your own messages can be edited"))
		}
		model.editTarget = selected.ID
		model.editOriginal = selected.Message
		model.form = &FormModal{
			Title:  "Edit message",
			Fields: []FormField{{Label: "Message", Value: selected.Message}},
		}
		model.openModal(modalMessageEdit)

	case key.Matches(message, model.keys.DeleteMessage):
		selected := model.selectedMessage()
		if selected == nil {
			break
		}
		if selected.Sender != model.session.UserID() {
			return model, model.setError(fmt.Errorf("only your own messages can be deleted"))
		}
		model.deleteTarget = selected.ID
		model.confirm = &ConfirmModal{
			Title:  "Delete message",
			Prompt: "Delete this message? This cannot be undone.",
		}
		model.openModal(modalConfirmDelete)

	case key.Matches(message, model.keys.PinToggle):
		selected := model.selectedMessage()
		if selected == nil {
			break
		}
		channelID, messageID, pinned := model.activeChannel, selected.ID, selected.Pinned
		return model, runMutation(refreshMessages, func() error {
			if pinned {
				return model.session.UnpinMessage(model.ctx, channelID, messageID)
			}
			return model.session.PinMessage(model.ctx, channelID, messageID)
		})

	case key.Matches(message, model.keys.React):
		if selected := model.selectedMessage(); selected != nil {
			model.editTarget = selected.ID
			model.form = &FormModal{
				Title:  "React",
				Fields: []FormField{{Label: "Emoji"}},
			}
			model.openModal(modalReact)
		}

	case key.Matches(message, model.keys.SenderProfile):
		if selected := model.selectedMessage(); selected != nil {
			return model, loadProfile(model.ctx, model.session, selected.Sender, true)
		}

	case key.Matches(message, model.keys.EditChannel):
		if model.details != nil {
			model.form = &FormModal{
				Title: "Edit channel",
				Fields: []FormField{
					{Label: "Name", Value: model.details.Name},
					{Label: "Description", Value: model.details.Description},
				},
			}
			model.openModal(modalChannelEdit)
		}

	case key.Matches(message, model.keys.InviteMembers):
		model.openInvitePicker()

	case key.Matches(message, model.keys.LeaveChannel):
		if model.details != nil {
			model.leaveTarget = model.activeChannel
			model.confirm = &ConfirmModal{
				Title:  "Leave channel",
				Prompt: fmt.Sprintf("Leave #%s?", model.details.Name),
			}
			model.openModal(modalConfirmLeave)
		}
	}
	return model, nil
}

// openInvitePicker builds the invite modal from the user directory,
// excluding users who are already members of the active channel.
func (model *Model) openInvitePicker() {
	if model.details == nil {
		return
	}
	members := make(map[ident.UserID]bool, len(model.details.Members))
	for _, member := range model.details.Members {
		members[member] = true
	}

	var items []PickerItem
	for userID, email := range model.emails {
		if members[userID] {
			continue
		}
		label := email
		if name := model.names[userID]; name != "" {
			label = name + " <" + email + ">"
		}
		items = append(items, PickerItem{ID: userID, Label: label})
	}
	model.picker = NewPickerModal("Invite to #"+model.details.Name, items)
	model.openModal(modalInvite)
}

func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.filter.Clear()
		model.focus = model.priorFocus
		model.rebuildRows()
	case tea.KeyEnter:
		model.filter.Active = false
		model.focus = model.priorFocus
	case tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.rebuildRows()
		}
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range message.Runes {
			model.filter.HandleRune(r)
		}
		if message.Type == tea.KeySpace {
			model.filter.HandleRune(' ')
		}
		model.rebuildRows()
	}
	return model, nil
}

func (model Model) handleComposeKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.focus = FocusMessages

	case tea.KeyEnter:
		content := strings.TrimSpace(model.compose)
		if content == "" {
			// Empty or whitespace-only sends never reach the network.
			return model, model.setError(fmt.Errorf("cannot send an empty message"))
		}
		model.compose = ""
		channelID := model.activeChannel
		return model, runMutation(refreshMessages, func() error {
			_, err := model.session.SendMessage(model.ctx, channelID, api.SendMessageRequest{Message: content})
			return err
		})

	case tea.KeyBackspace:
		if len(model.compose) > 0 {
			runes := []rune(model.compose)
			model.compose = string(runes[:len(runes)-1])
		}

	case tea.KeySpace:
		model.compose += " "

	case tea.KeyRunes:
		model.compose += string(message.Runes)
	}
	return model, nil
}

func (model Model) handleModalKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.modal {
	case modalChannelCreate, modalChannelEdit, modalMessageEdit, modalReact, modalProfileEdit:
		switch model.form.HandleKey(message) {
		case FormCancel:
			model.closeModal()
		case FormSubmit:
			return model.submitForm()
		}

	case modalInvite:
		switch model.picker.HandleKey(message) {
		case FormCancel:
			model.closeModal()
		case FormSubmit:
			ids := model.picker.SelectedIDs()
			model.closeModal()
			if len(ids) == 0 {
				break
			}
			channelID := model.activeChannel
			return model, runMutation(refreshChannelDetails, func() error {
				return model.session.InviteUsers(model.ctx, channelID, ids)
			})
		}

	case modalConfirmDelete:
		action := model.confirm.HandleKey(message)
		model.closeModal()
		if action == FormSubmit {
			channelID, messageID := model.activeChannel, model.deleteTarget
			return model, runMutation(refreshMessages, func() error {
				return model.session.DeleteMessage(model.ctx, channelID, messageID)
			})
		}

	case modalConfirmLeave:
		action := model.confirm.HandleKey(message)
		model.closeModal()
		if action == FormSubmit {
			channelID := model.leaveTarget
			if channelID == model.activeChannel {
				model.activeChannel = 0
				model.details = nil
				model.fetched = nil
				model.focus = FocusChannels
			}
			return model, runMutation(refreshChannels, func() error {
				return model.session.LeaveChannel(model.ctx, channelID)
			})
		}

	case modalProfileView:
		// e switches to editing when viewing your own profile; any
		// other key dismisses.
		if message.Type == tea.KeyRunes && string(message.Runes) == "e" &&
			model.profile != nil && model.profile.ID == model.session.UserID() {
			profile := model.profile
			model.form = &FormModal{
				Title: "Edit profile",
				Fields: []FormField{
					{Label: "Name", Value: profile.Name},
					{Label: "Email", Value: profile.Email},
					{Label: "Bio", Value: profile.Bio},
					{Label: "New password", Secret: true},
				},
			}
			model.modal = modalProfileEdit
			break
		}
		model.closeModal()
	}
	return model, nil
}

// submitForm dispatches the live form modal's content.
func (model Model) submitForm() (tea.Model, tea.Cmd) {
	form := model.form

	switch model.modal {
	case modalChannelCreate:
		name := strings.TrimSpace(form.Fields[0].Value)
		if name == "" {
			return model, model.setError(fmt.Errorf("channel name is required"))
		}
		request := api.CreateChannelRequest{
			Name:        name,
			Description: strings.TrimSpace(form.Fields[1].Value),
			Private:     form.Checked,
		}
		model.closeModal()
		return model, runMutation(refreshChannels, func() error {
			_, err := model.session.CreateChannel(model.ctx, request)
			return err
		})

	case modalChannelEdit:
		name := strings.TrimSpace(form.Fields[0].Value)
		if name == "" {
			return model, model.setError(fmt.Errorf("channel name is required"))
		}
		request := api.UpdateChannelRequest{
			Name:        name,
			Description: strings.TrimSpace(form.Fields[1].Value),
		}
		channelID := model.activeChannel
		model.closeModal()
		return model, runMutation(refreshChannelDetails, func() error {
			return model.session.UpdateChannel(model.ctx, channelID, request)
		})

	case modalMessageEdit:
		content := strings.TrimSpace(form.Fields[0].Value)
		if content == "" {
			return model, model.setError(fmt.Errorf("message cannot be empty"))
		}
		if content == model.editOriginal {
			// An edit that changes nothing never reaches the network.
			model.closeModal()
			return model, model.setError(fmt.Errorf("message is unchanged"))
		}
		channelID, messageID := model.activeChannel, model.editTarget
		model.closeModal()
		return model, runMutation(refreshMessages, func() error {
			return model.session.EditMessage(model.ctx, channelID, messageID, api.EditMessageRequest{Message: content})
		})

	case modalReact:
		emoji := strings.TrimSpace(form.Fields[0].Value)
		if emoji == "" {
			model.closeModal()
			return model, nil
		}
		selected := model.selectedMessage()
		channelID, messageID := model.activeChannel, model.editTarget
		// Toggle: reacting with an emoji you already used removes it.
		already := false
		if selected != nil {
			for _, react := range selected.Reacts {
				if react.User == model.session.UserID() && react.React == emoji {
					already = true
					break
				}
			}
		}
		model.closeModal()
		return model, runMutation(refreshMessages, func() error {
			if already {
				return model.session.UnreactMessage(model.ctx, channelID, messageID, emoji)
			}
			return model.session.ReactMessage(model.ctx, channelID, messageID, emoji)
		})

	case modalProfileEdit:
		request := api.UpdateProfileRequest{
			Name:     strings.TrimSpace(form.Fields[0].Value),
			Email:    strings.TrimSpace(form.Fields[1].Value),
			Bio:      strings.TrimSpace(form.Fields[2].Value),
			Password: form.Fields[3].Value,
		}
		userID := model.session.UserID()
		model.closeModal()
		return model, tea.Sequence(
			runMutation(refreshNone, func() error {
				return model.session.UpdateProfile(model.ctx, request)
			}),
			loadProfile(model.ctx, model.session, userID, false),
		)
	}

	model.closeModal()
	return model, nil
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "loading..."
	}

	channelWidth := model.width / 4
	if channelWidth < 20 {
		channelWidth = 20
	}
	if channelWidth > 40 {
		channelWidth = 40
	}
	messageWidth := model.width - channelWidth - 1
	contentHeight := model.height - 2 // Header and status bar.
	if contentHeight < 1 {
		contentHeight = 1
	}

	left := model.viewChannelPane(channelWidth, contentHeight)
	right := model.viewMessagePane(messageWidth, contentHeight)
	divider := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("│\n", contentHeight-1) + "│")

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
	screen := model.viewHeader() + "\n" + body + "\n" + model.viewStatusBar()

	if model.focus == FocusModal {
		overlay := model.viewModal()
		return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return screen
}

func (model Model) viewHeader() string {
	title := " slackr"
	if model.details != nil {
		title += "  #" + model.details.Name
		if model.details.Description != "" {
			title += "  " + model.details.Description
		}
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Width(model.width).
		Render(title)
}

func (model Model) viewChannelPane(width, height int) string {
	var header []string
	if bar := model.filter.View(model.theme, width); bar != "" {
		header = append(header, bar)
	}

	visible := height - len(header)
	if visible < 1 {
		visible = 1
	}
	scroll := model.channelScroll
	if model.channelCursor < scroll {
		scroll = model.channelCursor
	}
	if model.channelCursor >= scroll+visible {
		scroll = model.channelCursor - visible + 1
	}

	focused := model.focus == FocusChannels
	rowWidth := width - 1 // One column reserved for the scrollbar.
	var rows []string
	for index := scroll; index < len(model.channelRows) && len(rows) < visible; index++ {
		rows = append(rows, renderChannelRow(model.theme, model.channelRows[index], rowWidth, index == model.channelCursor && focused))
	}
	for len(rows) < visible {
		rows = append(rows, strings.Repeat(" ", rowWidth))
	}

	scrollbar := renderScrollbar(model.theme, visible, len(model.channelRows), visible, scroll, focused)
	body := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rows, "\n"), scrollbar)
	if len(header) == 0 {
		return body
	}
	return strings.Join(header, "\n") + "\n" + body
}

func (model Model) viewMessagePane(width, height int) string {
	if model.activeChannel == 0 {
		empty := lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render("  select a channel")
		return empty + strings.Repeat("\n", height-1)
	}

	composeHeight := 1
	paneHeight := height - composeHeight
	if paneHeight < 1 {
		paneHeight = 1
	}
	now := time.Now()

	focused := model.focus == FocusMessages
	textWidth := width - 1 // One column reserved for the scrollbar.
	display := model.displayMessages()
	var blocks []string
	if !model.allLoaded && len(display) > 0 {
		blocks = append(blocks, lipgloss.NewStyle().
			Foreground(model.theme.HelpText).
			Render("  ── o: load older messages ──"))
	}
	for index, message := range display {
		blocks = append(blocks, renderMessage(
			model.theme, message,
			model.senderName(message.Sender),
			model.session.UserID(),
			textWidth, now,
			index == model.messageCursor && focused,
		))
	}

	lines := strings.Split(strings.Join(blocks, "\n"), "\n")
	totalLines := len(lines)
	scrollOffset := 0
	if len(lines) > paneHeight {
		// Bottom-anchored: the newest rendered line is always visible.
		scrollOffset = len(lines) - paneHeight
		lines = lines[scrollOffset:]
	}
	for len(lines) < paneHeight {
		lines = append([]string{""}, lines...)
	}

	scrollbar := renderScrollbar(model.theme, paneHeight, totalLines, paneHeight, scrollOffset, focused)
	body := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
	return body + "\n" + model.viewCompose(width)
}

func (model Model) viewCompose(width int) string {
	prompt := "> "
	text := model.compose
	style := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(width)
	if model.focus == FocusCompose {
		style = lipgloss.NewStyle().Foreground(model.theme.NormalText).Width(width)
		text += "▎"
	} else if text == "" {
		text = "press i to compose"
	}
	return style.Render(prompt + text)
}

func (model Model) viewStatusBar() string {
	if model.errorNotice != "" {
		return lipgloss.NewStyle().
			Foreground(model.theme.ErrorForeground).
			Background(model.theme.ErrorBackground).
			Width(model.width).
			Render(" " + model.errorNotice)
	}

	if model.logNotice != "" {
		style := lipgloss.NewStyle().
			Foreground(model.theme.PinnedAccent).
			Width(model.width)
		if model.logLevel >= slog.LevelError {
			style = lipgloss.NewStyle().
				Foreground(model.theme.ErrorForeground).
				Background(model.theme.ErrorBackground).
				Width(model.width)
		}
		return style.Render(" " + model.logNotice)
	}

	help := " Tab panes · Enter open · c new · / filter · i compose · p pin · r react · q quit"
	return lipgloss.NewStyle().
		Foreground(model.theme.HelpText).
		Width(model.width).
		Render(help)
}

func (model Model) viewModal() string {
	switch model.modal {
	case modalChannelCreate, modalChannelEdit, modalMessageEdit, modalReact, modalProfileEdit:
		return model.form.View(model.theme, model.width)
	case modalInvite:
		return model.picker.View(model.theme, model.width)
	case modalConfirmDelete, modalConfirmLeave:
		return model.confirm.View(model.theme, model.width)
	case modalProfileView:
		return model.viewProfile()
	}
	return ""
}

func (model Model) viewProfile() string {
	profile := model.profile
	if profile == nil {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	title := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Render(profile.Name)

	lines := []string{
		title,
		"",
		labelStyle.Render("Email: ") + valueStyle.Render(profile.Email),
	}
	if profile.Bio != "" {
		lines = append(lines, labelStyle.Render("Bio:   ")+valueStyle.Render(profile.Bio))
	}
	help := "any key to close"
	if profile.ID == model.session.UserID() {
		help = "e edit · any other key to close"
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(help))

	return modalFrame(model.theme, model.width, strings.Join(lines, "\n"))
}
