// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rachel-Huang77/6080-slackr/api"
	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

func testSession(t *testing.T, handler http.Handler) *api.Session {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	session, err := client.SessionFromToken(42, "test-token")
	if err != nil {
		t.Fatalf("SessionFromToken: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

// noNetwork fails the test if any request reaches the server.
func noNetwork(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})
}

func update(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := model.Update(message)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, cmd
}

func TestModelChannelsLoaded(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))

	model, _ = update(t, model, channelsLoadedMsg{channels: []api.Channel{
		{ID: 1, Name: "general", Private: false, Members: []ident.UserID{42}},
		{ID: 2, Name: "secret", Private: true},
	}})

	var headers []string
	for _, row := range model.channelRows {
		if row.IsHeader {
			headers = append(headers, row.Header)
		}
	}
	if len(headers) != 2 || headers[0] != "Public Channels" || headers[1] != "Private Channels" {
		t.Errorf("headers = %v", headers)
	}
	// Cursor starts on a channel row, never a header.
	if model.channelRows[model.channelCursor].IsHeader {
		t.Error("cursor rests on a header row")
	}
}

func TestModelMessagesLoaded(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))
	model.activeChannel = 3

	page := &api.MessagesPage{
		Messages: make([]api.Message, messagePageSize),
		Start:    0,
	}
	for index := range page.Messages {
		page.Messages[index] = api.Message{ID: ident.MessageID(100 - index), Sender: 42}
	}

	model, _ = update(t, model, messagesLoadedMsg{channelID: 3, page: page, replace: true})

	if len(model.fetched) != messagePageSize {
		t.Fatalf("fetched %d messages", len(model.fetched))
	}
	if model.allLoaded {
		t.Error("full page marked history as exhausted")
	}
	if model.nextStart != messagePageSize {
		t.Errorf("nextStart = %d, want %d", model.nextStart, messagePageSize)
	}

	// Older short page appends and ends pagination.
	older := &api.MessagesPage{
		Messages: []api.Message{{ID: 1, Sender: 42}},
		Start:    messagePageSize,
	}
	model, _ = update(t, model, messagesLoadedMsg{channelID: 3, page: older})

	if len(model.fetched) != messagePageSize+1 {
		t.Fatalf("fetched %d messages after append", len(model.fetched))
	}
	if !model.allLoaded {
		t.Error("short page did not mark history as exhausted")
	}
}

func TestModelStaleMessagesIgnored(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))
	model.activeChannel = 3
	model.fetched = []api.Message{{ID: 9, Sender: 42}}

	// A response for a channel the user already navigated away from
	// must not clobber the open channel's state.
	model, _ = update(t, model, messagesLoadedMsg{
		channelID: 7,
		page:      &api.MessagesPage{Messages: []api.Message{{ID: 1}}},
		replace:   true,
	})

	if len(model.fetched) != 1 || model.fetched[0].ID != 9 {
		t.Errorf("stale response replaced state: %+v", model.fetched)
	}
}

func TestModelEmptySendRejected(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))
	model.activeChannel = 3
	model.focus = FocusCompose
	model.compose = "   "

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	if model.errorNotice == "" {
		t.Error("empty send produced no error notice")
	}
}

func TestModelUnchangedEditRejected(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))
	model.activeChannel = 3
	model.editTarget = 9
	model.editOriginal = "hello"
	model.form = &FormModal{
		Title:  "Edit message",
		Fields: []FormField{{Label: "Message", Value: "hello"}},
	}
	model.priorFocus = FocusMessages
	model.modal = modalMessageEdit
	model.focus = FocusModal

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(model.errorNotice, "unchanged") {
		t.Errorf("errorNotice = %q, want unchanged-edit rejection", model.errorNotice)
	}
	if model.modal != modalNone {
		t.Error("modal left open after rejected edit")
	}
}

func TestModelChangedEditSendsRequest(t *testing.T) {
	var mu sync.Mutex
	var gotPath, gotBody string
	session := testSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotPath = r.Method + " " + r.URL.Path
		var body struct {
			Message string `json:"message"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotBody = body.Message
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("{}"))
	}))

	model := NewModel(context.Background(), session)
	model.activeChannel = 3
	model.editTarget = 9
	model.editOriginal = "hello"
	model.form = &FormModal{
		Title:  "Edit message",
		Fields: []FormField{{Label: "Message", Value: "hello again"}},
	}
	model.priorFocus = FocusMessages
	model.modal = modalMessageEdit
	model.focus = FocusModal

	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("changed edit returned no command")
	}

	result, ok := cmd().(mutationDoneMsg)
	if !ok {
		t.Fatalf("command produced %T, want mutationDoneMsg", cmd())
	}
	if result.err != nil {
		t.Fatalf("mutation failed: %v", result.err)
	}
	if result.refresh != refreshMessages {
		t.Errorf("refresh = %v, want refreshMessages", result.refresh)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotPath != "PUT /channel/3/message/9" {
		t.Errorf("request = %q", gotPath)
	}
	if gotBody != "hello again" {
		t.Errorf("body message = %q", gotBody)
	}
}

func TestModelMutationErrorSurfaced(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))

	model, _ = update(t, model, mutationDoneMsg{
		refresh: refreshChannels,
		err:     &api.APIError{Message: "Name already taken", StatusCode: 400},
	})

	if !strings.Contains(model.errorNotice, "Name already taken") {
		t.Errorf("errorNotice = %q, want the server message", model.errorNotice)
	}
}

func TestModelMutationSuccessRefreshes(t *testing.T) {
	session := testSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/channel" {
			t.Errorf("path = %s, want /channel", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"channels":[{"id":1,"name":"general"}]}`))
	}))
	model := NewModel(context.Background(), session)

	_, cmd := update(t, model, mutationDoneMsg{refresh: refreshChannels})
	if cmd == nil {
		t.Fatal("successful mutation returned no refresh command")
	}

	loaded, ok := cmd().(channelsLoadedMsg)
	if !ok {
		t.Fatalf("refresh produced %T, want channelsLoadedMsg", cmd())
	}
	if loaded.err != nil || len(loaded.channels) != 1 {
		t.Errorf("refresh result = %+v", loaded)
	}
}

func TestModelErrorFade(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))
	model.errorNotice = "boom"

	model, _ = update(t, model, errorFadeMsg{})
	if model.errorNotice != "" {
		t.Errorf("errorNotice = %q after fade", model.errorNotice)
	}
}

func TestInvitePickerExcludesMembers(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))
	model.activeChannel = 3
	model.details = &api.ChannelDetails{
		Name:    "general",
		Members: []ident.UserID{42, 7},
	}
	model.emails = map[ident.UserID]string{
		7: "bob@example.com",
		8: "carol@example.com",
		9: "dave@example.com",
	}

	model.openInvitePicker()

	if model.picker == nil {
		t.Fatal("picker not opened")
	}
	ids := make(map[ident.UserID]bool)
	for _, item := range model.picker.Items {
		ids[item.ID] = true
	}
	if ids[7] {
		t.Error("existing member offered in the invite picker")
	}
	if !ids[8] || !ids[9] {
		t.Errorf("picker items = %+v, want users 8 and 9", model.picker.Items)
	}
}

func manyChannels(count int) []api.Channel {
	channels := make([]api.Channel, count)
	for index := range channels {
		channels[index] = api.Channel{
			ID:   ident.ChannelID(index + 1),
			Name: fmt.Sprintf("room-%02d", index),
		}
	}
	return channels
}

func TestModelViewShowsScrollbar(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 80, Height: 12})
	model, _ = update(t, model, channelsLoadedMsg{channels: manyChannels(40)})

	// 41 rows in a 12-line terminal: the channel pane must show a
	// scrollbar thumb alongside the visible slice.
	if view := model.View(); !strings.Contains(view, "┃") {
		t.Error("channel pane missing scrollbar thumb")
	}
}

func TestModelPageNavigation(t *testing.T) {
	model := NewModel(context.Background(), testSession(t, noNetwork(t)))
	model.height = 22 // Content height 20, so a page step of 10.
	model, _ = update(t, model, channelsLoadedMsg{channels: manyChannels(30)})

	start := model.channelCursor // First channel row, past the header.
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlD})
	if model.channelCursor != start+10 {
		t.Errorf("page down cursor = %d, want %d", model.channelCursor, start+10)
	}
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlU})
	if model.channelCursor != start {
		t.Errorf("page up cursor = %d, want %d", model.channelCursor, start)
	}

	model.focus = FocusMessages
	model.activeChannel = 3
	model.fetched = make([]api.Message, 30)
	for index := range model.fetched {
		model.fetched[index] = api.Message{ID: ident.MessageID(index + 1), Sender: 42}
	}

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlD})
	if model.messageCursor != 10 {
		t.Errorf("message page down cursor = %d, want 10", model.messageCursor)
	}
	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyCtrlU})
	if model.messageCursor != 0 {
		t.Errorf("message page up cursor = %d, want 0", model.messageCursor)
	}
}

func TestFormModalEditing(t *testing.T) {
	form := &FormModal{
		Title:    "New channel",
		Fields:   []FormField{{Label: "Name"}, {Label: "Description"}},
		Checkbox: "Private",
	}

	for _, r := range "dev" {
		form.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if form.Fields[0].Value != "dev" {
		t.Errorf("Fields[0] = %q", form.Fields[0].Value)
	}

	form.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	form.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if form.Fields[1].Value != "x" {
		t.Errorf("Fields[1] = %q", form.Fields[1].Value)
	}

	// Tab onto the checkbox and toggle it.
	form.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	form.HandleKey(tea.KeyMsg{Type: tea.KeySpace})
	if !form.Checked {
		t.Error("checkbox not toggled")
	}

	if action := form.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != FormSubmit {
		t.Errorf("Enter = %v, want FormSubmit", action)
	}
	if action := form.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); action != FormCancel {
		t.Errorf("Esc = %v, want FormCancel", action)
	}
}

func TestPickerModalFilterAndToggle(t *testing.T) {
	picker := NewPickerModal("Invite", []PickerItem{
		{ID: 7, Label: "bob@example.com"},
		{ID: 8, Label: "carol@example.com"},
	})

	picker.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("carol")})
	visible := picker.visibleItems()
	if len(visible) != 1 || visible[0].ID != 8 {
		t.Fatalf("visible = %+v", visible)
	}

	picker.HandleKey(tea.KeyMsg{Type: tea.KeySpace})
	ids := picker.SelectedIDs()
	if len(ids) != 1 || ids[0] != 8 {
		t.Errorf("SelectedIDs = %v", ids)
	}
}
