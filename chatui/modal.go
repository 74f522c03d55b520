// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rachel-Huang77/6080-slackr/lib/ident"
)

// FormAction is the outcome of routing one keystroke to a modal.
type FormAction int

const (
	// FormContinue means the modal consumed the key and stays open.
	FormContinue FormAction = iota
	// FormSubmit means the user confirmed the modal's content.
	FormSubmit
	// FormCancel means the user dismissed the modal unchanged.
	FormCancel
)

// FormField is one text input inside a FormModal.
type FormField struct {
	Label string
	Value string
	// Secret masks the field's rendered value (passwords).
	Secret bool
}

// FormModal is a small vertical form: labelled text fields plus an
// optional trailing checkbox. Tab and arrow keys move focus, Enter
// submits, Escape cancels. Used for channel create/edit, message
// edit, and profile edit.
type FormModal struct {
	Title    string
	Fields   []FormField
	Checkbox string // Checkbox label; empty means no checkbox.
	Checked  bool
	Focus    int // Field index; len(Fields) focuses the checkbox.
}

// focusCount returns the number of focusable slots.
func (modal *FormModal) focusCount() int {
	count := len(modal.Fields)
	if modal.Checkbox != "" {
		count++
	}
	return count
}

// HandleKey routes one keystroke into the form.
func (modal *FormModal) HandleKey(message tea.KeyMsg) FormAction {
	switch message.Type {
	case tea.KeyEsc:
		return FormCancel
	case tea.KeyEnter:
		return FormSubmit
	case tea.KeyTab, tea.KeyDown:
		modal.Focus = (modal.Focus + 1) % modal.focusCount()
	case tea.KeyShiftTab, tea.KeyUp:
		modal.Focus = (modal.Focus - 1 + modal.focusCount()) % modal.focusCount()
	case tea.KeyBackspace:
		if modal.Focus < len(modal.Fields) {
			field := &modal.Fields[modal.Focus]
			if len(field.Value) > 0 {
				runes := []rune(field.Value)
				field.Value = string(runes[:len(runes)-1])
			}
		}
	case tea.KeySpace:
		if modal.Focus == len(modal.Fields) && modal.Checkbox != "" {
			modal.Checked = !modal.Checked
		} else if modal.Focus < len(modal.Fields) {
			modal.Fields[modal.Focus].Value += " "
		}
	case tea.KeyRunes:
		if modal.Focus < len(modal.Fields) {
			modal.Fields[modal.Focus].Value += string(message.Runes)
		}
	}
	return FormContinue
}

// View renders the form inside a bordered box.
func (modal *FormModal) View(theme Theme, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	focusedStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	var lines []string
	lines = append(lines, focusedStyle.Render(modal.Title), "")

	for index, field := range modal.Fields {
		value := field.Value
		if field.Secret {
			value = strings.Repeat("*", len([]rune(value)))
		}
		marker := "  "
		style := valueStyle
		if index == modal.Focus {
			marker = "> "
			style = focusedStyle
			value += "▎"
		}
		lines = append(lines, marker+labelStyle.Render(field.Label+": ")+style.Render(value))
	}

	if modal.Checkbox != "" {
		box := "[ ]"
		if modal.Checked {
			box = "[x]"
		}
		marker := "  "
		style := valueStyle
		if modal.Focus == len(modal.Fields) {
			marker = "> "
			style = focusedStyle
		}
		lines = append(lines, marker+style.Render(box+" "+modal.Checkbox))
	}

	lines = append(lines, "",
		lipgloss.NewStyle().Foreground(theme.HelpText).Render("Enter save · Esc cancel · Tab next field"))

	return modalFrame(theme, width, strings.Join(lines, "\n"))
}

// PickerItem is one selectable row in a PickerModal.
type PickerItem struct {
	ID    ident.UserID
	Label string
}

// PickerModal is a multi-select list with an inline fuzzy filter,
// used for batch channel invites. Typing narrows the list, Space
// toggles the row under the cursor, Enter submits the selection.
type PickerModal struct {
	Title    string
	Items    []PickerItem
	Filter   string
	Selected map[ident.UserID]bool
	Cursor   int
}

// NewPickerModal creates a picker over the given items.
func NewPickerModal(title string, items []PickerItem) *PickerModal {
	return &PickerModal{
		Title:    title,
		Items:    items,
		Selected: make(map[ident.UserID]bool),
	}
}

// visibleItems applies the fuzzy filter to the item labels.
func (modal *PickerModal) visibleItems() []PickerItem {
	if modal.Filter == "" {
		return modal.Items
	}
	pattern := []rune(modal.Filter)
	var visible []PickerItem
	for _, item := range modal.Items {
		if FuzzyMatch(item.Label, pattern, nil).Score > 0 {
			visible = append(visible, item)
		}
	}
	return visible
}

// SelectedIDs returns the toggled user IDs in item order.
func (modal *PickerModal) SelectedIDs() []ident.UserID {
	var ids []ident.UserID
	for _, item := range modal.Items {
		if modal.Selected[item.ID] {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// HandleKey routes one keystroke into the picker.
func (modal *PickerModal) HandleKey(message tea.KeyMsg) FormAction {
	visible := modal.visibleItems()
	switch message.Type {
	case tea.KeyEsc:
		return FormCancel
	case tea.KeyEnter:
		return FormSubmit
	case tea.KeyUp:
		if modal.Cursor > 0 {
			modal.Cursor--
		}
	case tea.KeyDown:
		if modal.Cursor < len(visible)-1 {
			modal.Cursor++
		}
	case tea.KeySpace:
		if modal.Cursor < len(visible) {
			id := visible[modal.Cursor].ID
			modal.Selected[id] = !modal.Selected[id]
		}
	case tea.KeyBackspace:
		if len(modal.Filter) > 0 {
			runes := []rune(modal.Filter)
			modal.Filter = string(runes[:len(runes)-1])
			modal.clampCursor()
		}
	case tea.KeyRunes:
		modal.Filter += string(message.Runes)
		modal.clampCursor()
	}
	return FormContinue
}

func (modal *PickerModal) clampCursor() {
	visible := len(modal.visibleItems())
	if modal.Cursor >= visible {
		modal.Cursor = visible - 1
	}
	if modal.Cursor < 0 {
		modal.Cursor = 0
	}
}

// View renders the picker inside a bordered box.
func (modal *PickerModal) View(theme Theme, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	selectedStyle := lipgloss.NewStyle().Foreground(theme.JoinedAccent)

	var lines []string
	lines = append(lines, titleStyle.Render(modal.Title))
	lines = append(lines, faintStyle.Render(" / "+modal.Filter+"▎"), "")

	visible := modal.visibleItems()
	if len(visible) == 0 {
		lines = append(lines, faintStyle.Render("  no matches"))
	}
	for index, item := range visible {
		box := "[ ]"
		style := normalStyle
		if modal.Selected[item.ID] {
			box = "[x]"
			style = selectedStyle
		}
		marker := "  "
		if index == modal.Cursor {
			marker = "> "
		}
		lines = append(lines, marker+style.Render(box+" "+item.Label))
	}

	lines = append(lines, "",
		lipgloss.NewStyle().Foreground(theme.HelpText).Render("Space toggle · Enter invite · Esc cancel"))

	return modalFrame(theme, width, strings.Join(lines, "\n"))
}

// ConfirmModal is a yes/no prompt, used before destructive actions
// (message delete, channel leave).
type ConfirmModal struct {
	Title  string
	Prompt string
}

// HandleKey routes one keystroke: y or Enter confirms, anything else
// cancels.
func (modal *ConfirmModal) HandleKey(message tea.KeyMsg) FormAction {
	switch {
	case message.Type == tea.KeyEnter:
		return FormSubmit
	case message.Type == tea.KeyRunes && len(message.Runes) == 1 && (message.Runes[0] == 'y' || message.Runes[0] == 'Y'):
		return FormSubmit
	default:
		return FormCancel
	}
}

// View renders the confirmation prompt inside a bordered box.
func (modal *ConfirmModal) View(theme Theme, width int) string {
	title := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Render(modal.Title)
	prompt := lipgloss.NewStyle().Foreground(theme.NormalText).Render(modal.Prompt)
	help := lipgloss.NewStyle().Foreground(theme.HelpText).Render("y/Enter confirm · any other key cancels")
	return modalFrame(theme, width, title+"\n\n"+prompt+"\n\n"+help)
}

// modalFrame wraps modal content in the shared bordered box style.
func modalFrame(theme Theme, width int, content string) string {
	boxWidth := width - 4
	if boxWidth > 60 {
		boxWidth = 60
	}
	if boxWidth < 20 {
		boxWidth = 20
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ModalBorder).
		Background(theme.ModalBackground).
		Padding(0, 1).
		Width(boxWidth).
		Render(content)
}
