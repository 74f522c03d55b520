// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

package chatui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the bubbletea model for
// display in the status bar.
type logRecordMsg struct {
	// Summary is the human-readable one-line message.
	Summary string

	// Level is the slog level for styling (warn vs error).
	Level slog.Level
}

// logFadeMsg is sent after a delay to clear the log message from the
// status bar and restore the normal help text.
type logFadeMsg struct{}

// LogHandler is a slog.Handler that routes log records into a running
// bubbletea program as messages, keeping stderr untouched while the
// program owns the terminal. Records below the configured level are
// silently dropped; the rest surface in the status bar.
//
// Create the handler before the program, then call SetProgram once the
// tea.Program exists. Records arriving before SetProgram are dropped.
// Handlers derived via WithAttrs/WithGroup share the same program
// pointer, so a single SetProgram call covers all of them.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
}

// NewLogHandler creates a handler delivering records at or above the
// given level to the bubbletea program.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine.
func (handler *LogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled implements slog.Handler.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record and sends it to the bubbletea program.
// Without a program set, the record is dropped rather than written
// anywhere the renderer could collide with.
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	program.Send(logRecordMsg{
		Summary: summarizeRecord(record, handler.attrs),
		Level:   record.Level,
	})
	return nil
}

// WithAttrs implements slog.Handler. The derived handler shares the
// same atomic program pointer.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	combined = append(combined, handler.attrs...)
	combined = append(combined, attrs...)
	return &LogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   combined,
	}
}

// WithGroup implements slog.Handler. Groups are not reflected in the
// one-line summary; attributes keep their bare keys.
func (handler *LogHandler) WithGroup(string) slog.Handler {
	return handler
}

// summarizeRecord builds the status-bar line: "message (key=value, ...)".
func summarizeRecord(record slog.Record, handlerAttrs []slog.Attr) string {
	var attrParts []string
	for _, attr := range handlerAttrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})

	if len(attrParts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(attrParts, ", ") + ")"
}
