// Copyright 2026 The Slackr Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the slackr command framework: the Command tree
// with pflag-based flag parsing, help rendering with typo suggestions,
// session persistence, and the authentication commands shared by the
// whole tree.
package cli
