// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package settings persists command-line options into a JSON settings file.
//
// Save merges new options into whatever the file already holds and writes the
// result with four-space indentation. Load is the read-only counterpart and
// degrades every failure to an empty document with a warning. The two differ
// on corrupt files: Load recovers, Save returns a *ParseError and leaves the
// file alone.
package settings
