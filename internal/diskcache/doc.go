// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package diskcache provides a namespaced, file-backed key-value cache used to
// carry small artifacts (tokens, discovered values) between command runs.
// Each entry lives in its own file at <root>/<store>/.<key>, so entries can be
// inspected with ordinary file tools.
package diskcache
