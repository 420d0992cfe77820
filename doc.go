// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// diskcache is the command line front end for the per-application disk
// cache and its persisted settings file.
package main
