// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/diskcache/internal/config"
)

// AppName is the default application name; it also names the cache root
// (~/.diskcache) unless --app overrides it.
const AppName = "diskcache"

// Version is stamped at build time with -ldflags "-X ...meta.Version=...".
var Version = "dev"

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string
}
