// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/diskcache/internal/config"
	"github.com/staranto/diskcache/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the command group
	// and also the namespace used when retrieving config values. arg[1] could
	// be -h/--help, so ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is normal; flags then fall back to env and
	// defaults.
	cfg, _ := config.Load(ns)
	version := meta.Version
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:    "diskcache",
		Usage:   "per-run artifact cache and persisted settings",
		Version: version,
		Flags:   NewGlobalFlags(cfg.Source, NewSavedDefaults(args)),
		Metadata: map[string]any{
			"meta": meta,
		},
	}
	app.Commands = append(app.Commands,
		CacheCommandBuilder(app, meta),
		SettingsCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
		for _, sub := range cmd.Commands {
			sort.Slice(sub.Flags, func(i, j int) bool {
				return sub.Flags[i].Names()[0] < sub.Flags[j].Names()[0]
			})
		}
	}

	return app, nil
}
