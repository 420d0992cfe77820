// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/diskcache/internal/diskcache"
	"github.com/staranto/diskcache/internal/meta"
	"github.com/staranto/diskcache/internal/output"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr diskcache <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", meta.AppName, subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// WrapAction adds the --tldr short circuit and debug tracing to action.
func WrapAction(group string, action cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if ShortCircuitTLDR(ctx, cmd, group) {
			return nil
		}
		m := GetMeta(cmd)
		log.Debugf("Executing action for %s %s %v from %s (config %q)",
			group, cmd.Name, cmd.Args().Slice(), m.StartingDir, m.Config.Source)
		return action(ctx, cmd)
	}
}

// GetMeta returns the meta.Meta stored in the command's Metadata, looking up
// through parent commands. If missing it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	for _, c := range cmd.Lineage() {
		if c.Metadata == nil {
			continue
		}
		if m, ok := c.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{}
}

// Writer returns where command results go: the root command's Writer, or
// stdout.
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// OutputOptions collects the rendering flags for cmd.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Color:  output.ColorEnabled(Writer(cmd), cmd.Bool("color")),
		Titles: cmd.Bool("titles"),
	}
}

// NewCache builds the cache for the --app name rooted beneath the user's
// home directory.
func NewCache(cmd *cli.Command) (*diskcache.Cache, error) {
	app := cmd.String("app")
	root, err := diskcache.DefaultRoot(app)
	if err != nil {
		return nil, err
	}
	log.Debugf("cache root: %s", root)
	return diskcache.New(root, app)
}

// SettingsPath returns --path, or settings.json inside the cache root when
// the flag is empty. The cache root is created in the latter case.
func SettingsPath(cmd *cli.Command) (string, error) {
	if p := cmd.String("path"); p != "" {
		return p, nil
	}
	root, err := diskcache.DefaultRoot(cmd.String("app"))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0o755); err != nil { //nolint:mnd
		return "", err
	}
	return filepath.Join(root, "settings.json"), nil
}

// RequireArgs fails unless cmd has between min and max positional args. A
// negative max means no upper bound.
func RequireArgs(cmd *cli.Command, min, max int) error {
	n := cmd.NArg()
	if n < min || (max >= 0 && n > max) {
		return fmt.Errorf("wrong number of arguments\nusage: %s", cmd.UsageText)
	}
	return nil
}
