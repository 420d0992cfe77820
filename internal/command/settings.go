// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/diskcache/internal/meta"
	"github.com/staranto/diskcache/internal/output"
	"github.com/staranto/diskcache/internal/settings"
)

// persistableFlags are the global flags --save-flags may persist.
var persistableFlags = []string{"app", "color", "output", "titles"}

// SettingsShowCommandAction prints the settings document.
func SettingsShowCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, 0, 0); err != nil {
		return err
	}
	path, err := SettingsPath(cmd)
	if err != nil {
		return err
	}

	doc, err := settings.LoadAsync(path, cmd.Bool("no-warn"), log.Log).Await(ctx)
	if err != nil {
		return err
	}
	return output.Value(Writer(cmd), cmd.String("output"), map[string]any(doc))
}

// SettingsGetCommandAction prints one value from the settings document.
func SettingsGetCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, 1, 1); err != nil {
		return err
	}
	path, err := SettingsPath(cmd)
	if err != nil {
		return err
	}

	doc := settings.Load(path, true, log.Log)
	key := cmd.Args().First()
	v, ok := settings.Lookup(doc, key)
	if !ok {
		return fmt.Errorf("no setting %q in %s", key, path)
	}
	return output.Value(Writer(cmd), cmd.String("output"), v)
}

// SettingsSaveCommandAction merges key=value arguments, and optionally the
// global flags set on this command line, into the settings file.
func SettingsSaveCommandAction(ctx context.Context, cmd *cli.Command) error {
	path, err := SettingsPath(cmd)
	if err != nil {
		return err
	}

	opts, err := settings.ParseAssignments(cmd.Args().Slice())
	if err != nil {
		return err
	}
	if cmd.Bool("save-flags") {
		opts = settings.Options(settings.Merge(FlagOptions(cmd), opts))
	}
	log.Debugf("options: %v", opts)

	if cmd.Bool("dry-run") {
		before, after, err := settings.Preview(path, opts, log.Log)
		if err != nil {
			return err
		}
		diff, err := settings.Diff(before, after, OutputOptions(cmd).Color)
		if err != nil {
			return err
		}
		if diff == "" {
			diff = "no changes\n"
		}
		_, err = fmt.Fprint(Writer(cmd), diff)
		return err
	}

	_, err = settings.SaveAsync(path, opts, log.Log).Await(ctx)
	return err
}

// FlagOptions returns the persistable global flags explicitly set on the
// command line, keyed by flag name.
func FlagOptions(cmd *cli.Command) map[string]any {
	opts := map[string]any{}
	for _, name := range persistableFlags {
		if !cmd.IsSet(name) {
			continue
		}
		switch name {
		case "color", "titles":
			opts[name] = cmd.Bool(name)
		default:
			opts[name] = cmd.String(name)
		}
	}
	return opts
}

// SettingsCommandBuilder constructs the "settings" command and its
// subcommands.
func SettingsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "load and save persisted options",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewPathFlag(meta.Config.Source),
			tldrFlag,
		},
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "print the settings document",
				UsageText: "diskcache settings show [--no-warn]",
				Flags:     []cli.Flag{noWarnFlag},
				Action:    WrapAction("settings", SettingsShowCommandAction),
			},
			{
				Name:      "get",
				Usage:     "print one setting by dotted key",
				UsageText: "diskcache settings get <key.path>",
				Action:    WrapAction("settings", SettingsGetCommandAction),
			},
			{
				Name:      "save",
				Usage:     "merge key=value pairs into the settings file",
				UsageText: "diskcache settings save [--dry-run] [--save-flags] key=value ...",
				Flags:     []cli.Flag{dryRunFlag, saveFlagsFlag},
				Action:    WrapAction("settings", SettingsSaveCommandAction),
			},
		},
	}
}
