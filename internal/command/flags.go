// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/diskcache/internal/meta"
)

var (
	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}

	noWarnFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "no-warn",
		Usage:       "do not warn when the settings file is missing",
		HideDefault: true,
	}

	dryRunFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "dry-run",
		Aliases:     []string{"n"},
		Usage:       "show the change as a diff without writing it",
		HideDefault: true,
	}

	filterFlag *cli.StringFlag = &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "comma separated filter expressions, e.g. key^build,size>1024",
	}

	saveFlagsFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "save-flags",
		Usage:       "also persist global flags given on this command line",
		HideDefault: true,
	}
)

// NewGlobalFlags returns the flags shared by every command. Values come from
// the command line, then env, then values saved with --save-flags, then the
// config file at path.
func NewGlobalFlags(path string, saved *SavedDefaults) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "app",
			Aliases: []string{"a"},
			Usage:   "application name; the cache lives in ~/.<app>",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DISKCACHE_APP"),
				saved.Source("app"),
				yaml.YAML("app", altsrc.StringSourcer(path)),
			),
			Value: meta.AppName,
			Validator: func(value string) error {
				return FlagValidators(value, NotEmptyValidator, JammedFlagValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				saved.Source("color"),
				yaml.YAML("color", altsrc.StringSourcer(path)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				saved.Source("output"),
				yaml.YAML("output", altsrc.StringSourcer(path)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				saved.Source("titles"),
				yaml.YAML("titles", altsrc.StringSourcer(path)),
			),
			Value: false,
		},
	}

	return
}

// NewPathFlag constructs the --path flag naming the settings file. The
// config file is consulted under the settings namespace first.
func NewPathFlag(path string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "path",
		Aliases: []string{"p"},
		Usage:   "settings file. Defaults to settings.json in the cache root",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("DISKCACHE_SETTINGS"),
		),
	}

	return NameSpacedValueChainFlagFromConfigFile("settings", path, flag)
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
