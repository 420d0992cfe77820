// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/diskcache/internal/command"
	"github.com/staranto/diskcache/internal/config"
	mylog "github.com/staranto/diskcache/internal/log"
	"github.com/staranto/diskcache/internal/meta"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(meta.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an @preset argument into the flags listed under
// <group>.<preset> in the config file. Without an @preset, <group>.defaults
// is used when present. Expanded flags go right after the subcommand so they
// precede positional arguments.
func mangleArguments(args []string) []string {
	// Global flags ahead of the group leave nothing to key presets on.
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	// Short-circuit for --help/-h.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return args
		}
	}

	working := make([]string, 0, len(args))
	working = append(working, args...)

	set := "defaults"
	for i := 2; i < len(working); i++ {
		if strings.HasPrefix(working[i], "@") && len(working[i]) > 1 {
			set = working[i][1:]
			working = append(working[:i], working[i+1:]...)
			break
		}
	}

	idx := 2
	if len(working) > 2 && !strings.HasPrefix(working[2], "-") {
		idx = 3
	}

	setArgs, _ := config.GetStringSlice(args[1] + "." + set)
	var parts []string
	for _, arg := range setArgs {
		parts = append(parts, strings.Fields(arg)...)
	}
	working = append(working[:idx], append(parts, working[idx:]...)...)

	log.Debugf("idx=%d, set=%s, args=%v", idx, set, working)
	return working
}
