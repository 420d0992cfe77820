// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/diskcache/internal/filters"
	"github.com/staranto/diskcache/internal/future"
	"github.com/staranto/diskcache/internal/meta"
	"github.com/staranto/diskcache/internal/output"
)

// validateNames runs NameValidator over the first n positional args, or all
// of them when n is negative.
func validateNames(cmd *cli.Command, n int) error {
	if n < 0 || n > cmd.NArg() {
		n = cmd.NArg()
	}
	for i := 0; i < n; i++ {
		if err := FlagValidators(cmd.Args().Get(i), NameValidator); err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
	}
	return nil
}

// keyValue is one entry of structured cache get output. A list keeps the
// argument order and any repeated keys, matching text output.
type keyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// CacheExistsCommandAction prints whether an entry exists.
func CacheExistsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, 2, 2); err != nil {
		return err
	}
	c, err := NewCache(cmd)
	if err != nil {
		return err
	}

	exists, err := c.ExistsAsync(cmd.Args().Get(0), cmd.Args().Get(1)).Await(ctx)
	if err != nil {
		return err
	}
	return output.Value(Writer(cmd), cmd.String("output"), exists)
}

// CacheGetCommandAction reads one or more entries of a store concurrently and
// prints them in argument order.
func CacheGetCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, 2, -1); err != nil {
		return err
	}
	c, err := NewCache(cmd)
	if err != nil {
		return err
	}

	store := cmd.Args().Get(0)
	keys := cmd.Args().Slice()[1:]

	reads := make([]*future.Future[string], 0, len(keys))
	for _, key := range keys {
		reads = append(reads, c.GetAsync(store, key))
	}
	values, err := future.All(ctx, reads...)
	if err != nil {
		return err
	}

	w := Writer(cmd)
	format := cmd.String("output")
	if format != "text" {
		result := make([]keyValue, 0, len(keys))
		for i, key := range keys {
			result = append(result, keyValue{Key: key, Value: values[i]})
		}
		return output.Value(w, format, result)
	}

	for _, v := range values {
		if _, err := io.WriteString(w, v); err != nil {
			return err
		}
		if len(keys) > 1 {
			fmt.Fprintln(w)
		}
	}
	return nil
}

// CacheSetCommandAction writes an entry. Without a value argument the value
// is read from stdin.
func CacheSetCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, 2, 3); err != nil {
		return err
	}
	c, err := NewCache(cmd)
	if err != nil {
		return err
	}

	value := cmd.Args().Get(2)
	if cmd.NArg() == 2 {
		r := cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
		b, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read value from stdin: %w", err)
		}
		value = string(b)
	}

	_, err = c.SetAsync(cmd.Args().Get(0), cmd.Args().Get(1), value).Await(ctx)
	return err
}

// CacheDeleteCommandAction surfaces the cache's delete operation, which is
// not supported.
func CacheDeleteCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, 2, 2); err != nil {
		return err
	}
	c, err := NewCache(cmd)
	if err != nil {
		return err
	}

	_, err = c.DeleteAsync(cmd.Args().Get(0), cmd.Args().Get(1)).Await(ctx)
	if err != nil {
		return fmt.Errorf("delete %s:%s: %w", cmd.Args().Get(0), cmd.Args().Get(1), err)
	}
	return nil
}

// CacheListCommandAction lists the entries of a store.
func CacheListCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, 1, 1); err != nil {
		return err
	}
	c, err := NewCache(cmd)
	if err != nil {
		return err
	}

	entries, err := c.List(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	entries = filters.FilterEntries(entries, cmd.String("filter"))
	log.Debugf("%d entries", len(entries))
	return output.Entries(Writer(cmd), entries, OutputOptions(cmd))
}

// CacheStoresCommandAction lists the stores under the cache root.
func CacheStoresCommandAction(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, 0, 0); err != nil {
		return err
	}
	c, err := NewCache(cmd)
	if err != nil {
		return err
	}

	stores, err := c.Stores()
	if err != nil {
		return err
	}
	return output.Lines(Writer(cmd), cmd.String("output"), stores)
}

// CacheCommandBuilder constructs the "cache" command and its subcommands.
func CacheCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	sub := func(name, usage, usageText string, names int, action cli.ActionFunc) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     usage,
			UsageText: usageText,
			Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
				return ctx, validateNames(c, names)
			},
			Action: WrapAction("cache", action),
		}
	}

	list := sub("list", "list the entries of a store",
		"diskcache cache list [--filter expr] <store>", 1, CacheListCommandAction)
	list.Flags = []cli.Flag{filterFlag}

	return &cli.Command{
		Name:  "cache",
		Usage: "read and write cached entries",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{tldrFlag},
		Commands: []*cli.Command{
			sub("exists", "report whether an entry exists",
				"diskcache cache exists <store> <key>", 2, CacheExistsCommandAction),
			sub("get", "print entries",
				"diskcache cache get <store> <key> [key...]", -1, CacheGetCommandAction),
			sub("set", "write an entry, reading the value from stdin when omitted",
				"diskcache cache set <store> <key> [value]", 2, CacheSetCommandAction),
			sub("delete", "delete an entry (not supported)",
				"diskcache cache delete <store> <key>", 2, CacheDeleteCommandAction),
			list,
			sub("stores", "list stores",
				"diskcache cache stores", 0, CacheStoresCommandAction),
		},
	}
}
