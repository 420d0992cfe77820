// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/diskcache/internal/config"
	"github.com/staranto/diskcache/internal/diskcache"
	"github.com/staranto/diskcache/internal/meta"
	"github.com/staranto/diskcache/internal/output"
	"github.com/staranto/diskcache/internal/settings"
)

// SavedDefaults is the settings document written by --save-flags, read at
// most once per invocation and used as a source of global flag values.
type SavedDefaults struct {
	args []string
	once sync.Once
	doc  settings.Document
}

// NewSavedDefaults returns the saved flag values for the invocation args. The
// settings file is located the same way SettingsPath does, except that flag
// values are taken straight from args since flags are not parsed yet.
func NewSavedDefaults(args []string) *SavedDefaults {
	return &SavedDefaults{args: args}
}

// Document loads the settings file on first use. A missing file is silent; a
// corrupt one is warned about by settings.Load and reads as {}.
func (d *SavedDefaults) Document() settings.Document {
	d.once.Do(func() {
		path, err := d.path()
		if err != nil {
			log.WithError(err).Debug("no settings path for saved flags")
			d.doc = settings.Document{}
			return
		}
		log.Debugf("saved flags from %s", path)
		d.doc = settings.Load(path, true, log.Log)
	})
	return d.doc
}

// Source returns a value source for the saved value of key.
func (d *SavedDefaults) Source(key string) *SavedValueSource {
	return &SavedValueSource{key: key, defaults: d}
}

func (d *SavedDefaults) path() (string, error) {
	if p, ok := argValue(d.args, "path", "p"); ok && p != "" {
		return p, nil
	}
	if p := os.Getenv("DISKCACHE_SETTINGS"); p != "" {
		return p, nil
	}
	if p, err := config.GetString("settings.path"); err == nil && p != "" {
		return p, nil
	}

	app, ok := argValue(d.args, "app", "a")
	if !ok || app == "" {
		app = os.Getenv("DISKCACHE_APP")
	}
	if app == "" {
		app, _ = config.GetString("app", meta.AppName)
	}
	if app == "" {
		app = meta.AppName
	}

	root, err := diskcache.DefaultRoot(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "settings.json"), nil
}

// argValue finds the value given for a flag in raw args, in any of the
// forms --name v, --name=v, -alias v or -alias=v.
func argValue(args []string, name, alias string) (string, bool) {
	for i := 1; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		for _, prefix := range []string{"--" + name, "-" + alias} {
			if a == prefix {
				if i+1 < len(args) {
					return args[i+1], true
				}
				return "", false
			}
			if v, ok := strings.CutPrefix(a, prefix+"="); ok {
				return v, true
			}
		}
	}
	return "", false
}

// SavedValueSource is a cli.ValueSource over one key of SavedDefaults.
type SavedValueSource struct {
	key      string
	defaults *SavedDefaults
}

func (s *SavedValueSource) Lookup() (string, bool) {
	v, ok := settings.Lookup(s.defaults.Document(), s.key)
	if !ok || v == nil {
		return "", false
	}
	return output.ValueString(v), true
}

func (s *SavedValueSource) String() string {
	return fmt.Sprintf("saved setting %q", s.key)
}

func (s *SavedValueSource) GoString() string {
	return fmt.Sprintf("&SavedValueSource{key:%q}", s.key)
}
