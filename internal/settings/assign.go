// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseAssignments turns key=value arguments into Options. Dotted keys nest,
// so "auth.user=me" becomes {"auth":{"user":"me"}}. A value that is valid
// JSON is decoded (numbers, booleans, null, objects, arrays, quoted strings);
// anything else is kept as a plain string. Later assignments win.
func ParseAssignments(args []string) (Options, error) {
	opts := Options{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", arg)
		}

		keys := strings.Split(k, ".")
		for _, seg := range keys {
			if seg == "" {
				return nil, fmt.Errorf("invalid assignment %q: empty key segment", arg)
			}
		}

		var value any
		if err := json.Unmarshal([]byte(v), &value); err != nil {
			value = v
		}

		current := map[string]any(opts)
		for _, seg := range keys[:len(keys)-1] {
			next, ok := current[seg].(map[string]any)
			if !ok {
				next = map[string]any{}
				current[seg] = next
			}
			current = next
		}
		current[keys[len(keys)-1]] = value
	}
	return opts, nil
}

// Lookup returns the value at a dotted path within doc, e.g. "auth.user".
// Path syntax follows gjson, so wildcards and array indexes also work.
func Lookup(doc Document, path string) (any, bool) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, false
	}
	r := gjson.GetBytes(b, path)
	if !r.Exists() {
		return nil, false
	}
	return r.Value(), true
}
