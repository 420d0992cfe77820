// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Document is a settings file body: a JSON object.
type Document map[string]any

// Options are already-parsed key/value pairs to persist into a Document.
type Options map[string]any

// errNotObject is wrapped by ParseError when the file holds valid JSON that
// is not an object.
var errNotObject = errors.New("settings document is not a JSON object")

// ParseError reports a settings file whose content could not be decoded into
// a Document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse settings file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripBOM removes a single leading byte-order mark.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}

// decode parses src as a JSON object.
func decode(src string) (Document, error) {
	var v any
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return Document(m), nil
}

// encode renders doc with four-space indentation. HTML characters and the
// U+2028/U+2029 separators are kept as-is and no trailing newline is added.
func encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators writes U+2028 and U+2029 raw. encoding/json always
// escapes them; other escapes, including an escaped backslash followed by
// the text u2028, are left alone.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if seq := b[i:min(i+6, len(b))]; string(seq) == `\u2028` || string(seq) == `\u2029` {
			if seq[5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// normalize converts arbitrary Go values in opts into their JSON-decoded
// form, so nested objects of any map type take part in Merge.
func normalize(opts Options) (map[string]any, error) {
	if len(opts) == 0 {
		return map[string]any{}, nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}
	return m, nil
}

// Merge copies src into dst and returns dst. When both sides hold an object
// for a key the objects are merged recursively; any other incoming value,
// arrays included, replaces the existing one. A nil dst is allocated.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = map[string]any{}
	}
	for k, sv := range src {
		sm, srcIsObj := sv.(map[string]any)
		if dm, ok := dst[k].(map[string]any); ok && srcIsObj {
			dst[k] = Merge(dm, sm)
			continue
		}
		if srcIsObj {
			// Copy so later merges into dst never write through to src.
			dst[k] = Merge(nil, sm)
			continue
		}
		dst[k] = sv
	}
	return dst
}
