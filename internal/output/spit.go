// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/staranto/diskcache/internal/config"
	"github.com/staranto/diskcache/internal/diskcache"
)

// Formats accepted by --output.
var Formats = []string{"text", "json", "yaml"}

// Options control how results are rendered.
type Options struct {
	Format string
	Color  bool
	Titles bool
}

// ColorEnabled reports whether colored output should be used on w: it must
// be requested and w must be a terminal. NO_COLOR always disables it.
func ColorEnabled(w io.Writer, requested bool) bool {
	if !requested {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Value writes a single value. Text output prints strings bare and other
// values through ValueString; json and yaml encode the value as-is.
func Value(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		if v != nil && reflect.TypeOf(v).Kind() == reflect.Map {
			// Objects read better indented than on one line.
			b, err := json.MarshalIndent(v, "", "    ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(b))
			return err
		}
		_, err := fmt.Fprintln(w, ValueString(v))
		return err
	}
}

// ValueString converts a decoded JSON value to display text. nil becomes the
// empty value, which defaults to "".
func ValueString(value any, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	switch value := value.(type) {
	case nil:
		return emptyValue[0]
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// entryRecord is the structured form of a diskcache.Entry.
type entryRecord struct {
	Store    string `json:"store" yaml:"store"`
	Key      string `json:"key" yaml:"key"`
	Size     int64  `json:"size" yaml:"size"`
	Modified string `json:"modified" yaml:"modified"`
	Path     string `json:"path" yaml:"path"`
}

// Entries renders a cache listing in the requested format.
func Entries(w io.Writer, entries []diskcache.Entry, opts Options) error {
	switch opts.Format {
	case "json", "yaml":
		records := make([]entryRecord, 0, len(entries))
		for _, e := range entries {
			records = append(records, entryRecord{
				Store:    e.Store,
				Key:      e.Key,
				Size:     e.Size,
				Modified: e.ModTime.UTC().Format(time.RFC3339),
				Path:     e.Path,
			})
		}
		return Value(w, opts.Format, records)
	default:
		TableWriter(entries, opts, w)
		return nil
	}
}

// TableWriter renders entries in a tabular form honoring color, titles and
// padding options.
func TableWriter(entries []diskcache.Entry, opts Options, w io.Writer) {
	if len(entries) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)
	log.Debugf("padding: %v", pad)

	var rows [][]string
	for _, e := range entries {
		rows = append(rows, []string{
			e.Key,
			humanize.Bytes(uint64(e.Size)),
			humanize.Time(e.ModTime),
			e.Path,
		})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("key", "size", "modified", "path").BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// Lines writes one value per line in text mode, or the whole list as a
// structured document otherwise.
func Lines(w io.Writer, format string, values []string) error {
	if format == "json" || format == "yaml" {
		if values == nil {
			values = []string{}
		}
		return Value(w, format, values)
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
