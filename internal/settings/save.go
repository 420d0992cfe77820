// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/staranto/diskcache/internal/future"
	mylog "github.com/staranto/diskcache/internal/log"
)

// Save merges opts into the settings file at path and writes the result back.
// A missing file counts as {}. Content that is not a JSON object is returned
// as a *ParseError and nothing is written. If the merged document is empty no
// file is written at all. The read-merge-write sequence is not atomic.
func Save(path string, opts Options, logger log.Interface) error {
	logger = mylog.OrDefault(logger)
	logger.Infof("Saving CLI options to %s.", path)

	_, merged, err := Preview(path, opts, logger)
	if err != nil {
		return err
	}

	if len(merged) == 0 {
		return nil
	}

	contents, err := encode(merged)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	logger.Debugf("Content: %s", contents)

	return os.WriteFile(path, contents, 0o644) //nolint:mnd
}

// SaveAsync is Save on its own goroutine.
func SaveAsync(path string, opts Options, logger log.Interface) *future.Future[struct{}] {
	return future.Go(func() (struct{}, error) {
		return struct{}{}, Save(path, opts, logger)
	})
}

// Preview performs the read and merge steps of Save without writing. It
// returns the document as currently stored and the merged result.
func Preview(path string, opts Options, logger log.Interface) (before, after Document, err error) {
	logger = mylog.OrDefault(logger)

	src := "{}"
	if _, statErr := os.Stat(path); statErr == nil {
		logger.Debug("Settings file exists. Merging settings.")
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		src = StripBOM(string(b))
	} else {
		logger.Debug("Settings file does not exist. Writing file.")
	}

	before, err = decode(src)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Err: err}
	}

	incoming, err := normalize(opts)
	if err != nil {
		return nil, nil, err
	}

	// decode twice so before stays untouched by the merge.
	after, _ = decode(src)
	after = Merge(after, incoming)

	return before, after, nil
}

// Diff renders the change from before to after as an ASCII diff. An empty
// string means the documents are equal.
func Diff(before, after Document, coloring bool) (string, error) {
	d := gojsondiff.New().CompareObjects(before, after)
	if !d.Modified() {
		return "", nil
	}

	f := formatter.NewAsciiFormatter(map[string]interface{}(before), formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	})
	return f.Format(d)
}
