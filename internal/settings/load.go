// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"os"

	"github.com/apex/log"

	"github.com/staranto/diskcache/internal/future"
	mylog "github.com/staranto/diskcache/internal/log"
)

// Load reads the settings file at path for read-only use. It never fails: a
// missing file yields {} and a warning unless noWarn is set; a file that
// cannot be read or parsed yields {} and a warning regardless of noWarn.
func Load(path string, noWarn bool, logger log.Interface) Document {
	logger = mylog.OrDefault(logger)
	logger.Debug("settings.Load")
	logger.Debugf("reading settings from %s", path)

	if _, err := os.Stat(path); err != nil {
		if !noWarn {
			logger.Warnf("No settings file found at %s.", path)
		}
		return Document{}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		logger.WithError(err).Warnf("Could not read settings file. No settings were read from %s.", path)
		return Document{}
	}

	doc, err := decode(StripBOM(string(b)))
	if err != nil {
		logger.Warnf("Could not parse settings file as JSON. No settings were read from %s.", path)
		return Document{}
	}
	return doc
}

// LoadAsync is Load on its own goroutine. The future never fails.
func LoadAsync(path string, noWarn bool, logger log.Interface) *future.Future[Document] {
	return future.Go(func() (Document, error) {
		return Load(path, noWarn, logger), nil
	})
}
