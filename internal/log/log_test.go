// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: NewHandler(&buf), Level: log.DebugLevel}

	logger.WithField("store", "auth").WithField("area", "CACHE").Warn("written")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, " W written")
	// Fields are sorted by name.
	assert.True(t, strings.HasSuffix(line, "area=CACHE store=auth"), line)
}

func TestArea(t *testing.T) {
	h := memory.New()
	logger := &log.Logger{Handler: h, Level: log.DebugLevel}

	Area(logger, "CACHE").Debug("read")

	if assert.Len(t, h.Entries, 1) {
		assert.Equal(t, "CACHE", h.Entries[0].Fields.Get("area"))
		assert.Equal(t, "read", h.Entries[0].Message)
	}
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, log.Log, OrDefault(nil))

	logger := &log.Logger{Handler: memory.New()}
	assert.Equal(t, log.Interface(logger), OrDefault(logger))
}

func TestInitLogger_UnknownLevel(t *testing.T) {
	t.Setenv("DISKCACHE_LOG", "chatty")
	assert.NotPanics(t, InitLogger)
}

func TestInitLogger_Level(t *testing.T) {
	logger := log.Log.(*log.Logger)
	prevHandler, prevLevel := logger.Handler, logger.Level
	t.Cleanup(func() {
		logger.Handler = prevHandler
		logger.Level = prevLevel
	})

	tests := []struct {
		env  string
		want log.Level
	}{
		{"", log.WarnLevel},
		{"debug", log.DebugLevel},
		{"ERROR", log.ErrorLevel},
		{"chatty", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("DISKCACHE_LOG", tt.env)
			InitLogger()
			assert.Equal(t, tt.want, logger.Level)
		})
	}
}
