// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		fixture   string
		noWarn    bool
		want      Document
		wantWarns int
	}{
		{
			name:    "valid",
			fixture: "nested.json",
			want:    Document{"a": 1.0, "b": map[string]any{"x": 1.0}},
		},
		{
			name:    "bom stripped",
			fixture: "bom.json",
			want:    Document{"k": 1.0},
		},
		{
			name:      "missing warns",
			want:      Document{},
			wantWarns: 1,
		},
		{
			name:   "missing suppressed",
			noWarn: true,
			want:   Document{},
		},
		{
			name:      "corrupt warns",
			fixture:   "corrupt.json",
			want:      Document{},
			wantWarns: 1,
		},
		{
			name:      "corrupt warns even when suppressed",
			fixture:   "corrupt.json",
			noWarn:    true,
			want:      Document{},
			wantWarns: 1,
		},
		{
			name:      "not an object",
			fixture:   "array.json",
			want:      Document{},
			wantWarns: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, h := newTestLogger()

			p := filepath.Join(t.TempDir(), "absent.json")
			if tt.fixture != "" {
				p = copyFixture(t, tt.fixture)
			}

			got := Load(p, tt.noWarn, logger)
			assert.Equal(t, tt.want, got)
			assert.Len(t, warnings(h), tt.wantWarns)
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	logger, h := newTestLogger()

	got := Load(t.TempDir(), true, logger)
	assert.Equal(t, Document{}, got)
	assert.Len(t, warnings(h), 1)
}

func TestLoadAsync(t *testing.T) {
	logger, _ := newTestLogger()

	doc, err := LoadAsync(copyFixture(t, "bom.json"), false, logger).Wait()
	require.NoError(t, err)
	assert.Equal(t, Document{"k": 1.0}, doc)
}

func TestLoadAndSaveAgreeOnBOM(t *testing.T) {
	logger, _ := newTestLogger()
	p := copyFixture(t, "bom.json")

	loaded := Load(p, false, logger)
	_, merged, err := Preview(p, nil, logger)
	require.NoError(t, err)

	assert.Equal(t, loaded, merged)
}
