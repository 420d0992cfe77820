// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Options
		wantErr bool
	}{
		{
			name: "nested and plain",
			args: []string{"a.b=1", "c=x"},
			want: Options{"a": map[string]any{"b": 1.0}, "c": "x"},
		},
		{
			name: "json values",
			args: []string{"t=true", "n=null", `s="quoted"`, "l=[1,2]", `o={"k":"v"}`},
			want: Options{
				"t": true,
				"n": nil,
				"s": "quoted",
				"l": []any{1.0, 2.0},
				"o": map[string]any{"k": "v"},
			},
		},
		{
			name: "empty value",
			args: []string{"k="},
			want: Options{"k": ""},
		},
		{
			name: "value containing equals",
			args: []string{"url=https://x.test/?a=b"},
			want: Options{"url": "https://x.test/?a=b"},
		},
		{
			name: "later assignment wins",
			args: []string{"a=1", "a.b=2"},
			want: Options{"a": map[string]any{"b": 2.0}},
		},
		{
			name: "siblings share parent",
			args: []string{"auth.user=me", "auth.token=t"},
			want: Options{"auth": map[string]any{"user": "me", "token": "t"}},
		},
		{
			name:    "missing equals",
			args:    []string{"novalue"},
			wantErr: true,
		},
		{
			name:    "empty segment",
			args:    []string{"a..b=1"},
			wantErr: true,
		},
		{
			name:    "empty key",
			args:    []string{"=1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAssignments(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseAssignments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	doc := Document{
		"a":    map[string]any{"b": 2.0},
		"list": []any{"x", "y"},
		"name": "n",
	}

	v, ok := Lookup(doc, "a.b")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = Lookup(doc, "list.1")
	assert.True(t, ok)
	assert.Equal(t, "y", v)

	v, ok = Lookup(doc, "a")
	assert.True(t, ok)
	assert.Equal(t, map[string]interface{}{"b": 2.0}, v)

	_, ok = Lookup(doc, "a.missing")
	assert.False(t, ok)
}
