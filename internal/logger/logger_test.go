// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Config{
		Writer: &buf,
		Format: FormatJSON,
		Level:  slog.LevelInfo,
	})
	require.NoError(t, err)

	log.Info("partial record", "id", 42)
	log.Debug("hidden")

	assert.Contains(t, buf.String(), `"msg":"partial record"`)
	assert.Contains(t, buf.String(), `"id":42`)
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, err := New(Config{
		Writer: &buf,
		Level:  slog.LevelDebug,
	})
	require.NoError(t, err)

	log.Debug("unresolved link", "target", "bord")

	assert.Contains(t, buf.String(), `msg="unresolved link"`)
	assert.Contains(t, buf.String(), "target=bord")
}

func TestNew_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Format: "pretty"})
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLevel_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseLevel("verbose")
	require.ErrorIs(t, err, ErrInvalidLevel)
}
