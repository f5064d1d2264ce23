// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/log"
	"github.com/tochemey/goplatform/platform"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		cfg := New()
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.Metrics)
		assert.Empty(t, cfg.Metadata)
		require.NoError(t, cfg.Validate())
	})

	t.Run("With invalid values", func(t *testing.T) {
		cfg := New(WithLogLevel("loud"), WithMetadata("nope", 1), WithModels(""))
		err := cfg.Validate()
		require.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), `unknown log level "loud"`)
		assert.Contains(t, err.Error(), "the [metadata id] is invalid")
		assert.Contains(t, err.Error(), "the [model path] is required")
	})

	t.Run("With logger", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := New(WithLogLevel("debug")).Logger(buffer)
		assert.Equal(t, log.DebugLevel, logger.LogLevel())
		logger.Debug("hello")
		require.NoError(t, logger.Flush())
		assert.Contains(t, buffer.String(), "hello")
		assert.Contains(t, buffer.String(), `"logger":"platform"`)
	})
}

func TestOptions(t *testing.T) {
	testCases := []struct {
		name           string
		option         Option
		expectedConfig Config
	}{
		{
			name:           "WithLogLevel",
			option:         WithLogLevel("warn"),
			expectedConfig: Config{LogLevel: "warn"},
		},
		{
			name:           "WithMetrics",
			option:         WithMetrics(),
			expectedConfig: Config{Metrics: true},
		},
		{
			name:           "WithMetadata",
			option:         WithMetadata("config:ui.Title", "Home"),
			expectedConfig: Config{Metadata: []MetadataEntry{{ID: "config:ui.Title", Value: "Home"}}},
		},
		{
			name:           "WithModels",
			option:         WithModels("a.yaml", "b.yaml"),
			expectedConfig: Config{Models: []string{"a.yaml", "b.yaml"}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			tc.option.Apply(&cfg)
			assert.Equal(t, tc.expectedConfig, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("With yaml file", func(t *testing.T) {
		path := writeFile(t, "platform.yaml", `
log_level: debug
metrics: true
metadata:
  - id: config:ui.Title
    value: Home
  - id: config:ui.Limit
    value: 10
models:
  - models/core.yaml
  - models/app.yaml
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.Metrics)
		assert.Equal(t, []string{"models/core.yaml", "models/app.yaml"}, cfg.Models)
		require.Len(t, cfg.Metadata, 2)
		assert.Equal(t, "config:ui.Title", cfg.Metadata[0].ID)
		assert.Equal(t, "Home", cfg.Metadata[0].Value)
	})

	t.Run("With json file", func(t *testing.T) {
		path := writeFile(t, "platform.json", `{"log_level": "error", "models": ["m.yaml"]}`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, []string{"m.yaml"}, cfg.Models)
	})

	t.Run("With environment override", func(t *testing.T) {
		t.Setenv("GOPLATFORM_LOG_LEVEL", "warn")
		path := writeFile(t, "platform.yaml", "log_level: debug\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("With no file", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("With missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("With invalid file content", func(t *testing.T) {
		path := writeFile(t, "platform.yaml", "log_level: shout\n")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestApplyMetadata(t *testing.T) {
	p, err := platform.New(New().PlatformOptions(log.DiscardLogger)...)
	require.NoError(t, err)

	cfg := New(WithMetadata("config:ui.Title", "Home"), WithMetadata("broken", 1))
	err = cfg.ApplyMetadata(p)
	require.Error(t, err)

	value, ok := p.GetMetadata(identity.MustParse("config:ui.Title"))
	require.True(t, ok)
	assert.Equal(t, "Home", value)
}
