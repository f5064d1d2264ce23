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

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogger(t *testing.T) {
	buffer := new(bytes.Buffer)
	// a fake level value falls back to debug
	logger := NewZap(7, buffer)
	require.Equal(t, DebugLevel, logger.LogLevel())

	logger.Debug("test debug")
	flushLogger(t, logger)
	actual, err := extractMessage(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, "test debug", actual)

	lvl, err := extractLevel(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, DebugLevel.String(), lvl)
}

func TestLogWith(t *testing.T) {
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("plugin", "core", "resources", 3).Info("plugin started")
		flushLogger(t, logger)

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		msg, _ := extractMessage(buffer.Bytes())
		require.Equal(t, "plugin started", msg)
		require.Contains(t, m, "plugin")
		require.Contains(t, m, "resources")
	})

	t.Run("With no fields returns the same logger", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Equal(t, logger, logger.With())
	})

	t.Run("With orphan value", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "orphan").Info("msg")
		flushLogger(t, logger)
		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "a")
		require.Contains(t, m, "_")
	})

	t.Run("With non-string keys skipped", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		sub := logger.With(42, "ignored", "k", "v")
		sub.Info("msg")
		flushLogger(t, sub.(*Zap))
		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &m))
		require.Contains(t, m, "k")
	})

	t.Run("With discard logger", func(t *testing.T) {
		assert.Equal(t, DiscardLogger, DiscardLogger.With("plugin", "core"))
	})
}

func TestLogLevels(t *testing.T) {
	t.Run("With info level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Debug("hidden")
		flushLogger(t, logger)
		assert.Empty(t, buffer.String())

		logger.Infof("resolved %s", "class:core.Doc")
		flushLogger(t, logger)
		msg, err := extractMessage(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "resolved class:core.Doc", msg)
		assert.Equal(t, InfoLevel, logger.LogLevel())
	})

	t.Run("With warn level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		logger.Info("hidden")
		logger.Warnf("slow plugin %s", "ui")
		flushLogger(t, logger)
		lvl, err := extractLevel(buffer.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "warn", lvl)
		assert.Equal(t, WarningLevel, logger.LogLevel())
	})

	t.Run("With error level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		logger.Warn("hidden")
		logger.Error("plugin failed")
		flushLogger(t, logger)
		msg, err := extractMessage(extractLogLine(buffer.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, "plugin failed", msg)
		assert.Equal(t, ErrorLevel, logger.LogLevel())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarningLevel, ParseLevel("warning"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
	assert.Equal(t, InvalidLevel, ParseLevel("verbose"))
	assert.Equal(t, "invalid", InvalidLevel.String())
}

func TestNamed(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	assert.Equal(t, logger, logger.Named(""))

	named := logger.Named("platform").Named("core")
	named.Info("started")
	flushLogger(t, logger)
	name, err := extractField(buffer.Bytes(), "logger")
	require.NoError(t, err)
	assert.Equal(t, "platform.core", name)
	assert.Equal(t, InfoLevel, named.LogLevel())

	assert.Equal(t, DiscardLogger, DiscardLogger.Named("core"))
}

func TestFlush(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "platform-*.log")
	require.NoError(t, err)
	defer file.Close()

	logger := NewZap(InfoLevel, file, new(bytes.Buffer), os.Stderr)
	logger.Info("written")
	require.NoError(t, logger.Flush())

	content, err := os.ReadFile(file.Name())
	require.NoError(t, err)
	assert.Contains(t, string(content), "written")

	require.NoError(t, NewZap(InfoLevel).Flush())
	require.NoError(t, DiscardLogger.Flush())
	assert.Equal(t, InvalidLevel, DiscardLogger.LogLevel())
}

func flushLogger(t *testing.T, logger *Zap) {
	t.Helper()
	require.NoError(t, logger.logger.Sync())
}

func extractLogLine(out []byte) []byte {
	for _, line := range bytes.Split(out, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var payload map[string]json.RawMessage
		if err := json.Unmarshal(line, &payload); err != nil {
			continue
		}
		if _, ok := payload["msg"]; ok {
			return line
		}
	}
	return nil
}

func extractMessage(bytes []byte) (string, error) {
	return extractField(bytes, "msg")
}

func extractLevel(bytes []byte) (string, error) {
	return extractField(bytes, "level")
}

func extractField(bytes []byte, key string) (string, error) {
	c := make(map[string]json.RawMessage)
	if err := json.Unmarshal(bytes, &c); err != nil {
		return "", err
	}
	if v, ok := c[key]; ok {
		return strconv.Unquote(string(v))
	}
	return "", nil
}
