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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	err := errors.New("something went wrong")
	internalErr := NewInternalError(err)
	require.Error(t, internalErr)
	require.EqualError(t, internalErr, "internal error: something went wrong")
	assert.ErrorIs(t, internalErr.Unwrap(), err)

	panicErr := NewPanicError(err)
	require.EqualError(t, panicErr, "panic: something went wrong")
	assert.ErrorIs(t, panicErr, err)

	pluginErr := NewPluginError("core", err)
	require.EqualError(t, pluginErr, "plugin core: something went wrong")
	assert.Equal(t, "core", pluginErr.Plugin())
	assert.ErrorIs(t, pluginErr, err)
}

func TestWrappers(t *testing.T) {
	t.Run("With formatted sentinels", func(t *testing.T) {
		err := NewErrUnknownPlugin("ui")
		assert.ErrorIs(t, err, ErrUnknownPlugin)
		assert.EqualError(t, err, "plugin=(ui) no location provided for plugin")

		err = NewErrMissingMetadataValue("url", "asset:ui.Icons")
		assert.ErrorIs(t, err, ErrMissingMetadataValue)
		assert.Contains(t, err.Error(), "asset:ui.Icons")

		err = NewErrResourceNotProduced("class:core.Doc")
		assert.ErrorIs(t, err, ErrResourceNotProduced)

		err = NewErrCoercion("slice", 12)
		assert.ErrorIs(t, err, ErrCoercion)
		assert.Contains(t, err.Error(), "int")
	})

	t.Run("With joined reasons", func(t *testing.T) {
		reason := errors.New("no parent")
		err := NewErrInvalidClass("class:test.A", reason)
		assert.ErrorIs(t, err, ErrInvalidClass)
		assert.ErrorIs(t, err, reason)

		err = NewErrInvalidRecord(3, reason)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, reason)
		assert.Contains(t, err.Error(), "record=(3)")
	})

	t.Run("With configuration taxonomy", func(t *testing.T) {
		assert.True(t, IsConfigurationError(NewErrUnknownPlugin("x")))
		assert.True(t, IsConfigurationError(NewErrMissingMetadataValue("k", "v")))
		assert.True(t, IsConfigurationError(NewErrCyclicDependency([]string{"a", "b", "a"})))
		assert.False(t, IsConfigurationError(NewErrResourceNotProduced("x")))
		assert.False(t, IsConfigurationError(NewErrUnknownInstance("x")))
	})
}
