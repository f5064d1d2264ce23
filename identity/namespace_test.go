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

package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/goplatform/errors"
)

func TestCompile(t *testing.T) {
	t.Run("With placeholders", func(t *testing.T) {
		compiled := Compile("core", Namespace{"class": {"Doc": ""}})
		assert.Equal(t, Namespace{"class": {"Doc": "class:core.Doc"}}, compiled)
	})

	t.Run("With explicit aliases", func(t *testing.T) {
		input := Namespace{
			"class":  {"Doc": "class:core.Doc", "Contact": ""},
			"native": {"Type": ""},
		}
		compiled := Compile("contact", input)
		assert.Equal(t, "class:core.Doc", compiled["class"]["Doc"])
		assert.Equal(t, "class:contact.Contact", compiled["class"]["Contact"])
		assert.Equal(t, "native:contact.Type", compiled["native"]["Type"])
		// input untouched
		assert.Equal(t, "", input["class"]["Contact"])
	})

	t.Run("With typed access", func(t *testing.T) {
		compiled := Compile("core", Namespace{"class": {"Doc": "", "Obj": ""}})
		id, err := compiled.ID("class", "Doc")
		require.NoError(t, err)
		assert.Equal(t, MustParse("class:core.Doc"), id)

		ids, err := compiled.IDs("class")
		require.NoError(t, err)
		assert.Len(t, ids, 2)

		_, err = compiled.ID("class", "Missing")
		assert.ErrorIs(t, err, errors.ErrMalformedIdentifier)
		assert.Panics(t, func() { compiled.MustID("native", "Type") })
	})
}

func TestMerge(t *testing.T) {
	a := Compile("core", Namespace{"class": {"Doc": ""}})
	b := Compile("ui", Namespace{"class": {"Doc": "class:core.Doc", "Form": ""}, "string": {"Title": ""}})

	merged, err := Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, Namespace{
		"class":  {"Doc": "class:core.Doc", "Form": "class:ui.Form"},
		"string": {"Title": "string:ui.Title"},
	}, merged)

	conflicting := Namespace{"class": {"Doc": "class:other.Doc"}}
	_, err = Merge(a, conflicting)
	assert.ErrorIs(t, err, errors.ErrIdentifierConflict)
}
