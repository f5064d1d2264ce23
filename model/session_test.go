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

package model

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/goplatform/errors"
)

func declareAnimals(t *testing.T, session *Session) {
	t.Helper()
	require.NoError(t, session.DeclareClass(NewClassDoc("class:test.Animal", docClass, Attr("name", valueSpec))))
	require.NoError(t, session.DeclareClass(NewClassDoc("class:test.Dog", "class:test.Animal", Attr("breed", valueSpec))))
}

func TestNewInstance(t *testing.T) {
	t.Run("With inherited attributes", func(t *testing.T) {
		session := newTestSession(t)
		declareAnimals(t, session)

		object, err := session.NewInstance("class:test.Dog", map[string]any{"_id": "d1", "name": "Rex", "breed": "Lab"})
		require.NoError(t, err)
		dog, ok := object.(*Document)
		require.True(t, ok)

		name, err := dog.Get("name")
		require.NoError(t, err)
		assert.Equal(t, "Rex", name)
		breed, err := dog.Get("breed")
		require.NoError(t, err)
		assert.Equal(t, "Lab", breed)

		assert.Equal(t, Ref("d1"), dog.ID())
		assert.Equal(t, Ref("class:test.Dog"), dog.ClassID())
		assert.Equal(t, "doc: class:test.Dog", dog.ToIntlString())
		assert.Equal(t, "doc: class:test.Dog (d1)", Describe(dog))
		assert.Same(t, session, dog.Session())

		raw := dog.Container().Raw()
		assert.Equal(t, "Rex", raw["class:test.Animal:name"])
		assert.Equal(t, "Lab", raw["class:test.Dog:breed"])
		assert.Equal(t, "d1", raw["_id"])
		assert.Equal(t, "class:test.Dog", raw["_class"])

		id, err := dog.Get("_id")
		require.NoError(t, err)
		assert.Equal(t, "d1", id)
	})

	t.Run("With unknown attribute", func(t *testing.T) {
		session := newTestSession(t)
		declareAnimals(t, session)
		_, err := session.NewInstance("class:test.Animal", map[string]any{"_id": "a1", "wings": 2})
		require.ErrorIs(t, err, errors.ErrUnknownAttribute)
		assert.Empty(t, session.Instances())

		_, err = session.NewInstance("class:test.Unknown", nil)
		require.ErrorIs(t, err, errors.ErrUnknownClass)
	})

	t.Run("With generated document id", func(t *testing.T) {
		session := newTestSession(t)
		declareAnimals(t, session)
		object, err := session.NewInstance("class:test.Animal", map[string]any{"name": "Tom"})
		require.NoError(t, err)
		doc := object.(*Document)
		_, err = uuid.Parse(string(doc.ID()))
		require.NoError(t, err)

		_, err = session.NewInstance("class:test.Animal", map[string]any{"_id": 42})
		require.ErrorIs(t, err, errors.ErrCoercion)
	})

	t.Run("With struct class", func(t *testing.T) {
		session := newTestSession(t)
		require.NoError(t, session.DeclareClass(NewClassDoc("class:test.Circle", embClass,
			Attr("r", TypeSpec{Class: typeClass, Default: 1}),
			Attr("label", valueSpec))))

		object, err := session.NewInstance("class:test.Circle", map[string]any{"label": "unit"})
		require.NoError(t, err)
		circle, ok := object.(*Struct)
		require.True(t, ok)
		assert.Equal(t, "struct: class:test.Circle", circle.ToIntlString())

		r, err := circle.Get("r")
		require.NoError(t, err)
		assert.Equal(t, 1, r)
		assert.Equal(t, map[string]any{"_class": "class:test.Circle", "label": "unit"}, circle.Raw())

		copied := circle.Copy()
		require.NoError(t, copied.Set("r", 5))
		r, _ = circle.Get("r")
		assert.Equal(t, 1, r)
		r, _ = copied.Get("r")
		assert.Equal(t, 5, r)

		_, err = circle.Get("area")
		require.ErrorIs(t, err, errors.ErrUnknownAttribute)
		require.ErrorIs(t, circle.Set("area", 3), errors.ErrUnknownAttribute)
		assert.Empty(t, session.Instances())
	})

	t.Run("With concurrent creation of one document", func(t *testing.T) {
		session := newTestSession(t)
		declareAnimals(t, session)

		var wg sync.WaitGroup
		containers := make([]*Container, 16)
		for i := range containers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				object, err := session.NewInstance("class:test.Dog", map[string]any{"_id": "shared", "name": "Rex"})
				assert.NoError(t, err)
				containers[i] = object.(*Document).Container()
			}(i)
		}
		wg.Wait()

		for _, container := range containers {
			assert.Same(t, containers[0], container)
		}
		assert.Empty(t, containers[0].Mixins())
	})
}

func TestMixin(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.DeclareClass(NewClassDoc("class:test.A", docClass, Attr("title", valueSpec))))
	require.NoError(t, session.DeclareClass(NewClassDoc("class:test.B", docClass, Attr("title", valueSpec), Attr("rating", valueSpec))))
	require.NoError(t, session.DeclareClass(NewClassDoc("class:test.Point", embClass, Attr("x", valueSpec))))

	object, err := session.NewInstance("class:test.A", map[string]any{"_id": "doc1", "title": "primary"})
	require.NoError(t, err)
	target := object.(*Document)

	view, err := session.Mixin(target, "class:test.B", map[string]any{"title": "mixin", "rating": 5})
	require.NoError(t, err)
	_, err = session.Mixin(target, "class:test.B", map[string]any{"rating": 4})
	require.NoError(t, err)

	rating, err := view.Get("rating")
	require.NoError(t, err)
	assert.Equal(t, 4, rating)

	// same attribute name, no collision across classes
	title, err := view.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "mixin", title)
	title, err = target.Get("title")
	require.NoError(t, err)
	assert.Equal(t, "primary", title)

	assert.Equal(t, Ref("class:test.A"), target.Primary())
	assert.Equal(t, []Ref{"class:test.B"}, target.Mixins())

	_, err = target.Get("rating")
	require.ErrorIs(t, err, errors.ErrUnknownAttribute)

	asB, err := target.As("class:test.B")
	require.NoError(t, err)
	rating, _ = asB.Get("rating")
	assert.Equal(t, 4, rating)

	_, err = session.Mixin(target, "class:test.Point", nil)
	require.ErrorIs(t, err, errors.ErrInvalidClass)
	assert.Equal(t, []any{"class:test.B"}, target.Container().Raw()["_mixins"])
}

func TestGetInstance(t *testing.T) {
	session := newTestSession(t)
	declareAnimals(t, session)
	require.NoError(t, session.DeclareClass(NewClassDoc("class:test.Pet", docClass, Attr("owner", valueSpec))))
	require.NoError(t, session.DeclareClass(NewClassDoc("class:test.Car", docClass)))

	object, err := session.NewInstance("class:test.Dog", map[string]any{"_id": "d1", "name": "Rex"})
	require.NoError(t, err)
	_, err = session.Mixin(object.(*Document), "class:test.Pet", map[string]any{"owner": "Ann"})
	require.NoError(t, err)

	t.Run("With primary view", func(t *testing.T) {
		doc, err := session.GetInstance("d1", "")
		require.NoError(t, err)
		assert.Equal(t, Ref("class:test.Dog"), doc.ClassID())
	})

	t.Run("With ancestor view", func(t *testing.T) {
		doc, err := session.GetInstance("d1", "class:test.Animal")
		require.NoError(t, err)
		name, err := doc.Get("name")
		require.NoError(t, err)
		assert.Equal(t, "Rex", name)
	})

	t.Run("With mixin view", func(t *testing.T) {
		doc, err := session.GetInstance("d1", "class:test.Pet")
		require.NoError(t, err)
		owner, err := doc.Get("owner")
		require.NoError(t, err)
		assert.Equal(t, "Ann", owner)
	})

	t.Run("With class not carried", func(t *testing.T) {
		_, err := session.GetInstance("d1", "class:test.Car")
		require.ErrorIs(t, err, errors.ErrClassMismatch)
	})

	t.Run("With unknown instance", func(t *testing.T) {
		_, err := session.GetInstance("missing", "")
		require.ErrorIs(t, err, errors.ErrUnknownInstance)
	})

	t.Run("With removal", func(t *testing.T) {
		assert.True(t, session.RemoveInstance("d1"))
		assert.False(t, session.RemoveInstance("d1"))
		_, err := session.GetInstance("d1", "")
		require.ErrorIs(t, err, errors.ErrUnknownInstance)
	})
}
