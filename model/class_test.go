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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tochemey/goplatform/errors"
	"github.com/tochemey/goplatform/identity"
)

func TestDeclareClass(t *testing.T) {
	t.Run("With unknown parent", func(t *testing.T) {
		session := newTestSession(t)
		err := session.DeclareClass(NewClassDoc("class:test.A", "class:test.Missing"))
		require.ErrorIs(t, err, errors.ErrUnknownClass)
		assert.Equal(t, Undeclared, session.ClassState("class:test.A"))
	})

	t.Run("With root carrying attributes", func(t *testing.T) {
		session := newTestSession(t)
		err := session.DeclareClass(NewClassDoc("class:test.Root", "", Attr("x", valueSpec)))
		require.ErrorIs(t, err, errors.ErrInvalidClass)
	})

	t.Run("With self inheritance", func(t *testing.T) {
		session := newTestSession(t)
		err := session.DeclareClass(NewClassDoc("class:test.Loop", "class:test.Loop"))
		require.ErrorIs(t, err, errors.ErrCyclicInheritance)
	})

	t.Run("With redeclaration", func(t *testing.T) {
		session := newTestSession(t)
		doc := NewClassDoc("class:test.A", docClass, Attr("x", valueSpec))
		require.NoError(t, session.DeclareClass(doc))
		require.NoError(t, session.DeclareClass(doc))

		changed := NewClassDoc("class:test.A", docClass, Attr("y", valueSpec))
		require.ErrorIs(t, session.DeclareClass(changed), errors.ErrClassAlreadyDeclared)
	})

	t.Run("With malformed attributes", func(t *testing.T) {
		session := newTestSession(t)
		err := session.DeclareClass(NewClassDoc("class:test.A", docClass, Attr("x", valueSpec), Attr("x", valueSpec)))
		require.ErrorIs(t, err, errors.ErrInvalidClass)

		err = session.DeclareClass(NewClassDoc("class:test.B", docClass, Attr("", valueSpec)))
		require.ErrorIs(t, err, errors.ErrInvalidClass)

		err = session.DeclareClass(NewClassDoc("class:test.C", docClass, Attr("x", TypeSpec{})))
		require.ErrorIs(t, err, errors.ErrInvalidClass)

		err = session.DeclareClass(NewClassDoc("", docClass))
		require.ErrorIs(t, err, errors.ErrInvalidClass)
	})
}

func TestGetClass(t *testing.T) {
	t.Run("With state transitions", func(t *testing.T) {
		session := newTestSession(t)
		assert.Equal(t, Undeclared, session.ClassState("class:test.Point"))
		require.NoError(t, session.DeclareClass(NewClassDoc("class:test.Point", embClass, Attr("x", valueSpec))))
		assert.Equal(t, Declared, session.ClassState("class:test.Point"))

		class, err := session.GetClass("class:test.Point")
		require.NoError(t, err)
		assert.Equal(t, Materialized, session.ClassState("class:test.Point"))
		assert.Equal(t, "materialized", session.ClassState("class:test.Point").String())

		again, err := session.GetClass("class:test.Point")
		require.NoError(t, err)
		assert.Same(t, class, again)
	})

	t.Run("With kind labels", func(t *testing.T) {
		session := newTestSession(t)
		point, err := session.CreateClass("class:test.Point", embClass, Bag{Attr("x", valueSpec)})
		require.NoError(t, err)
		assert.Equal(t, StructKind, point.Kind())
		assert.Equal(t, "struct: class:test.Point", point.ToIntlString())

		contact, err := session.CreateClass("class:test.Contact", docClass, Bag{Attr("name", valueSpec)})
		require.NoError(t, err)
		assert.Equal(t, DocumentKind, contact.Kind())
		assert.Equal(t, "doc: class:test.Contact", contact.ToIntlString())
		assert.Equal(t, []Ref{"class:test.Contact", docClass, objClass}, contact.Ancestors())
		assert.True(t, contact.IsA(objClass))
		assert.False(t, contact.IsA(embClass))
	})

	t.Run("With merged bags", func(t *testing.T) {
		session := newTestSession(t)
		_, err := session.CreateClass("class:test.Base", docClass, Bag{
			Attr("name", valueSpec),
			Attr("age", valueSpec),
		})
		require.NoError(t, err)
		child, err := session.CreateClass("class:test.Child", "class:test.Base", Bag{
			Attr("email", valueSpec),
			Attr("name", refTo(docClass)),
		})
		require.NoError(t, err)

		attrs := child.Attributes()
		require.Len(t, attrs, 3)
		assert.Equal(t, "name", attrs[0].Name)
		assert.Equal(t, Ref("class:test.Child"), attrs[0].Owner)
		assert.Equal(t, refToClass, attrs[0].Spec.Class)
		assert.Equal(t, "age", attrs[1].Name)
		assert.Equal(t, Ref("class:test.Base"), attrs[1].Owner)
		assert.Equal(t, "email", attrs[2].Name)

		_, ok := child.Attribute("missing")
		assert.False(t, ok)
	})

	t.Run("With attribute typed by a non type class", func(t *testing.T) {
		session := newTestSession(t)
		require.NoError(t, session.DeclareClass(NewClassDoc("class:test.Bad", docClass,
			Attr("x", TypeSpec{Class: docClass}))))
		_, err := session.GetClass("class:test.Bad")
		require.ErrorIs(t, err, errors.ErrInvalidClass)
		require.ErrorIs(t, err, errors.ErrNotAType)
	})

	t.Run("With missing native", func(t *testing.T) {
		session := NewSession(nil)
		require.NoError(t, session.DeclareClass(NewClassDoc(objClass, "")))
		require.NoError(t, session.DeclareClass(NewClassDoc(typeClass, objClass).
			WithNative(identity.MustParse("native:core.Type"))))
		_, err := session.TypeOf(valueSpec)
		require.ErrorIs(t, err, errors.ErrMissingMetadataValue)
	})

	t.Run("With unknown class", func(t *testing.T) {
		session := newTestSession(t)
		_, err := session.GetClass("class:test.Nope")
		require.ErrorIs(t, err, errors.ErrUnknownClass)
	})
}

func TestBagYAML(t *testing.T) {
	input := `
id: class:test.Shape
extends: class:core.Doc
native: native:test.Shape
attributes:
  zeta: class:core.Type
  alpha:
    class: class:core.ArrayOf
    of:
      class: class:core.InstanceOf
      target: class:test.Point
  mid:
    class: class:core.Type
    default: 3
`
	var doc ClassDoc
	require.NoError(t, yaml.Unmarshal([]byte(input), &doc))
	assert.Equal(t, Ref("class:test.Shape"), doc.ID)
	assert.Equal(t, identity.MustParse("native:test.Shape"), doc.Native)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, doc.Attributes.Names())

	alpha, ok := doc.Attributes.Get("alpha")
	require.True(t, ok)
	require.NotNil(t, alpha.Type.Of)
	assert.Equal(t, Ref("class:test.Point"), alpha.Type.Of.Target)

	mid, _ := doc.Attributes.Get("mid")
	assert.Equal(t, 3, mid.Type.Default)

	encoded, err := yaml.Marshal(doc)
	require.NoError(t, err)
	var decoded ClassDoc
	require.NoError(t, yaml.Unmarshal(encoded, &decoded))
	assert.Equal(t, doc, decoded)
}
