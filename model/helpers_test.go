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

	"github.com/stretchr/testify/require"

	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/log"
)

const (
	objClass        Ref = "class:core.Obj"
	embClass        Ref = "class:core.Emb"
	docClass        Ref = "class:core.Doc"
	typeClass       Ref = "class:core.Type"
	arrayOfClass    Ref = "class:core.ArrayOf"
	bagOfClass      Ref = "class:core.BagOf"
	instanceOfClass Ref = "class:core.InstanceOf"
	refToClass      Ref = "class:core.RefTo"
)

var (
	valueSpec = TypeSpec{Class: typeClass}
)

// newTestSession declares the minimal class hierarchy the runtime needs
func newTestSession(t *testing.T) *Session {
	t.Helper()
	natives := Natives{
		identity.MustParse("native:core.Type"):       TypeFactory(NewValueType),
		identity.MustParse("native:core.ArrayOf"):    TypeFactory(NewArrayOf),
		identity.MustParse("native:core.BagOf"):      TypeFactory(NewBagOf),
		identity.MustParse("native:core.InstanceOf"): TypeFactory(NewInstanceOf),
		identity.MustParse("native:core.RefTo"):      TypeFactory(NewRefTo),
	}
	session := NewSession(natives, WithLogger(log.DiscardLogger))

	docs := []ClassDoc{
		NewClassDoc(objClass, ""),
		NewClassDoc(embClass, objClass),
		NewClassDoc(docClass, objClass),
		NewClassDoc(typeClass, embClass).WithNative(identity.MustParse("native:core.Type")),
		NewClassDoc(arrayOfClass, typeClass).WithNative(identity.MustParse("native:core.ArrayOf")),
		NewClassDoc(bagOfClass, typeClass).WithNative(identity.MustParse("native:core.BagOf")),
		NewClassDoc(instanceOfClass, typeClass).WithNative(identity.MustParse("native:core.InstanceOf")),
		NewClassDoc(refToClass, typeClass).WithNative(identity.MustParse("native:core.RefTo")),
	}
	for _, doc := range docs {
		require.NoError(t, session.DeclareClass(doc))
	}
	return session
}

func arrayOf(elem TypeSpec) TypeSpec {
	return TypeSpec{Class: arrayOfClass, Of: &elem}
}

func bagOf(elem TypeSpec) TypeSpec {
	return TypeSpec{Class: bagOfClass, Of: &elem}
}

func instanceOf(target Ref) TypeSpec {
	return TypeSpec{Class: instanceOfClass, Target: target}
}

func refTo(target Ref) TypeSpec {
	return TypeSpec{Class: refToClass, Target: target}
}
