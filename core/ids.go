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

package core

import (
	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/model"
)

// PluginID is the id of the core plugin
const PluginID identity.PluginID = "core"

// IDs is the compiled namespace of the core plugin
var IDs = identity.Compile(PluginID, identity.Namespace{
	"class": {
		"Obj":        "",
		"Emb":        "",
		"Doc":        "",
		"Class":      "",
		"Type":       "",
		"ArrayOf":    "",
		"BagOf":      "",
		"InstanceOf": "",
		"RefTo":      "",
	},
	"native": {
		"Type":       "",
		"ArrayOf":    "",
		"BagOf":      "",
		"InstanceOf": "",
		"RefTo":      "",
	},
})

// class identifiers
var (
	ClassObj        = IDs.MustID("class", "Obj")
	ClassEmb        = IDs.MustID("class", "Emb")
	ClassDoc        = IDs.MustID("class", "Doc")
	ClassClass      = IDs.MustID("class", "Class")
	ClassType       = IDs.MustID("class", "Type")
	ClassArrayOf    = IDs.MustID("class", "ArrayOf")
	ClassBagOf      = IDs.MustID("class", "BagOf")
	ClassInstanceOf = IDs.MustID("class", "InstanceOf")
	ClassRefTo      = IDs.MustID("class", "RefTo")
)

// native identifiers
var (
	NativeType       = IDs.MustID("native", "Type")
	NativeArrayOf    = IDs.MustID("native", "ArrayOf")
	NativeBagOf      = IDs.MustID("native", "BagOf")
	NativeInstanceOf = IDs.MustID("native", "InstanceOf")
	NativeRefTo      = IDs.MustID("native", "RefTo")
)

// Ref returns the model reference of a class identifier
func Ref(id identity.ID) model.Ref {
	return model.Ref(id.String())
}

// Value declares a plain value attribute
func Value() model.TypeSpec {
	return model.TypeSpec{Class: Ref(ClassType)}
}

// ValueOr declares a plain value attribute with a default
func ValueOr(fallback any) model.TypeSpec {
	return model.TypeSpec{Class: Ref(ClassType), Default: fallback}
}

// ArrayOf declares a sequence attribute
func ArrayOf(elem model.TypeSpec) model.TypeSpec {
	return model.TypeSpec{Class: Ref(ClassArrayOf), Of: &elem}
}

// BagOf declares a keyed mapping attribute
func BagOf(elem model.TypeSpec) model.TypeSpec {
	return model.TypeSpec{Class: Ref(ClassBagOf), Of: &elem}
}

// InstanceOf declares an embedded instance attribute
func InstanceOf(target model.Ref) model.TypeSpec {
	return model.TypeSpec{Class: Ref(ClassInstanceOf), Target: target}
}

// RefTo declares a reference attribute
func RefTo(target model.Ref) model.TypeSpec {
	return model.TypeSpec{Class: Ref(ClassRefTo), Target: target}
}
