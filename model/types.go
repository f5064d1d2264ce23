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
	"errors"
	"reflect"

	gerrors "github.com/tochemey/goplatform/errors"
)

// Type coerces one attribute between its stored raw form and its live form
type Type interface {
	// Exert turns a stored raw value into its live form
	Exert(raw any) (any, error)
	// Hibernate turns a live value back into its storable raw form
	Hibernate(live any) (any, error)
}

// TypeFactory builds the Type of an attribute declared with spec.
// Type classes bind a TypeFactory as their native.
type TypeFactory func(session *Session, spec TypeSpec) (Type, error)

// Identifiable is implemented by values carrying a document id
type Identifiable interface {
	ID() Ref
}

var (
	_ TypeFactory = NewValueType
	_ TypeFactory = NewRefTo
	_ TypeFactory = NewInstanceOf
	_ TypeFactory = NewArrayOf
	_ TypeFactory = NewBagOf
)

// NewValueType builds a plain value type returning spec.Default for missing values
func NewValueType(_ *Session, spec TypeSpec) (Type, error) {
	return &valueType{fallback: spec.Default}, nil
}

// NewRefTo builds a reference type to documents of spec.Target
func NewRefTo(_ *Session, spec TypeSpec) (Type, error) {
	return &refType{target: spec.Target}, nil
}

// NewInstanceOf builds an embedded instance type of class spec.Target
func NewInstanceOf(session *Session, spec TypeSpec) (Type, error) {
	if spec.Target == "" {
		return nil, errors.New("instance type requires a target class")
	}
	return &instanceType{session: session, target: spec.Target}, nil
}

// NewArrayOf builds a sequence type whose elements have type spec.Of
func NewArrayOf(session *Session, spec TypeSpec) (Type, error) {
	elem, err := elementType(session, spec)
	if err != nil {
		return nil, err
	}
	return &arrayType{elem: elem}, nil
}

// NewBagOf builds a keyed mapping type whose values have type spec.Of
func NewBagOf(session *Session, spec TypeSpec) (Type, error) {
	elem, err := elementType(session, spec)
	if err != nil {
		return nil, err
	}
	return &bagType{elem: elem}, nil
}

func elementType(session *Session, spec TypeSpec) (Type, error) {
	if spec.Of == nil {
		return nil, errors.New("collection type requires an element type")
	}
	return session.TypeOf(*spec.Of)
}

type valueType struct {
	fallback any
}

func (x *valueType) Exert(raw any) (any, error) {
	if raw == nil {
		return x.fallback, nil
	}
	return raw, nil
}

func (x *valueType) Hibernate(live any) (any, error) {
	return cloneRaw(live), nil
}

type refType struct {
	target Ref
}

func (x *refType) Exert(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return Ref(v), nil
	case Ref:
		return v, nil
	default:
		return nil, gerrors.NewErrCoercion("reference", raw)
	}
}

func (x *refType) Hibernate(live any) (any, error) {
	switch v := live.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case Ref:
		return string(v), nil
	case Identifiable:
		return string(v.ID()), nil
	default:
		return nil, gerrors.NewErrCoercion("reference", live)
	}
}

type instanceType struct {
	session *Session
	target  Ref
}

// Exert wraps the raw map without copying it; the map is not stamped with a class.
func (x *instanceType) Exert(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *Struct:
		return v, nil
	case map[string]any:
		class := x.target
		if stamped, ok := v[ClassKey].(string); ok && stamped != "" {
			class = Ref(stamped)
		}
		return x.session.wrapStruct(class, v)
	default:
		return nil, gerrors.NewErrCoercion("instance", raw)
	}
}

func (x *instanceType) Hibernate(live any) (any, error) {
	switch v := live.(type) {
	case nil:
		return nil, nil
	case *Struct:
		return cloneRaw(v.data), nil
	case map[string]any:
		return cloneRaw(v), nil
	default:
		return nil, gerrors.NewErrCoercion("instance", live)
	}
}

type arrayType struct {
	elem Type
}

func (x *arrayType) Exert(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *ArrayView:
		return v, nil
	case []any:
		return &ArrayView{raw: v, elem: x.elem}, nil
	default:
		return nil, gerrors.NewErrCoercion("array", raw)
	}
}

func (x *arrayType) Hibernate(live any) (any, error) {
	switch v := live.(type) {
	case nil:
		return nil, nil
	case *ArrayView:
		if v.Raw() == nil {
			return nil, nil
		}
		live = v.raw
	}

	value := reflect.ValueOf(live)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return nil, gerrors.NewErrCoercion("array", live)
	}
	raw := make([]any, value.Len())
	for i := range value.Len() {
		item, err := x.elem.Hibernate(value.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		raw[i] = item
	}
	return raw, nil
}

type bagType struct {
	elem Type
}

func (x *bagType) Exert(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *BagView:
		return v, nil
	case map[string]any:
		return &BagView{raw: v, elem: x.elem}, nil
	default:
		return nil, gerrors.NewErrCoercion("bag", raw)
	}
}

func (x *bagType) Hibernate(live any) (any, error) {
	switch v := live.(type) {
	case nil:
		return nil, nil
	case *BagView:
		if v.Raw() == nil {
			return nil, nil
		}
		live = v.raw
	}

	value := reflect.ValueOf(live)
	if value.Kind() != reflect.Map || value.Type().Key().Kind() != reflect.String {
		return nil, gerrors.NewErrCoercion("bag", live)
	}
	raw := make(map[string]any, value.Len())
	iter := value.MapRange()
	for iter.Next() {
		item, err := x.elem.Hibernate(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		raw[iter.Key().String()] = item
	}
	return raw, nil
}

// cloneRaw copies the maps and sequences of a raw value, so that stored
// values never share storage with the caller or with another document.
func cloneRaw(raw any) any {
	switch v := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneRaw(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneRaw(item)
		}
		return out
	default:
		return raw
	}
}
