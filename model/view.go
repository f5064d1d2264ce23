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
	"iter"
	"maps"
	"slices"
)

// ArrayView is a read-through view over a stored raw sequence.
// Every access exerts the element type; the raw sequence is never copied or mutated.
type ArrayView struct {
	raw  []any
	elem Type
	err  error
}

// Len returns the number of elements
func (x *ArrayView) Len() int {
	if x == nil {
		return 0
	}
	return len(x.raw)
}

// At returns the live element at index i.
// It panics when i is out of range, like a slice index.
func (x *ArrayView) At(i int) (any, error) {
	return x.elem.Exert(x.raw[i])
}

// Raw returns the underlying raw sequence
func (x *ArrayView) Raw() []any {
	if x == nil {
		return nil
	}
	return x.raw
}

// Values returns every live element
func (x *ArrayView) Values() ([]any, error) {
	values := make([]any, 0, x.Len())
	for _, item := range x.All() {
		values = append(values, item)
	}
	return values, x.Err()
}

// All iterates over the live elements in order.
// Iteration stops at the first element that fails coercion; see Err.
func (x *ArrayView) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		if x == nil {
			return
		}
		x.err = nil
		for i, raw := range x.raw {
			value, err := x.elem.Exert(raw)
			if err != nil {
				x.err = err
				return
			}
			if !yield(i, value) {
				return
			}
		}
	}
}

// Err returns the coercion error that stopped the last iteration, if any
func (x *ArrayView) Err() error {
	if x == nil {
		return nil
	}
	return x.err
}

// BagView is a read-through view over a stored raw mapping.
// Every access exerts the value type; the raw mapping is never copied or mutated.
type BagView struct {
	raw  map[string]any
	elem Type
	err  error
}

// Len returns the number of entries
func (x *BagView) Len() int {
	if x == nil {
		return 0
	}
	return len(x.raw)
}

// Has reports whether key is present
func (x *BagView) Has(key string) bool {
	if x == nil {
		return false
	}
	_, ok := x.raw[key]
	return ok
}

// Get returns the live value stored under key, nil when absent
func (x *BagView) Get(key string) (any, error) {
	if !x.Has(key) {
		return nil, nil
	}
	return x.elem.Exert(x.raw[key])
}

// Keys returns the keys in sorted order
func (x *BagView) Keys() []string {
	if x == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(x.raw))
}

// Raw returns the underlying raw mapping
func (x *BagView) Raw() map[string]any {
	if x == nil {
		return nil
	}
	return x.raw
}

// All iterates over the live entries in key order.
// Iteration stops at the first value that fails coercion; see Err.
func (x *BagView) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if x == nil {
			return
		}
		x.err = nil
		for _, key := range x.Keys() {
			value, err := x.elem.Exert(x.raw[key])
			if err != nil {
				x.err = err
				return
			}
			if !yield(key, value) {
				return
			}
		}
	}
}

// Err returns the coercion error that stopped the last iteration, if any
func (x *BagView) Err() error {
	if x == nil {
		return nil
	}
	return x.err
}
