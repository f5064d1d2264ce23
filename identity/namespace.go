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
	"maps"
	"slices"

	"github.com/tochemey/goplatform/errors"
)

// Namespace maps a namespace (an identifier kind) to its keys and their identifiers.
//
// Before compilation a leaf holds either the empty placeholder or an explicit
// identifier aliasing one defined elsewhere.
type Namespace map[string]map[string]string

// Compile synthesizes "<namespace>:<plugin>.<key>" for every empty leaf of ns.
// Non-empty leaves pass through unchanged. ns is never mutated.
func Compile(plugin PluginID, ns Namespace) Namespace {
	compiled := make(Namespace, len(ns))
	for namespace, keys := range ns {
		leaves := make(map[string]string, len(keys))
		for key, value := range keys {
			if value == "" {
				value = namespace + ":" + string(plugin) + "." + key
			}
			leaves[key] = value
		}
		compiled[namespace] = leaves
	}
	return compiled
}

// Merge returns the union of a and b.
// A key present in both with different values fails with ErrIdentifierConflict.
func Merge(a, b Namespace) (Namespace, error) {
	merged := make(Namespace, len(a)+len(b))
	for _, source := range []Namespace{a, b} {
		for _, namespace := range slices.Sorted(maps.Keys(source)) {
			leaves, ok := merged[namespace]
			if !ok {
				leaves = make(map[string]string, len(source[namespace]))
				merged[namespace] = leaves
			}
			for _, key := range slices.Sorted(maps.Keys(source[namespace])) {
				value := source[namespace][key]
				if existing, ok := leaves[key]; ok && existing != value {
					return nil, errors.NewErrIdentifierConflict(namespace, key, existing, value)
				}
				leaves[key] = value
			}
		}
	}
	return merged, nil
}

// ID returns the parsed identifier stored under namespace and key.
func (ns Namespace) ID(namespace, key string) (ID, error) {
	value, ok := ns[namespace][key]
	if !ok || value == "" {
		return ID{}, errors.NewErrMalformedIdentifier(namespace + "." + key)
	}
	return Parse(value)
}

// MustID is like ID but panics when the leaf is missing or malformed.
func (ns Namespace) MustID(namespace, key string) ID {
	id, err := ns.ID(namespace, key)
	if err != nil {
		panic(err)
	}
	return id
}

// IDs returns the parsed identifiers of one namespace keyed by their key.
func (ns Namespace) IDs(namespace string) (map[string]ID, error) {
	out := make(map[string]ID, len(ns[namespace]))
	for key := range ns[namespace] {
		id, err := ns.ID(namespace, key)
		if err != nil {
			return nil, err
		}
		out[key] = id
	}
	return out, nil
}
