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

// Package identity implements the identifier algebra shared by every plugin:
// identifiers of the form kind:plugin.localName and the namespace compiler
// plugins use to declare the identifiers they export.
package identity

import (
	"strings"

	"github.com/tochemey/goplatform/errors"
)

// Kind is the leading segment of an identifier, e.g. "class" or "metadata".
type Kind string

// PluginID names the plugin owning an identifier.
type PluginID string

// ID is a parsed identifier. The zero value is not a valid identifier.
//
// LocalName keeps its leading dot so that String is the exact inverse of Parse.
type ID struct {
	Kind      Kind
	Plugin    PluginID
	LocalName string
}

// Parse splits s into its kind, plugin and local name.
// It fails with ErrMalformedIdentifier when s has no ':' or no '.' after it,
// or when the kind or the plugin segment is empty.
func Parse(s string) (ID, error) {
	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return ID{}, errors.NewErrMalformedIdentifier(s)
	}

	rest := s[colon+1:]
	dot := strings.IndexByte(rest, '.')
	if dot <= 0 {
		return ID{}, errors.NewErrMalformedIdentifier(s)
	}

	return ID{
		Kind:      Kind(s[:colon]),
		Plugin:    PluginID(rest[:dot]),
		LocalName: rest[dot:],
	}, nil
}

// MustParse is like Parse but panics on a malformed identifier.
// It is meant for package-level declarations.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// New builds an identifier from its parts.
// name gets a leading '.' when it does not already carry one.
func New(kind Kind, plugin PluginID, name string) (ID, error) {
	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	// the plugin segment ends at the first dot
	if kind == "" || plugin == "" || strings.ContainsAny(string(kind), ":") || strings.ContainsAny(string(plugin), ".:") {
		return ID{}, errors.NewErrMalformedIdentifier(string(kind) + ":" + string(plugin) + name)
	}
	return ID{Kind: kind, Plugin: plugin, LocalName: name}, nil
}

// KindOf returns the substring of s before the first ':'.
// It returns s unchanged when there is no ':'.
func KindOf(s string) Kind {
	if colon := strings.IndexByte(s, ':'); colon >= 0 {
		return Kind(s[:colon])
	}
	return Kind(s)
}

// String formats the identifier as kind:plugin.localName
func (id ID) String() string {
	return string(id.Kind) + ":" + string(id.Plugin) + id.LocalName
}

// IsZero reports whether id is the zero identifier.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Name returns the local name without its leading dot.
func (id ID) Name() string {
	return strings.TrimPrefix(id.LocalName, ".")
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
