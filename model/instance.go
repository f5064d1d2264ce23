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
	"maps"
	"slices"
	"strings"
	"sync"

	gerrors "github.com/tochemey/goplatform/errors"
)

const (
	// IDKey holds the id of a document
	IDKey = "_id"
	// ClassKey holds the class of an instance
	ClassKey = "_class"
	// MixinsKey lists the mixins of a document in raw snapshots
	MixinsKey = "_mixins"
)

// isReserved reports whether key is stored unqualified
func isReserved(key string) bool {
	return strings.HasPrefix(key, "_")
}

// isBookkeeping reports whether key is maintained by the runtime itself
func isBookkeeping(key string) bool {
	return key == IDKey || key == ClassKey || key == MixinsKey
}

// Object is a live instance bound to a session
type Object interface {
	// ClassID returns the class the object is viewed through
	ClassID() Ref
	// Get returns the live value of an attribute
	Get(key string) (any, error)
	// Set stores the raw form of a live value
	Set(key string, value any) error
	// ToIntlString returns the label of the object's class
	ToIntlString() string
	// Session returns the session the object is bound to
	Session() *Session
}

var (
	_ Object       = (*Struct)(nil)
	_ Object       = (*Document)(nil)
	_ Identifiable = (*Document)(nil)
)

// Struct is a value-like instance: no identity, unqualified keys.
// It reads and writes through its raw map. A Struct is not safe for concurrent writes.
type Struct struct {
	class *Class
	data  map[string]any
}

func (s *Session) wrapStruct(classID Ref, data map[string]any) (*Struct, error) {
	class, err := s.GetClass(classID)
	if err != nil {
		return nil, err
	}
	return &Struct{class: class, data: data}, nil
}

// ClassID returns the struct class
func (x *Struct) ClassID() Ref {
	return x.class.id
}

// Class returns the struct class
func (x *Struct) Class() *Class {
	return x.class
}

// Session returns the session the struct is bound to
func (x *Struct) Session() *Session {
	return x.class.session
}

// Get returns the live value of an attribute.
// Undeclared reserved keys return their raw value.
func (x *Struct) Get(key string) (any, error) {
	if key == ClassKey {
		return x.class.id, nil
	}
	attr, ok := x.class.index[key]
	if !ok {
		if isReserved(key) {
			return x.data[key], nil
		}
		return nil, gerrors.NewErrUnknownAttribute(string(x.class.id), key)
	}
	return attr.Type.Exert(x.data[key])
}

// Set hibernates value and stores it under key
func (x *Struct) Set(key string, value any) error {
	raw, err := x.class.hibernate(map[string]any{key: value})
	if err != nil {
		return err
	}
	maps.Copy(x.data, raw)
	return nil
}

// ToIntlString returns the label of the struct class
func (x *Struct) ToIntlString() string {
	return x.class.ToIntlString()
}

// Raw returns the underlying raw map
func (x *Struct) Raw() map[string]any {
	return x.data
}

// Copy returns a struct holding a shallow copy of the raw map
func (x *Struct) Copy() *Struct {
	return &Struct{class: x.class, data: maps.Clone(x.data)}
}

// Container is the storage cell of one document: its primary class,
// its mixins and the raw data of all of them.
type Container struct {
	mu      sync.RWMutex
	id      Ref
	primary Ref
	mixins  []Ref
	data    map[string]any
}

func newContainer(id, primary Ref) *Container {
	return &Container{
		id:      id,
		primary: primary,
		data: map[string]any{
			IDKey:    string(id),
			ClassKey: string(primary),
		},
	}
}

// ID returns the document id
func (c *Container) ID() Ref {
	return c.id
}

// Primary returns the primary class
func (c *Container) Primary() Ref {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.primary
}

// Mixins returns the attached mixin classes in attachment order
func (c *Container) Mixins() []Ref {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.mixins)
}

// Classes returns the primary class followed by the mixins
func (c *Container) Classes() []Ref {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Ref{c.primary}, c.mixins...)
}

// Raw returns a snapshot of the raw data, mixins included under MixinsKey
func (c *Container) Raw() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := maps.Clone(c.data)
	if len(c.mixins) > 0 {
		mixins := make([]any, 0, len(c.mixins))
		for _, mixin := range c.mixins {
			mixins = append(mixins, string(mixin))
		}
		snapshot[MixinsKey] = mixins
	}
	return snapshot
}

// attach adds class as a mixin unless it is the primary or already attached
func (c *Container) attach(class Ref) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if class == c.primary || slices.Contains(c.mixins, class) {
		return
	}
	c.mixins = append(c.mixins, class)
}

func (c *Container) merge(raw map[string]any) {
	c.mu.Lock()
	maps.Copy(c.data, raw)
	c.mu.Unlock()
}

func (c *Container) get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

// Document is a class view over a container
type Document struct {
	class     *Class
	container *Container
}

// ID returns the document id
func (d *Document) ID() Ref {
	return d.container.id
}

// ClassID returns the class of this view
func (d *Document) ClassID() Ref {
	return d.class.id
}

// Class returns the class of this view
func (d *Document) Class() *Class {
	return d.class
}

// Container returns the storage cell behind the view
func (d *Document) Container() *Container {
	return d.container
}

// Primary returns the primary class of the document
func (d *Document) Primary() Ref {
	return d.container.Primary()
}

// Mixins returns the mixin classes attached to the document
func (d *Document) Mixins() []Ref {
	return d.container.Mixins()
}

// Session returns the session the document is bound to
func (d *Document) Session() *Session {
	return d.class.session
}

// Get returns the live value of an attribute of the view class.
// Undeclared reserved keys return their raw value.
func (d *Document) Get(key string) (any, error) {
	attr, ok := d.class.index[key]
	if !ok {
		if isReserved(key) {
			return d.container.get(key), nil
		}
		return nil, gerrors.NewErrUnknownAttribute(string(d.class.id), key)
	}
	return attr.Type.Exert(d.container.get(d.class.storageKey(key)))
}

// Set hibernates value and stores it under the class-qualified key
func (d *Document) Set(key string, value any) error {
	raw, err := d.class.hibernate(map[string]any{key: value})
	if err != nil {
		return err
	}
	d.container.merge(raw)
	return nil
}

// As returns a view of the same document through another class
func (d *Document) As(class Ref) (*Document, error) {
	return d.class.session.view(d.container, class)
}

// ToIntlString returns the label of the view class
func (d *Document) ToIntlString() string {
	return d.class.ToIntlString()
}
