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

// Package model is the object-document runtime: it builds classes from
// declarative documents, materializes their merged attribute bags on demand,
// and creates struct and document instances whose attributes are coerced
// lazily on every access.
//
// A Session never blocks on I/O: every operation is synchronous. It is safe
// for concurrent use.
package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	gerrors "github.com/tochemey/goplatform/errors"
	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/internal/xsync"
	"github.com/tochemey/goplatform/log"
)

// DocumentRoot is the default class every document class extends
const DocumentRoot Ref = "class:core.Doc"

// MetadataSource resolves native bindings.
// The platform implements it.
type MetadataSource interface {
	GetMetadata(id identity.ID) (any, bool)
}

// Natives is a MetadataSource backed by a plain map
type Natives map[identity.ID]any

// GetMetadata implements MetadataSource
func (n Natives) GetMetadata(id identity.ID) (any, bool) {
	value, ok := n[id]
	return value, ok
}

// Constructor creates instances of one class
type Constructor func(data map[string]any) (Object, error)

// Option configures a Session
type Option interface {
	// Apply sets the Option value of a session.
	Apply(s *Session)
}

// OptionFunc implements the Option interface.
type OptionFunc func(*Session)

// Apply applies the option to the session
func (f OptionFunc) Apply(s *Session) {
	f(s)
}

// WithLogger sets the session logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(s *Session) {
		s.logger = logger
	})
}

// WithDocumentRoot sets the class marking document classes
func WithDocumentRoot(root Ref) Option {
	return OptionFunc(func(s *Session) {
		s.documentRoot = root
	})
}

// Session holds a class table, the constructors of its materialized classes
// and the registry of document containers.
type Session struct {
	natives      MetadataSource
	logger       log.Logger
	documentRoot Ref

	mu      sync.RWMutex
	classes map[Ref]*classEntry

	materialized *xsync.Map[Ref, *Class]
	constructors *xsync.Map[Ref, Constructor]
	containers   *xsync.Map[Ref, *Container]
}

// NewSession creates a Session resolving natives through source
func NewSession(source MetadataSource, opts ...Option) *Session {
	if source == nil {
		source = Natives{}
	}
	s := &Session{
		natives:      source,
		logger:       log.DefaultLogger,
		documentRoot: DocumentRoot,
		classes:      make(map[Ref]*classEntry),
		materialized: xsync.NewMap[Ref, *Class](),
		constructors: xsync.NewMap[Ref, Constructor](),
		containers:   xsync.NewMap[Ref, *Container](),
	}
	for _, opt := range opts {
		opt.Apply(s)
	}
	return s
}

// NewInstance creates an instance of a class.
//
// A struct class yields a new *Struct. A document class yields a *Document:
// the container for data["_id"] is created, with the class as primary, or the
// class is attached to the existing container like a mixin. A missing id is
// generated.
func (s *Session) NewInstance(classID Ref, data map[string]any) (Object, error) {
	class, err := s.GetClass(classID)
	if err != nil {
		return nil, err
	}
	return class.NewInstance(data)
}

// constructor returns the cached constructor of class
func (s *Session) constructor(class *Class) Constructor {
	ctor, _ := s.constructors.GetOrSet(class.id, func() Constructor {
		if class.kind == DocumentKind {
			return s.documentConstructor(class)
		}
		return s.structConstructor(class)
	})
	return ctor
}

func (s *Session) structConstructor(class *Class) Constructor {
	return func(data map[string]any) (Object, error) {
		raw, err := class.hibernate(data)
		if err != nil {
			return nil, err
		}
		raw[ClassKey] = string(class.id)
		return &Struct{class: class, data: raw}, nil
	}
}

func (s *Session) documentConstructor(class *Class) Constructor {
	return func(data map[string]any) (Object, error) {
		id, err := documentID(data)
		if err != nil {
			return nil, err
		}

		raw, err := class.hibernate(data)
		if err != nil {
			return nil, err
		}

		container, loaded := s.containers.GetOrSet(id, func() *Container {
			return newContainer(id, class.id)
		})
		if loaded {
			container.attach(class.id)
		}
		container.merge(raw)
		return &Document{class: class, container: container}, nil
	}
}

func documentID(data map[string]any) (Ref, error) {
	switch id := data[IDKey].(type) {
	case nil:
		return Ref(uuid.NewString()), nil
	case string:
		if id == "" {
			return Ref(uuid.NewString()), nil
		}
		return Ref(id), nil
	case Ref:
		if id == "" {
			return Ref(uuid.NewString()), nil
		}
		return id, nil
	default:
		return "", gerrors.NewErrCoercion("document id", id)
	}
}

// Mixin attaches a document class to the document behind target and merges data
// under that class' keys. Attaching a class twice is a no-op besides the merge.
func (s *Session) Mixin(target *Document, mixinClassID Ref, data map[string]any) (*Document, error) {
	class, err := s.GetClass(mixinClassID)
	if err != nil {
		return nil, err
	}
	if class.kind != DocumentKind {
		return nil, gerrors.NewErrInvalidClass(string(mixinClassID), errors.New("a mixin must be a document class"))
	}

	raw, err := class.hibernate(data)
	if err != nil {
		return nil, err
	}

	container := target.container
	container.attach(class.id)
	container.merge(raw)
	return &Document{class: class, container: container}, nil
}

// GetInstance returns a document viewed through expectedClass.
// The class must be the primary, a mixin, or an ancestor of one of them.
// An empty expectedClass yields the primary view.
func (s *Session) GetInstance(id Ref, expectedClass Ref) (*Document, error) {
	container, ok := s.containers.Get(id)
	if !ok {
		return nil, gerrors.NewErrUnknownInstance(string(id))
	}
	if expectedClass == "" {
		expectedClass = container.Primary()
	}
	return s.view(container, expectedClass)
}

func (s *Session) view(container *Container, classID Ref) (*Document, error) {
	class, err := s.GetClass(classID)
	if err != nil {
		return nil, err
	}

	for _, carried := range container.Classes() {
		carriedClass, err := s.GetClass(carried)
		if err != nil {
			return nil, err
		}
		if carriedClass.IsA(classID) {
			return &Document{class: class, container: container}, nil
		}
	}
	return nil, gerrors.NewErrClassMismatch(string(container.id), string(classID))
}

// RemoveInstance drops a document from the registry and reports whether it was present
func (s *Session) RemoveInstance(id Ref) bool {
	return s.containers.DeleteIf(id, func(*Container) bool { return true })
}

// Instances returns the ids of the registered documents in no particular order
func (s *Session) Instances() []Ref {
	return s.containers.Keys()
}

// Describe returns a one-line label of an object, for tooling that does not know its shape
func Describe(object Object) string {
	if doc, ok := object.(*Document); ok {
		return fmt.Sprintf("%s (%s)", doc.ToIntlString(), doc.ID())
	}
	return object.ToIntlString()
}
