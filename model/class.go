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
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	gerrors "github.com/tochemey/goplatform/errors"
)

// Kind tells struct classes from document classes
type Kind int

const (
	// StructKind classes build value-like instances with unqualified keys
	StructKind Kind = iota
	// DocumentKind classes build identity-bearing instances stored in containers
	DocumentKind
)

// String returns the kind label
func (k Kind) String() string {
	if k == DocumentKind {
		return "doc"
	}
	return "struct"
}

// ClassState is the lifecycle state of a class id within a session
type ClassState int

const (
	// Undeclared means no class document was ingested for the id
	Undeclared ClassState = iota
	// Declared means the class document is known
	Declared
	// Materialized means the merged attributes and the constructor are cached
	Materialized
)

// String returns the state label
func (s ClassState) String() string {
	switch s {
	case Declared:
		return "declared"
	case Materialized:
		return "materialized"
	default:
		return "undeclared"
	}
}

type classEntry struct {
	doc         ClassDoc
	fingerprint uint64
}

// ResolvedAttribute is an attribute of a materialized class
type ResolvedAttribute struct {
	Name  string
	Owner Ref
	Spec  TypeSpec
	Type  Type
}

// Class is a materialized class: its inherited attributes merged and their types built
type Class struct {
	session    *Session
	id         Ref
	extends    Ref
	kind       Kind
	chain      []Ref
	attributes []*ResolvedAttribute
	index      map[string]*ResolvedAttribute
}

// ID returns the class id
func (c *Class) ID() Ref {
	return c.id
}

// Extends returns the parent class id, empty for the root class
func (c *Class) Extends() Ref {
	return c.extends
}

// Kind returns the class kind
func (c *Class) Kind() Kind {
	return c.kind
}

// Session returns the session the class belongs to
func (c *Class) Session() *Session {
	return c.session
}

// ToIntlString returns "struct: <id>" or "doc: <id>"
func (c *Class) ToIntlString() string {
	return c.kind.String() + ": " + string(c.id)
}

// Ancestors returns the class id followed by its ancestors up to the root
func (c *Class) Ancestors() []Ref {
	out := make([]Ref, len(c.chain))
	copy(out, c.chain)
	return out
}

// IsA reports whether the class is other or extends it
func (c *Class) IsA(other Ref) bool {
	for _, ref := range c.chain {
		if ref == other {
			return true
		}
	}
	return false
}

// Attributes returns the merged attributes, parents first
func (c *Class) Attributes() []ResolvedAttribute {
	out := make([]ResolvedAttribute, 0, len(c.attributes))
	for _, attr := range c.attributes {
		out = append(out, *attr)
	}
	return out
}

// Attribute returns the merged attribute named name
func (c *Class) Attribute(name string) (ResolvedAttribute, bool) {
	attr, ok := c.index[name]
	if !ok {
		return ResolvedAttribute{}, false
	}
	return *attr, true
}

// NewInstance creates an instance of the class
func (c *Class) NewInstance(data map[string]any) (Object, error) {
	return c.session.constructor(c)(data)
}

// storageKey returns the key an attribute is stored under.
// Reserved keys and struct keys stay unqualified.
func (c *Class) storageKey(name string) string {
	if c.kind == StructKind || isReserved(name) {
		return name
	}
	if attr, ok := c.index[name]; ok {
		return string(attr.Owner) + ":" + name
	}
	return string(c.id) + ":" + name
}

// hibernate coerces data into raw storable values keyed for storage
func (c *Class) hibernate(data map[string]any) (map[string]any, error) {
	raw := make(map[string]any, len(data))
	for name, value := range data {
		if isBookkeeping(name) {
			continue
		}
		attr, ok := c.index[name]
		if !ok {
			if isReserved(name) {
				raw[name] = value
				continue
			}
			return nil, gerrors.NewErrUnknownAttribute(string(c.id), name)
		}
		hibernated, err := attr.Type.Hibernate(value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		raw[c.storageKey(name)] = hibernated
	}
	return raw, nil
}

// DeclareClass records a class document.
//
// The parent must already be declared and the extends chain must not loop.
// A class without parent is a root and must have an empty attribute bag.
// Redeclaring a class with identical content is a no-op.
func (s *Session) DeclareClass(doc ClassDoc) error {
	if doc.ID == "" {
		return gerrors.NewErrInvalidClass("", errors.New("class id is required"))
	}

	fingerprint, err := fingerprintOf(doc)
	if err != nil {
		return gerrors.NewErrInvalidClass(string(doc.ID), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.classes[doc.ID]; ok {
		if existing.fingerprint == fingerprint {
			return nil
		}
		return gerrors.NewErrClassAlreadyDeclared(string(doc.ID))
	}

	if err := s.checkClass(doc); err != nil {
		return err
	}

	s.classes[doc.ID] = &classEntry{doc: doc, fingerprint: fingerprint}
	s.logger.Debugf("class %s declared", doc.ID)
	return nil
}

// checkClass validates doc against the declared classes. Callers must hold s.mu.
func (s *Session) checkClass(doc ClassDoc) error {
	if doc.Extends == "" {
		if len(doc.Attributes) > 0 {
			return gerrors.NewErrInvalidClass(string(doc.ID), errors.New("a root class must have an empty attribute bag"))
		}
	} else {
		visited := mapset.NewThreadUnsafeSet(doc.ID)
		for parent := doc.Extends; parent != ""; {
			if !visited.Add(parent) {
				return gerrors.NewErrCyclicInheritance(string(doc.ID))
			}
			entry, ok := s.classes[parent]
			if !ok {
				return gerrors.NewErrUnknownClass(string(parent))
			}
			parent = entry.doc.Extends
		}
	}

	names := mapset.NewThreadUnsafeSet[string]()
	for _, attr := range doc.Attributes {
		if attr.Name == "" {
			return gerrors.NewErrInvalidClass(string(doc.ID), errors.New("attribute name is required"))
		}
		if !names.Add(attr.Name) {
			return gerrors.NewErrInvalidClass(string(doc.ID), fmt.Errorf("attribute %s declared twice", attr.Name))
		}
		if attr.Type.Class == "" {
			return gerrors.NewErrInvalidClass(string(doc.ID), fmt.Errorf("attribute %s has no type", attr.Name))
		}
	}
	return nil
}

// ClassState returns the lifecycle state of a class id
func (s *Session) ClassState(id Ref) ClassState {
	if _, ok := s.materialized.Get(id); ok {
		return Materialized
	}
	s.mu.RLock()
	_, ok := s.classes[id]
	s.mu.RUnlock()
	if ok {
		return Declared
	}
	return Undeclared
}

// ClassDoc returns the declared document of a class
func (s *Session) ClassDoc(id Ref) (ClassDoc, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.classes[id]
	if !ok {
		return ClassDoc{}, false
	}
	return entry.doc, true
}

// ClassIDs returns the declared class ids in no particular order
func (s *Session) ClassIDs() []Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]Ref, 0, len(s.classes))
	for id := range s.classes {
		ids = append(ids, id)
	}
	return ids
}

// GetClass returns the materialized class, materializing it on first request
func (s *Session) GetClass(id Ref) (*Class, error) {
	if class, ok := s.materialized.Get(id); ok {
		return class, nil
	}

	docs, err := s.chainOf(id)
	if err != nil {
		return nil, err
	}

	class := &Class{
		session: s,
		id:      id,
		extends: docs[0].Extends,
		kind:    StructKind,
		chain:   make([]Ref, 0, len(docs)),
		index:   make(map[string]*ResolvedAttribute),
	}

	for _, doc := range docs {
		class.chain = append(class.chain, doc.ID)
		if doc.ID == s.documentRoot {
			class.kind = DocumentKind
		}
	}

	// parents first; an override keeps the parent position and takes ownership
	for i := len(docs) - 1; i >= 0; i-- {
		for _, attr := range docs[i].Attributes {
			if existing, ok := class.index[attr.Name]; ok {
				existing.Owner = docs[i].ID
				existing.Spec = attr.Type
				continue
			}
			resolved := &ResolvedAttribute{Name: attr.Name, Owner: docs[i].ID, Spec: attr.Type}
			class.attributes = append(class.attributes, resolved)
			class.index[attr.Name] = resolved
		}
	}

	for _, attr := range class.attributes {
		typ, err := s.TypeOf(attr.Spec)
		if err != nil {
			return nil, gerrors.NewErrInvalidClass(string(id), fmt.Errorf("attribute %s: %w", attr.Name, err))
		}
		attr.Type = typ
	}

	class, loaded := s.materialized.GetOrSet(id, func() *Class { return class })
	if !loaded {
		s.logger.Debugf("class %s materialized as %s", id, class.kind)
	}
	return class, nil
}

// chainOf returns the documents of id and its ancestors, id first
func (s *Session) chainOf(id Ref) ([]ClassDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []ClassDoc
	for current := id; current != ""; {
		entry, ok := s.classes[current]
		if !ok {
			return nil, gerrors.NewErrUnknownClass(string(current))
		}
		docs = append(docs, entry.doc)
		current = entry.doc.Extends
	}
	return docs, nil
}

// CreateClass declares a class and returns it materialized
func (s *Session) CreateClass(id, extends Ref, attributes Bag) (*Class, error) {
	if err := s.DeclareClass(ClassDoc{ID: id, Extends: extends, Attributes: attributes}); err != nil {
		return nil, err
	}
	return s.GetClass(id)
}

// TypeOf builds the Type declared by spec through the native bound along its class chain
func (s *Session) TypeOf(spec TypeSpec) (Type, error) {
	if spec.Class == "" {
		return nil, gerrors.NewErrNotAType("")
	}

	docs, err := s.chainOf(spec.Class)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if doc.Native.IsZero() {
			continue
		}
		native, ok := s.natives.GetMetadata(doc.Native)
		if !ok {
			return nil, gerrors.NewErrMissingMetadataValue("native", doc.Native.String())
		}
		switch factory := native.(type) {
		case TypeFactory:
			return factory(s, spec)
		case func(*Session, TypeSpec) (Type, error):
			return factory(s, spec)
		default:
			return nil, gerrors.NewErrNotAType(string(spec.Class))
		}
	}
	return nil, gerrors.NewErrNotAType(string(spec.Class))
}

func fingerprintOf(doc ClassDoc) (uint64, error) {
	encoded, err := yaml.Marshal(doc)
	if err != nil {
		return 0, err
	}
	return xxh3.Hash(encoded), nil
}
