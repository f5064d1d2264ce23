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
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tochemey/goplatform/identity"
)

// Ref references a class or a document by id
type Ref string

// String returns the referenced id
func (r Ref) String() string {
	return string(r)
}

// TypeSpec is the declared type of an attribute.
//
// Class selects the type class. Of is the element type of collection types and
// Target is the class referenced by InstanceOf and RefTo types. In YAML a bare
// scalar is shorthand for a spec holding only Class.
type TypeSpec struct {
	Class   Ref       `yaml:"class"`
	Of      *TypeSpec `yaml:"of,omitempty"`
	Target  Ref       `yaml:"target,omitempty"`
	Default any       `yaml:"default,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *TypeSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*t = TypeSpec{Class: Ref(node.Value)}
		return nil
	}
	type plain TypeSpec
	var spec plain
	if err := node.Decode(&spec); err != nil {
		return err
	}
	*t = TypeSpec(spec)
	return nil
}

// Attribute is one named entry of a Bag
type Attribute struct {
	Name string
	Type TypeSpec
}

// Bag is an ordered mapping from attribute name to declared type.
// Its YAML form is a mapping whose order is kept.
type Bag []Attribute

// Get returns the attribute named name
func (b Bag) Get(name string) (Attribute, bool) {
	for _, attr := range b {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// Names returns the attribute names in order
func (b Bag) Names() []string {
	names := make([]string, 0, len(b))
	for _, attr := range b {
		names = append(names, attr.Name)
	}
	return names
}

// UnmarshalYAML implements yaml.Unmarshaler
func (b *Bag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attributes must be a mapping", node.Line)
	}
	bag := make(Bag, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var spec TypeSpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return err
		}
		bag = append(bag, Attribute{Name: node.Content[i].Value, Type: spec})
	}
	*b = bag
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (b Bag) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, attr := range b {
		value := new(yaml.Node)
		if err := value.Encode(attr.Type); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: attr.Name},
			value)
	}
	return node, nil
}

// ClassDoc is the declarative description of a class
type ClassDoc struct {
	ID         Ref         `yaml:"id"`
	Extends    Ref         `yaml:"extends,omitempty"`
	Attributes Bag         `yaml:"attributes,omitempty"`
	Native     identity.ID `yaml:"native,omitempty"`
}

// NewClassDoc creates a ClassDoc
func NewClassDoc(id, extends Ref, attributes ...Attribute) ClassDoc {
	return ClassDoc{ID: id, Extends: extends, Attributes: attributes}
}

// WithNative returns a copy of the document bound to the given native
func (c ClassDoc) WithNative(native identity.ID) ClassDoc {
	c.Native = native
	return c
}

// Attr creates an Attribute
func Attr(name string, spec TypeSpec) Attribute {
	return Attribute{Name: name, Type: spec}
}
