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

package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tochemey/goplatform/model"
)

// RecordKind tells what a record declares
type RecordKind string

const (
	// ClassRecord declares a class
	ClassRecord RecordKind = "class"
	// InstanceRecord creates an instance of a class
	InstanceRecord RecordKind = "instance"
	// MixinRecord attaches a mixin class to an existing document
	MixinRecord RecordKind = "mixin"
)

// Record is one entry of a model file.
//
// Class records carry Doc. Instance records carry Class and Data.
// Mixin records carry Target, the id of the document, along with Class and Data.
type Record struct {
	Kind   RecordKind
	Doc    model.ClassDoc
	Class  model.Ref
	Target model.Ref
	Data   map[string]any
}

// ClassOf creates a class record
func ClassOf(doc model.ClassDoc) Record {
	return Record{Kind: ClassRecord, Doc: doc}
}

// InstanceOf creates an instance record
func InstanceOf(class model.Ref, data map[string]any) Record {
	return Record{Kind: InstanceRecord, Class: class, Data: data}
}

// MixinOf creates a mixin record
func MixinOf(target, class model.Ref, data map[string]any) Record {
	return Record{Kind: MixinRecord, Target: target, Class: class, Data: data}
}

// String returns a short label of the record
func (r Record) String() string {
	switch r.Kind {
	case ClassRecord:
		return fmt.Sprintf("class %s", r.Doc.ID)
	case MixinRecord:
		return fmt.Sprintf("mixin %s on %s", r.Class, r.Target)
	default:
		return fmt.Sprintf("%s %s", r.Kind, r.Class)
	}
}

type body struct {
	Class  model.Ref      `yaml:"class"`
	Target model.Ref      `yaml:"target,omitempty"`
	Data   map[string]any `yaml:"data,omitempty"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
// Class records hold the class document fields next to the kind.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Kind RecordKind `yaml:"kind"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}

	record := Record{Kind: head.Kind}
	switch head.Kind {
	case ClassRecord:
		if err := node.Decode(&record.Doc); err != nil {
			return err
		}
	default:
		var b body
		if err := node.Decode(&b); err != nil {
			return err
		}
		record.Class, record.Target, record.Data = b.Class, b.Target, b.Data
	}
	*r = record
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (r Record) MarshalYAML() (any, error) {
	node := new(yaml.Node)
	var err error
	if r.Kind == ClassRecord {
		err = node.Encode(r.Doc)
	} else {
		err = node.Encode(body{Class: r.Class, Target: r.Target, Data: r.Data})
	}
	if err != nil {
		return nil, err
	}
	kind := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "kind"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(r.Kind)},
	}
	node.Content = append(kind, node.Content...)
	return node, nil
}
