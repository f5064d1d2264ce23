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

// Package loader reads model files, ordered lists of class, instance and
// mixin records, and ingests them into a model session.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	gerrors "github.com/tochemey/goplatform/errors"
	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/internal/validation"
	"github.com/tochemey/goplatform/model"
)

// Decode reads records from r.
//
// The input is YAML or JSON. It holds either a sequence of records or a
// stream of documents, each being a sequence or a single record.
func Decode(r io.Reader) ([]Record, error) {
	decoder := yaml.NewDecoder(r)
	var records []Record
	for {
		var document yaml.Node
		err := decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode model: %w", err)
		}

		root := &document
		if root.Kind == yaml.DocumentNode {
			if len(root.Content) == 0 {
				continue
			}
			root = root.Content[0]
		}

		switch root.Kind {
		case yaml.SequenceNode:
			var batch []Record
			if err := root.Decode(&batch); err != nil {
				return nil, fmt.Errorf("failed to decode model: %w", err)
			}
			records = append(records, batch...)
		case yaml.MappingNode:
			var record Record
			if err := root.Decode(&record); err != nil {
				return nil, fmt.Errorf("failed to decode model: %w", err)
			}
			records = append(records, record)
		default:
			return nil, fmt.Errorf("line %d: a model document must be a record or a list of records", root.Line)
		}
	}
}

// Validate checks every record and returns all violations.
//
// A reference to a class declared by a later record of the same list is a
// forward reference and is reported. Classes the list does not declare are
// assumed to be known by the session.
func Validate(records []Record) error {
	declaredLater := mapset.NewThreadUnsafeSet[model.Ref]()
	for _, record := range records {
		if record.Kind == ClassRecord && record.Doc.ID != "" {
			declaredLater.Add(record.Doc.ID)
		}
	}

	declared := mapset.NewThreadUnsafeSet[model.Ref]()
	forward := func(ref model.Ref) bool {
		return ref != "" && !declared.Contains(ref) && declaredLater.Contains(ref)
	}

	var err error
	for index, record := range records {
		chain := validation.New(validation.AllErrors())
		switch record.Kind {
		case ClassRecord:
			chain.
				AddValidator(validation.NewEmptyStringValidator("id", string(record.Doc.ID))).
				AddAssertion(!declared.Contains(record.Doc.ID), fmt.Sprintf("class %s declared twice", record.Doc.ID)).
				AddAssertion(!forward(record.Doc.Extends), fmt.Sprintf("class %s extends %s before its declaration", record.Doc.ID, record.Doc.Extends))
			if !record.Doc.Native.IsZero() {
				chain.AddValidator(validation.NewIdentifierValidator("native", record.Doc.Native.String(), identity.Kind("native")))
			}
			declared.Add(record.Doc.ID)
		case InstanceRecord:
			chain.
				AddValidator(validation.NewEmptyStringValidator("class", string(record.Class))).
				AddAssertion(!forward(record.Class), fmt.Sprintf("instance of %s before its declaration", record.Class))
		case MixinRecord:
			chain.
				AddValidator(validation.NewEmptyStringValidator("target", string(record.Target))).
				AddValidator(validation.NewEmptyStringValidator("class", string(record.Class))).
				AddAssertion(!forward(record.Class), fmt.Sprintf("mixin %s before its declaration", record.Class))
		default:
			chain.AddAssertion(false, fmt.Sprintf("unknown record kind %q", record.Kind))
		}

		if violations := chain.Validate(); violations != nil {
			err = multierr.Append(err, gerrors.NewErrInvalidRecord(index, violations))
		}
	}
	return err
}

// Load ingests records into session strictly in order.
// The first failing record aborts the load; records before it stay ingested.
func Load(session *model.Session, records []Record) error {
	for index, record := range records {
		if err := apply(session, record); err != nil {
			return gerrors.NewErrInvalidRecord(index, err)
		}
	}
	return nil
}

func apply(session *model.Session, record Record) error {
	switch record.Kind {
	case ClassRecord:
		return session.DeclareClass(record.Doc)
	case InstanceRecord:
		_, err := session.NewInstance(record.Class, record.Data)
		return err
	case MixinRecord:
		target, err := session.GetInstance(record.Target, "")
		if err != nil {
			return err
		}
		_, err = session.Mixin(target, record.Class, record.Data)
		return err
	default:
		return fmt.Errorf("unknown record kind %q", record.Kind)
	}
}

// LoadFile decodes, validates and loads the model file at path
func LoadFile(session *model.Session, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	records, err := Decode(file)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := Validate(records); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := Load(session, records); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
