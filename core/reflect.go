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

package core

import (
	"slices"

	"github.com/tochemey/goplatform/model"
)

const (
	extendsKey    = "_extends"
	attributesKey = "_attributes"
	nativeKey     = "_native"

	ofKey      = "of"
	targetKey  = "target"
	defaultKey = "default"
)

// Reflect publishes every declared class of session as a document of
// class:core.Class whose id is the class id. Classes already published
// are refreshed.
func (x *Plugin) Reflect(session *model.Session) error {
	ids := session.ClassIDs()
	slices.Sort(ids)
	for _, id := range ids {
		doc, ok := session.ClassDoc(id)
		if !ok {
			continue
		}

		data := map[string]any{
			model.IDKey:   string(id),
			extendsKey:    doc.Extends,
			attributesKey: reflectAttributes(doc.Attributes),
		}
		if !doc.Native.IsZero() {
			data[nativeKey] = doc.Native.String()
		}

		if _, err := session.NewInstance(Ref(ClassClass), data); err != nil {
			return err
		}
	}
	x.logger.Debugf("%d classes reflected", len(ids))
	return nil
}

// reflectAttributes turns an attribute bag into a bag of type instances keyed by attribute name
func reflectAttributes(attributes model.Bag) map[string]any {
	raw := make(map[string]any, len(attributes))
	for _, attr := range attributes {
		raw[attr.Name] = reflectType(attr.Type)
	}
	return raw
}

// reflectType turns a type spec into the raw form of an instance of its type class
func reflectType(spec model.TypeSpec) map[string]any {
	raw := map[string]any{model.ClassKey: string(spec.Class)}
	if spec.Of != nil {
		raw[ofKey] = reflectType(*spec.Of)
	}
	if spec.Target != "" {
		raw[targetKey] = string(spec.Target)
	}
	if spec.Default != nil {
		raw[defaultKey] = spec.Default
	}
	return raw
}
