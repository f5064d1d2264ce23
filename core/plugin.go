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

// Package core is the plugin every model session depends on. It binds the
// behavior of the core types as platform metadata and publishes the core
// class documents as resources.
package core

import (
	"context"
	"fmt"

	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/loader"
	"github.com/tochemey/goplatform/log"
	"github.com/tochemey/goplatform/model"
	"github.com/tochemey/goplatform/platform"
)

// Version is the version of the core plugin
const Version = "0.1.0"

// Plugin is the service of the core plugin
type Plugin struct {
	platform *platform.Platform
	logger   log.Logger
}

var _ platform.ResourceProvider = (*Plugin)(nil)

// Location returns the descriptor and the module loader of the core plugin
func Location() (platform.Descriptor, platform.ModuleLoader) {
	descriptor := platform.NewDescriptor(PluginID).WithVersion(Version)
	return descriptor, func(context.Context) (platform.Factory, error) {
		return start, nil
	}
}

// Install registers the core plugin on p and makes it the resolver of class resources
func Install(p *platform.Platform) error {
	if err := p.AddLocation(Location()); err != nil {
		return err
	}
	p.SetResolver(ClassObj.Kind, PluginID)
	return nil
}

func start(_ context.Context, p *platform.Platform, _ map[string]platform.Service) (platform.Service, error) {
	ids, err := IDs.IDs("native")
	if err != nil {
		return nil, err
	}
	if err := p.LoadMetadata(ids, natives()); err != nil {
		return nil, err
	}

	for _, record := range Model() {
		id, err := identity.Parse(string(record.Doc.ID))
		if err != nil {
			return nil, err
		}
		p.SetResource(id, record.Doc)
	}

	return &Plugin{
		platform: p,
		logger:   p.Logger().Named(string(PluginID)),
	}, nil
}

func natives() map[string]any {
	return map[string]any{
		"Type":       model.TypeFactory(model.NewValueType),
		"ArrayOf":    model.TypeFactory(model.NewArrayOf),
		"BagOf":      model.TypeFactory(model.NewBagOf),
		"InstanceOf": model.TypeFactory(model.NewInstanceOf),
		"RefTo":      model.TypeFactory(model.NewRefTo),
	}
}

// Model returns the records of the core model
func Model() []loader.Record {
	return []loader.Record{
		loader.ClassOf(model.NewClassDoc(Ref(ClassObj), "")),
		loader.ClassOf(model.NewClassDoc(Ref(ClassEmb), Ref(ClassObj))),
		loader.ClassOf(model.NewClassDoc(Ref(ClassDoc), Ref(ClassObj))),
		loader.ClassOf(model.NewClassDoc(Ref(ClassType), Ref(ClassEmb),
			model.Attr(ofKey, InstanceOf(Ref(ClassType))),
			model.Attr(targetKey, RefTo(Ref(ClassClass))),
			model.Attr(defaultKey, Value())).WithNative(NativeType)),
		loader.ClassOf(model.NewClassDoc(Ref(ClassArrayOf), Ref(ClassType)).WithNative(NativeArrayOf)),
		loader.ClassOf(model.NewClassDoc(Ref(ClassBagOf), Ref(ClassType)).WithNative(NativeBagOf)),
		loader.ClassOf(model.NewClassDoc(Ref(ClassInstanceOf), Ref(ClassType)).WithNative(NativeInstanceOf)),
		loader.ClassOf(model.NewClassDoc(Ref(ClassRefTo), Ref(ClassType)).WithNative(NativeRefTo)),
		loader.ClassOf(model.NewClassDoc(Ref(ClassClass), Ref(ClassDoc),
			model.Attr(extendsKey, RefTo(Ref(ClassClass))),
			model.Attr(attributesKey, BagOf(InstanceOf(Ref(ClassType)))),
			model.Attr(nativeKey, Value()))),
	}
}

// NewSession creates a session bound to the platform with the core model loaded
func (x *Plugin) NewSession(opts ...model.Option) (*model.Session, error) {
	defaults := []model.Option{
		model.WithDocumentRoot(Ref(ClassDoc)),
		model.WithLogger(x.platform.Logger()),
	}
	session := model.NewSession(x.platform, append(defaults, opts...)...)
	if err := loader.Load(session, Model()); err != nil {
		return nil, fmt.Errorf("failed to load the core model: %w", err)
	}
	x.logger.Debug("session created")
	return session, nil
}

// Resolve implements platform.ResourceProvider for class identifiers.
// Published class documents are served directly; any other class starts
// its owning plugin.
func (x *Plugin) Resolve(ctx context.Context, id identity.ID) (any, error) {
	if value, ok := x.platform.PeekResource(id); ok {
		return value, nil
	}
	return x.platform.GetResource(ctx, id)
}
