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

package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/log"
)

// testPlugin counts how often its module loader and factory run
type testPlugin struct {
	loads     *atomic.Int32
	factories *atomic.Int32
	// gate, when set, blocks the module loader until closed
	gate    chan struct{}
	entered chan struct{}
	factory Factory
}

func newTestPlugin(factory Factory) *testPlugin {
	return &testPlugin{
		loads:     atomic.NewInt32(0),
		factories: atomic.NewInt32(0),
		entered:   make(chan struct{}, 1),
		factory:   factory,
	}
}

func (x *testPlugin) gated() *testPlugin {
	x.gate = make(chan struct{})
	return x
}

func (x *testPlugin) loader() ModuleLoader {
	return func(ctx context.Context) (Factory, error) {
		x.loads.Inc()
		select {
		case x.entered <- struct{}{}:
		default:
		}
		if x.gate != nil {
			<-x.gate
		}
		return func(ctx context.Context, p *Platform, deps map[string]Service) (Service, error) {
			x.factories.Inc()
			return x.factory(ctx, p, deps)
		}, nil
	}
}

func serviceOf(value Service) Factory {
	return func(context.Context, *Platform, map[string]Service) (Service, error) {
		return value, nil
	}
}

func newTestPlatform(t *testing.T, opts ...Option) *Platform {
	t.Helper()
	p, err := New(append([]Option{WithLogger(log.DiscardLogger)}, opts...)...)
	require.NoError(t, err)
	return p
}

func register(t *testing.T, p *Platform, id identity.PluginID, plugin *testPlugin, deps ...Dependency) {
	t.Helper()
	require.NoError(t, p.AddLocation(NewDescriptor(id, deps...), plugin.loader()))
}
