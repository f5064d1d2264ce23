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

// Package platform is the plugin host: it registers plugin locations, turns
// identifiers into resolved values, and instantiates plugins exactly once
// under concurrent demand.
package platform

import (
	"context"
	stderrors "errors"
	"maps"
	"slices"

	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"

	"github.com/tochemey/goplatform/errors"
	"github.com/tochemey/goplatform/future"
	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/internal/xsync"
	"github.com/tochemey/goplatform/log"
	"github.com/tochemey/goplatform/metric"
)

// DefaultVersion is reported for plugins whose descriptor carries no version
const DefaultVersion = "0.1.0"

// ResourceProvider is implemented by plugin services that resolve
// resources of a given kind on demand.
type ResourceProvider interface {
	Resolve(ctx context.Context, id identity.ID) (any, error)
}

// Platform is the context shared by every plugin.
// It is handed explicitly to each plugin factory; there is no global instance.
type Platform struct {
	logger         log.Logger
	defaultVersion string
	metricsEnabled *atomic.Bool
	meterProvider  otelmetric.MeterProvider
	metric         *metric.PlatformMetric

	metadata  *xsync.Map[identity.ID, any]
	resources *xsync.Map[identity.ID, any]
	resolving *xsync.Map[identity.ID, *future.Future[any]]

	resolvers         *xsync.Map[identity.Kind, identity.PluginID]
	resolvedProviders *xsync.Map[identity.Kind, *future.Future[ResourceProvider]]

	locations *xsync.Map[identity.PluginID, Location]
	order     *xsync.List[identity.PluginID]
	plugins   *xsync.Map[identity.PluginID, *future.Future[Service]]

	stats *stats
}

// New creates an instance of Platform
func New(opts ...Option) (*Platform, error) {
	p := &Platform{
		logger:            log.DefaultLogger,
		defaultVersion:    DefaultVersion,
		metricsEnabled:    atomic.NewBool(false),
		metadata:          xsync.NewMap[identity.ID, any](),
		resources:         xsync.NewMap[identity.ID, any](),
		resolving:         xsync.NewMap[identity.ID, *future.Future[any]](),
		resolvers:         xsync.NewMap[identity.Kind, identity.PluginID](),
		resolvedProviders: xsync.NewMap[identity.Kind, *future.Future[ResourceProvider]](),
		locations:         xsync.NewMap[identity.PluginID, Location](),
		order:             xsync.NewList[identity.PluginID](),
		plugins:           xsync.NewMap[identity.PluginID, *future.Future[Service]](),
		stats:             newStats(),
	}

	for _, opt := range opts {
		opt.Apply(p)
	}

	if p.metricsEnabled.Load() {
		platformMetric, err := metric.NewPlatformMetric(metric.NewProvider(p.meterProvider).Meter())
		if err != nil {
			return nil, err
		}
		p.metric = platformMetric
	}

	return p, nil
}

// Logger returns the platform logger
func (p *Platform) Logger() log.Logger {
	return p.logger
}

// Stats returns a snapshot of the platform counters
func (p *Platform) Stats() Stats {
	return p.stats.snapshot()
}

// GetMetadata returns the metadata value set for id
func (p *Platform) GetMetadata(id identity.ID) (any, bool) {
	return p.metadata.Get(id)
}

// SetMetadata sets the metadata value for id.
// Metadata is expected to be set before its first read.
func (p *Platform) SetMetadata(id identity.ID, value any) {
	p.metadata.Set(id, value)
}

// MetadataOf returns the metadata value set for id when it holds a T
func MetadataOf[T any](p *Platform, id identity.ID) (T, bool) {
	var zero T
	value, ok := p.metadata.Get(id)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// LoadMetadata sets the value of every declared metadata identifier.
//
// Every key of ids must have a non-nil value in values, otherwise
// ErrMissingMetadataValue is returned and nothing is written.
func (p *Platform) LoadMetadata(ids map[string]identity.ID, values map[string]any) error {
	keys := slices.Sorted(maps.Keys(ids))
	for _, key := range keys {
		if value, ok := values[key]; !ok || value == nil {
			err := errors.NewErrMissingMetadataValue(key, ids[key].String())
			p.logger.Error(err)
			return err
		}
	}

	for _, key := range keys {
		p.metadata.Set(ids[key], values[key])
	}
	return nil
}

// SetResource stores the resolved value of a resource.
// Plugins call it while starting to publish what they own.
func (p *Platform) SetResource(id identity.ID, value any) {
	p.resources.Set(id, value)
}

// PeekResource returns a resource only when it is already resolved
func (p *Platform) PeekResource(id identity.ID) (any, bool) {
	return p.resources.Get(id)
}

// SetResolver registers the plugin providing resources of the given kind
func (p *Platform) SetResolver(kind identity.Kind, plugin identity.PluginID) {
	p.resolvers.Set(kind, plugin)
}

// GetResource returns the value of a resource, starting its owning plugin when needed.
//
// Concurrent callers share one resolution. The resolution is detached from the
// callers' contexts: canceling ctx only abandons this caller's wait. A failed
// resolution is forgotten so a later call starts afresh.
func (p *Platform) GetResource(ctx context.Context, id identity.ID) (any, error) {
	if value, ok := p.resources.Get(id); ok {
		return value, nil
	}

	// the owning plugin is starting further up this call path and cannot be awaited
	if owner, ok := p.plugins.Get(id.Plugin); ok {
		if err := p.checkReentry(ctx, id.Plugin, owner); err != nil {
			return nil, err
		}
	}

	fut, loaded := p.resolving.GetOrSet(id, future.Pending[any])
	if !loaded {
		p.stats.resolutions.Inc()
		if p.metric != nil {
			p.metric.ResourceResolved(ctx, string(id.Kind))
		}

		fut.Start(ctx, func(ctx context.Context) (any, error) {
			defer p.resolving.DeleteIf(id, func(pending *future.Future[any]) bool { return pending == fut })
			return p.resolveResource(ctx, id)
		})
	}

	return fut.Await(ctx)
}

func (p *Platform) resolveResource(ctx context.Context, id identity.ID) (any, error) {
	p.logger.Debugf("resolving resource %s", id)
	if _, err := p.GetPlugin(ctx, id.Plugin); err != nil {
		// instantiation failures are counted where the plugin starts
		var pluginErr *errors.PluginError
		if !stderrors.As(err, &pluginErr) {
			p.recordFailure(ctx, id.Plugin)
		}
		return nil, err
	}

	value, ok := p.resources.Get(id)
	if !ok {
		p.recordFailure(ctx, id.Plugin)
		return nil, errors.NewErrResourceNotProduced(id.String())
	}
	return value, nil
}

func (p *Platform) recordFailure(ctx context.Context, plugin identity.PluginID) {
	p.stats.failures.Inc()
	if p.metric != nil {
		p.metric.ResolutionFailed(ctx, string(plugin))
	}
}

// Resolve returns the value of a resource through the provider registered for its kind.
// It falls back to GetResource when no provider is registered.
func (p *Platform) Resolve(ctx context.Context, id identity.ID) (any, error) {
	plugin, ok := p.resolvers.Get(id.Kind)
	if !ok {
		return p.GetResource(ctx, id)
	}

	fut, loaded := p.resolvedProviders.GetOrSet(id.Kind, future.Pending[ResourceProvider])
	if !loaded {
		fut.Start(ctx, func(ctx context.Context) (ResourceProvider, error) {
			service, err := p.GetPlugin(ctx, plugin)
			if err != nil {
				return nil, err
			}
			provider, ok := service.(ResourceProvider)
			if !ok {
				return nil, errors.NewErrNotAResourceProvider(string(plugin))
			}
			return provider, nil
		})
	}

	provider, err := fut.Await(ctx)
	if err != nil {
		return nil, err
	}
	return provider.Resolve(ctx, id)
}
