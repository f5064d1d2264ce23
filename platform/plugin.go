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
	"errors"
	"fmt"
	"slices"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/goplatform/errors"
	"github.com/tochemey/goplatform/future"
	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/internal/validation"
)

// Service is the value a plugin factory produces
type Service any

// Factory instantiates a plugin given the platform and its resolved dependencies,
// keyed by the names declared in the plugin descriptor.
type Factory func(ctx context.Context, platform *Platform, deps map[string]Service) (Service, error)

// ModuleLoader lazily yields the Factory of a plugin.
// It is invoked at most once, on the first request for the plugin.
type ModuleLoader func(ctx context.Context) (Factory, error)

// Dependency names one plugin a plugin depends on
type Dependency struct {
	Name   string
	Plugin identity.PluginID
}

// Dep creates a Dependency
func Dep(name string, plugin identity.PluginID) Dependency {
	return Dependency{Name: name, Plugin: plugin}
}

// Descriptor declares a plugin and its dependencies.
// Dependencies are resolved in declaration order.
type Descriptor struct {
	ID           identity.PluginID
	Version      string
	Dependencies []Dependency
}

// NewDescriptor creates a Descriptor
func NewDescriptor(id identity.PluginID, deps ...Dependency) Descriptor {
	return Descriptor{ID: id, Dependencies: deps}
}

// WithVersion returns a copy of the descriptor carrying the given version
func (d Descriptor) WithVersion(version string) Descriptor {
	d.Version = version
	return d
}

// Location pairs a descriptor with the lazy loader of its module
type Location struct {
	Descriptor Descriptor
	Loader     ModuleLoader
}

// PluginStatus reports whether a plugin instantiation has started
type PluginStatus int

const (
	// PluginStopped means no instantiation was requested
	PluginStopped PluginStatus = iota
	// PluginRunning means an instantiation was requested, whatever its outcome
	PluginRunning
)

// String returns the status label
func (s PluginStatus) String() string {
	switch s {
	case PluginRunning:
		return "RUNNING"
	default:
		return "STOPPED"
	}
}

// PluginInfo describes a registered plugin
type PluginInfo struct {
	ID      identity.PluginID
	Version string
	Status  PluginStatus
}

var pluginIDPattern = `^[^\s.:]+$`

// AddLocation registers a plugin. Nothing is loaded until the plugin is requested.
func (p *Platform) AddLocation(descriptor Descriptor, loader ModuleLoader) error {
	chain := validation.New(validation.FailFast()).
		AddValidator(validation.NewEmptyStringValidator("plugin id", string(descriptor.ID))).
		AddValidator(validation.NewPatternValidator(pluginIDPattern, string(descriptor.ID),
			fmt.Errorf("plugin id %q must not contain '.', ':' or spaces", descriptor.ID))).
		AddAssertion(loader != nil, "module loader is required")
	for _, dep := range descriptor.Dependencies {
		chain.AddValidator(validation.NewEmptyStringValidator("dependency name", dep.Name)).
			AddValidator(validation.NewEmptyStringValidator("dependency plugin", string(dep.Plugin)))
	}

	if err := chain.Validate(); err != nil {
		return errors.Join(gerrors.ErrInvalidLocation, err)
	}

	location := Location{Descriptor: descriptor, Loader: loader}
	if !p.locations.SetIfAbsent(descriptor.ID, location) {
		return gerrors.NewErrPluginAlreadyRegistered(string(descriptor.ID))
	}
	p.order.Append(descriptor.ID)
	return nil
}

// GetPlugin returns the service of a plugin, instantiating it on first request.
//
// Concurrent callers share a single instantiation: the dependencies, the module
// loader and the factory run exactly once. The outcome is permanent, a failed
// instantiation stays failed. Canceling ctx only abandons this caller's wait.
func (p *Platform) GetPlugin(ctx context.Context, id identity.PluginID) (Service, error) {
	fut, err := p.pluginFuture(ctx, id)
	if err != nil {
		return nil, err
	}
	return fut.Await(ctx)
}

func (p *Platform) pluginFuture(ctx context.Context, id identity.PluginID) (*future.Future[Service], error) {
	if fut, ok := p.plugins.Get(id); ok {
		return fut, p.checkReentry(ctx, id, fut)
	}

	location, ok := p.locations.Get(id)
	if !ok {
		err := gerrors.NewErrUnknownPlugin(string(id))
		p.logger.Error(err)
		return nil, err
	}

	fut, loaded := p.plugins.GetOrSet(id, future.Pending[Service])
	if loaded {
		return fut, p.checkReentry(ctx, id, fut)
	}

	fut.Start(withChain(ctx, id), func(ctx context.Context) (Service, error) {
		return p.startPlugin(ctx, location)
	})
	return fut, nil
}

// checkReentry fails when awaiting fut would wait on an instantiation
// running further up the same call path.
func (p *Platform) checkReentry(ctx context.Context, id identity.PluginID, fut *future.Future[Service]) error {
	if fut.IsDone() {
		return nil
	}
	chain := chainFrom(ctx)
	if slices.Contains(chain, id) {
		return gerrors.NewErrCyclicDependency(chainStrings(chain, id))
	}
	return nil
}

func (p *Platform) startPlugin(ctx context.Context, location Location) (Service, error) {
	id := location.Descriptor.ID
	start := time.Now()
	p.logger.Debugf("starting plugin %s", id)

	service, err := p.instantiate(ctx, location)
	if err != nil {
		p.recordFailure(ctx, id)
		err = gerrors.NewPluginError(string(id), err)
		p.logger.Error(err)
		return nil, err
	}

	if p.metric != nil {
		p.metric.PluginInstantiated(ctx, string(id), time.Since(start))
	}
	p.logger.Debugf("plugin %s started in %s", id, time.Since(start))
	return service, nil
}

func (p *Platform) instantiate(ctx context.Context, location Location) (service Service, err error) {
	defer func() {
		if r := recover(); r != nil {
			service = nil
			err = gerrors.NewPanicError(fmt.Errorf("%v", r))
		}
	}()

	if err := p.checkCycle(location.Descriptor.ID); err != nil {
		return nil, err
	}

	deps, err := p.ResolveDependencies(ctx, location.Descriptor.Dependencies)
	if err != nil {
		return nil, err
	}

	p.stats.loaderInvocations.Inc()
	factory, err := location.Loader(ctx)
	if err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, gerrors.NewInternalError(errors.New("module loader returned no factory"))
	}

	p.stats.factoryInvocations.Inc()
	return factory(ctx, p, deps)
}

// checkCycle walks the declared dependency graph from root and fails when it leads back to root.
// Plugins without a location are skipped; requesting them fails on its own.
func (p *Platform) checkCycle(root identity.PluginID) error {
	visited := mapset.NewThreadUnsafeSet[identity.PluginID]()
	var walk func(id identity.PluginID, path []string) error
	walk = func(id identity.PluginID, path []string) error {
		location, ok := p.locations.Get(id)
		if !ok {
			return nil
		}
		for _, dep := range location.Descriptor.Dependencies {
			next := append(slices.Clone(path), string(dep.Plugin))
			if dep.Plugin == root {
				return gerrors.NewErrCyclicDependency(next)
			}
			if !visited.Add(dep.Plugin) {
				continue
			}
			if err := walk(dep.Plugin, next); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, []string{string(root)})
}

// ResolveDependencies instantiates each dependency in declaration order,
// awaiting one before starting the next. The result is keyed by dependency name.
func (p *Platform) ResolveDependencies(ctx context.Context, deps []Dependency) (map[string]Service, error) {
	resolved := make(map[string]Service, len(deps))
	for _, dep := range deps {
		service, err := p.GetPlugin(ctx, dep.Plugin)
		if err != nil {
			return nil, err
		}
		resolved[dep.Name] = service
	}
	return resolved, nil
}

// Preload instantiates the given plugins concurrently and waits for all of them.
// Each plugin still resolves its own dependencies in declaration order.
func (p *Platform) Preload(ctx context.Context, ids ...identity.PluginID) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		group.Go(func() error {
			_, err := p.GetPlugin(ctx, id)
			return err
		})
	}
	return group.Wait()
}

// GetPluginInfos returns the registered plugins in registration order
func (p *Platform) GetPluginInfos() []PluginInfo {
	ids := p.order.Items()
	infos := make([]PluginInfo, 0, len(ids))
	for _, id := range ids {
		location, ok := p.locations.Get(id)
		if !ok {
			continue
		}

		version := location.Descriptor.Version
		if version == "" {
			version = p.defaultVersion
		}

		status := PluginStopped
		if _, ok := p.plugins.Get(id); ok {
			status = PluginRunning
		}

		infos = append(infos, PluginInfo{
			ID:      id,
			Version: version,
			Status:  status,
		})
	}
	return infos
}
