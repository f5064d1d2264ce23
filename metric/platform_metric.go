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

package metric

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	pluginAttribute = "plugin"
	kindAttribute   = "kind"
)

// PlatformMetric defines the platform instrumentation
type PlatformMetric struct {
	// Specifies the total number of plugin instantiations
	pluginInstantiations metric.Int64Counter
	// Specifies the total number of resource resolutions
	resourceResolutions metric.Int64Counter
	// Specifies the total number of failed resolutions and instantiations
	resolutionFailures metric.Int64Counter
	// Specifies the plugin instantiation duration in milliseconds
	instantiationDuration metric.Int64Histogram
}

// NewPlatformMetric creates an instance of PlatformMetric
func NewPlatformMetric(meter metric.Meter) (*PlatformMetric, error) {
	platformMetric := new(PlatformMetric)
	var err error
	if platformMetric.pluginInstantiations, err = meter.Int64Counter(
		"plugin_instantiations",
		metric.WithDescription("Total number of plugin instantiations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create pluginInstantiations instrument, %w", err)
	}

	if platformMetric.resourceResolutions, err = meter.Int64Counter(
		"resource_resolutions",
		metric.WithDescription("Total number of resource resolutions started"),
	); err != nil {
		return nil, fmt.Errorf("failed to create resourceResolutions instrument, %w", err)
	}

	if platformMetric.resolutionFailures, err = meter.Int64Counter(
		"resolution_failures",
		metric.WithDescription("Total number of failed resolutions and plugin instantiations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create resolutionFailures instrument, %w", err)
	}

	if platformMetric.instantiationDuration, err = meter.Int64Histogram(
		"plugin_instantiation_duration",
		metric.WithDescription("The latency of a plugin instantiation in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create instantiationDuration instrument, %w", err)
	}

	return platformMetric, nil
}

// PluginInstantiated records one plugin instantiation and its latency
func (x *PlatformMetric) PluginInstantiated(ctx context.Context, plugin string, took time.Duration) {
	attrs := metric.WithAttributes(attribute.String(pluginAttribute, plugin))
	x.pluginInstantiations.Add(ctx, 1, attrs)
	x.instantiationDuration.Record(ctx, took.Milliseconds(), attrs)
}

// ResourceResolved records one resolution started for the given identifier kind
func (x *PlatformMetric) ResourceResolved(ctx context.Context, kind string) {
	x.resourceResolutions.Add(ctx, 1, metric.WithAttributes(attribute.String(kindAttribute, kind)))
}

// ResolutionFailed records one failure for the given plugin
func (x *PlatformMetric) ResolutionFailed(ctx context.Context, plugin string) {
	x.resolutionFailures.Add(ctx, 1, metric.WithAttributes(attribute.String(pluginAttribute, plugin)))
}

// PluginInstantiations returns the plugin instantiations counter
func (x *PlatformMetric) PluginInstantiations() metric.Int64Counter {
	return x.pluginInstantiations
}

// ResourceResolutions returns the resource resolutions counter
func (x *PlatformMetric) ResourceResolutions() metric.Int64Counter {
	return x.resourceResolutions
}

// ResolutionFailures returns the failures counter
func (x *PlatformMetric) ResolutionFailures() metric.Int64Counter {
	return x.resolutionFailures
}

// InstantiationDuration returns the instantiation latency histogram
func (x *PlatformMetric) InstantiationDuration() metric.Int64Histogram {
	return x.instantiationDuration
}
