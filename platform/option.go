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
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goplatform/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(p *Platform)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Platform)

// Apply applies the option to the platform
func (f OptionFunc) Apply(p *Platform) {
	f(p)
}

// WithLogger sets the platform logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(p *Platform) {
		p.logger = logger
	})
}

// WithMetrics enables the OpenTelemetry instruments using the global meter provider
func WithMetrics() Option {
	return OptionFunc(func(p *Platform) {
		p.metricsEnabled.Store(true)
	})
}

// WithMeterProvider enables the OpenTelemetry instruments using the given meter provider
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(p *Platform) {
		p.metricsEnabled.Store(true)
		p.meterProvider = provider
	})
}

// WithDefaultVersion sets the version reported for plugins whose descriptor carries none
func WithDefaultVersion(version string) Option {
	return OptionFunc(func(p *Platform) {
		p.defaultVersion = version
	})
}
