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

import "go.uber.org/atomic"

// Stats is a point-in-time snapshot of the platform counters
type Stats struct {
	// LoaderInvocations is the number of module loaders invoked
	LoaderInvocations int64
	// FactoryInvocations is the number of plugin factories invoked
	FactoryInvocations int64
	// Resolutions is the number of resource resolutions started
	Resolutions int64
	// Failures is the number of failed plugin instantiations and resolutions
	Failures int64
}

type stats struct {
	loaderInvocations  *atomic.Int64
	factoryInvocations *atomic.Int64
	resolutions        *atomic.Int64
	failures           *atomic.Int64
}

func newStats() *stats {
	return &stats{
		loaderInvocations:  atomic.NewInt64(0),
		factoryInvocations: atomic.NewInt64(0),
		resolutions:        atomic.NewInt64(0),
		failures:           atomic.NewInt64(0),
	}
}

func (x *stats) snapshot() Stats {
	return Stats{
		LoaderInvocations:  x.loaderInvocations.Load(),
		FactoryInvocations: x.factoryInvocations.Load(),
		Resolutions:        x.resolutions.Load(),
		Failures:           x.failures.Load(),
	}
}
