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
	"slices"

	"github.com/tochemey/goplatform/identity"
)

type chainKey struct{}

// chainFrom returns the plugins being instantiated along the call path of ctx
func chainFrom(ctx context.Context) []identity.PluginID {
	chain, _ := ctx.Value(chainKey{}).([]identity.PluginID)
	return chain
}

// withChain records id as being instantiated along the call path of ctx
func withChain(ctx context.Context, id identity.PluginID) context.Context {
	chain := append(slices.Clone(chainFrom(ctx)), id)
	return context.WithValue(ctx, chainKey{}, chain)
}

func chainStrings(chain []identity.PluginID, last identity.PluginID) []string {
	out := make([]string, 0, len(chain)+1)
	for _, id := range chain {
		out = append(out, string(id))
	}
	return append(out, string(last))
}
