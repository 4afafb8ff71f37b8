// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render renders the combined article body of a glossary block.
package render

import (
	"strings"

	"github.com/ianlewis/go-ordbog/entry"
	"github.com/ianlewis/go-ordbog/markup"
	"github.com/ianlewis/go-ordbog/xref"
)

// Options are options for the Renderer.
type Options struct {
	// Separator is inserted between the bodies of entries.
	Separator string

	// Simplify flattens nested lists and divs.
	Simplify bool

	// ReduceHeadings demotes the headings of entry bodies.
	ReduceHeadings bool
}

// DefaultOptions is the default options for the Renderer.
var DefaultOptions = &Options{
	Separator:      "<hr>",
	Simplify:       true,
	ReduceHeadings: true,
}

// Renderer renders article bodies. A Renderer is safe for concurrent use.
type Renderer struct {
	resolver *xref.Resolver
	opts     Options
}

// NewRenderer returns a new Renderer resolving links with r.
func NewRenderer(r *xref.Resolver, opts *Options) *Renderer {
	if opts == nil {
		opts = DefaultOptions
	}
	return &Renderer{
		resolver: r,
		opts:     *opts,
	}
}

// Render returns the combined body of the given entries.
func (r *Renderer) Render(entries []*entry.Entry) string {
	bodies := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.RawMarkup != "" {
			bodies = append(bodies, e.RawMarkup)
		}
	}

	body := strings.Join(bodies, r.opts.Separator)
	if r.resolver != nil {
		body = r.resolver.Rewrite(body)
	}
	if r.opts.Simplify {
		body = markup.Simplify(body)
	}
	if r.opts.ReduceHeadings {
		body = markup.ReduceHeadings(body)
	}
	return body
}
