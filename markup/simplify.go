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

package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Simplify flattens the nested list and div structure of an entry body into
// markup that e-reader dictionary engines render correctly. It applies, in
// order:
//
//   - list-item flattening: an <li> whose children are all <div> elements is
//     replaced by the divs' contents, separated by <br> elements.
//   - span unwrapping: every <span> is replaced by its children.
//   - div reduction: a <ul> nested within a <div> whose parent has no other
//     children has that parent unwrapped.
//
// The passes are repeated until none of them changes the markup. The input is
// returned unchanged if nothing changed.
func Simplify(s string) string {
	nodes, err := html.ParseFragment(strings.NewReader(s), contextNode())
	if err != nil {
		return s
	}

	// A body element holds the fragment so that the div ancestor check does
	// not see the parse context.
	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	changed := false
	for {
		pass := simplifyLists(root)
		pass = unwrapSpans(root) || pass
		pass = reduceDivs(root) || pass
		if !pass {
			break
		}
		changed = true
	}
	if !changed {
		return s
	}

	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return s
		}
	}
	return b.String()
}

func simplifyLists(root *html.Node) bool {
	changed := false
	for _, li := range findAll(root, atom.Li) {
		divs := children(li)
		if len(divs) == 0 || !allElements(divs, atom.Div) {
			continue
		}

		if len(divs) == 1 {
			div := divs[0]
			content := children(div)
			switch {
			case len(content) == 1 && content[0].Type == html.TextNode:
				unwrap(div)
				changed = true
			case len(content) == 2 && content[0].Type == html.TextNode && isElement(content[1], atom.Span):
				text, span := content[0], content[1]
				li.RemoveChild(div)
				div.RemoveChild(text)
				li.AppendChild(text)
				for _, c := range children(span) {
					span.RemoveChild(c)
					li.AppendChild(c)
				}
				changed = true
			}
			continue
		}

		var flat []*html.Node
		for _, div := range divs {
			for _, c := range children(div) {
				if isElement(c, atom.Span) && c.FirstChild != nil {
					flat = append(flat, children(c)...)
					continue
				}
				flat = append(flat, c)
			}
		}
		for _, div := range divs {
			li.RemoveChild(div)
		}
		for i, n := range flat {
			detach(n)
			// Annotations in <font> continue the preceding line.
			if i > 0 && !isElement(n, atom.Font) {
				li.AppendChild(&html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br})
			}
			li.AppendChild(n)
		}
		changed = true
	}
	return changed
}

func unwrapSpans(root *html.Node) bool {
	changed := false
	for _, span := range findAll(root, atom.Span) {
		changed = unwrap(span) || changed
	}
	return changed
}

func reduceDivs(root *html.Node) bool {
	changed := false
	for _, ul := range findAll(root, atom.Ul) {
		if !hasAncestor(ul, atom.Div) {
			continue
		}
		p := ul.Parent
		if p == nil || p.Parent == nil || p.FirstChild != p.LastChild {
			continue
		}
		changed = unwrap(p) || changed
	}
	return changed
}

func allElements(nodes []*html.Node, a atom.Atom) bool {
	for _, n := range nodes {
		if !isElement(n, a) {
			return false
		}
	}
	return true
}
