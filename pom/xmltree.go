// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a minimal in-memory XML tree node. Unlike unmarshaling directly
// into Go structs (which matches by local name and silently ignores
// namespace mismatches), element preserves each node's namespace so callers
// can choose the namespace of every lookup: the document's root namespace
// for most elements, and dependencyManagement's own namespace for its nested
// dependencies, which may differ from the root's.
type element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*element
	Text     string
}

// newDecoder returns an xml.Decoder with a CharsetReader for non-UTF-8
// documents and the HTML entity table for documents using named HTML
// entities Maven itself tolerates.
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	d.Entity = xml.HTMLEntity
	return d
}

// parseTree decodes r into an element tree rooted at the document element.
func parseTree(r io.Reader) (*element, error) {
	dec := newDecoder(r)
	var stack []*element
	var root *element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml decode: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{Name: t.Name, Attrs: t.Attr}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			} else {
				root = el
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("empty document")
	}
	return root, nil
}

// child returns the first direct child matching (ns, local), or nil.
func (e *element) child(ns, local string) *element {
	for _, c := range e.Children {
		if c.Name.Local == local && c.Name.Space == ns {
			return c
		}
	}
	return nil
}

// children returns all direct children matching (ns, local).
func (e *element) children(ns, local string) []*element {
	var out []*element
	for _, c := range e.Children {
		if c.Name.Local == local && c.Name.Space == ns {
			out = append(out, c)
		}
	}
	return out
}

// text returns the trimmed text of the first direct child matching
// (ns, local), and whether it was present at all.
func (e *element) text(ns, local string) (string, bool) {
	c := e.child(ns, local)
	if c == nil {
		return "", false
	}
	return strings.TrimSpace(c.Text), true
}

// textPtr is like text but returns a nil *string when the element is absent,
// distinguishing "not declared" from "declared empty" for the nullable
// dependency fields.
func (e *element) textPtr(ns, local string) *string {
	s, ok := e.text(ns, local)
	if !ok {
		return nil
	}
	return &s
}
