// Copyright 2025 Florian Zenker (flo@znkr.io)
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

package tree

import (
	"encoding/xml"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func elem(local string, attrs []Attr, children ...*Node) *Node {
	return NewElement(xml.Name{Local: local}, attrs, children...)
}

func attr(local, value string) Attr {
	return Attr{Name: xml.Name{Local: local}, Value: value}
}

func TestWeight(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want int
	}{
		{
			name: "text",
			node: NewText("hello"),
			want: 1,
		},
		{
			name: "empty-element",
			node: elem("a", nil),
			want: 1,
		},
		{
			name: "element-with-attrs",
			node: elem("a", []Attr{attr("x", "1"), attr("y", "2")}),
			want: 3,
		},
		{
			name: "nested",
			node: elem("a", []Attr{attr("x", "1")}, elem("b", nil, NewText("t")), NewComment("c")),
			want: 5,
		},
		{
			name: "document",
			node: NewDocument(NewProcInst("xml-stylesheet", `href="a.xsl"`), elem("root", nil)),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Weight(); got != tt.want {
				t.Errorf("Weight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Node
		want bool
	}{
		{
			name: "same-text",
			a:    NewText("a"),
			b:    NewText("a"),
			want: true,
		},
		{
			name: "different-text",
			a:    NewText("a"),
			b:    NewText("b"),
			want: false,
		},
		{
			name: "text-vs-comment",
			a:    NewText("a"),
			b:    NewComment("a"),
			want: false,
		},
		{
			name: "attribute-order-is-irrelevant",
			a:    elem("a", []Attr{attr("x", "1"), attr("y", "2")}),
			b:    elem("a", []Attr{attr("y", "2"), attr("x", "1")}),
			want: true,
		},
		{
			name: "different-attribute-value",
			a:    elem("a", []Attr{attr("x", "1")}),
			b:    elem("a", []Attr{attr("x", "2")}),
			want: false,
		},
		{
			name: "different-namespace",
			a:    NewElement(xml.Name{Space: "urn:a", Local: "a"}, nil),
			b:    NewElement(xml.Name{Space: "urn:b", Local: "a"}, nil),
			want: false,
		},
		{
			name: "child-order-matters",
			a:    elem("a", nil, elem("b", nil), elem("c", nil)),
			b:    elem("a", nil, elem("c", nil), elem("b", nil)),
			want: false,
		},
		{
			name: "deep",
			a:    elem("a", nil, elem("b", nil, NewText("x")), elem("c", nil)),
			b:    elem("a", nil, elem("b", nil, NewText("x")), elem("c", nil)),
			want: true,
		},
		{
			// Without length prefixes, these two would hash identical input.
			name: "ambiguous-concatenation",
			a:    elem("ab", []Attr{attr("c", "")}),
			b:    elem("a", []Attr{attr("bc", "")}),
			want: false,
		},
		{
			name: "nil",
			a:    NewText("a"),
			b:    nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if tt.b == nil {
				return
			}
			if got := tt.b.Equal(tt.a); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestNewElementCopiesInputs(t *testing.T) {
	attrs := []Attr{attr("y", "2"), attr("x", "1")}
	children := []*Node{NewText("a")}
	n := NewElement(xml.Name{Local: "a"}, attrs, children...)
	want := n.String()

	attrs[0].Value = "changed"
	children[0] = NewText("changed")

	if diff := cmp.Diff(want, n.String()); diff != "" {
		t.Errorf("node changed after modifying constructor inputs [-want,+got]:\n%s", diff)
	}
}

func TestInvalidChildren(t *testing.T) {
	a := NewText("a")
	f := NewFragment(a)
	tests := []struct {
		name string
		f    func()
	}{
		{"document-nil", func() { NewDocument(a, nil) }},
		{"element-nil", func() { NewElement(xml.Name{Local: "e"}, nil, nil) }},
		{"fragment-nil", func() { NewFragment(nil) }},
		{"document-fragment", func() { NewDocument(f) }},
		{"element-fragment", func() { NewElement(xml.Name{Local: "e"}, nil, f, a) }},
		{"fragment-fragment", func() { NewFragment(a, f) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("constructor did not panic")
				}
			}()
			tt.f()
		})
	}
}

func TestAttr(t *testing.T) {
	ns := xml.Name{Space: "urn:ns", Local: "id"}
	n := elem("a", []Attr{attr("z", "3"), {Name: ns, Value: "ns"}, attr("id", "1")})

	wantOrder := []xml.Name{{Local: "id"}, {Local: "z"}, ns}
	var gotOrder []xml.Name
	for _, a := range n.Attrs() {
		gotOrder = append(gotOrder, a.Name)
	}
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Errorf("Attrs() not in canonical order [-want,+got]:\n%s", diff)
	}

	if v, ok := n.Attr(xml.Name{Local: "id"}); !ok || v != "1" {
		t.Errorf(`Attr(id) = %q, %v, want "1", true`, v, ok)
	}
	if v, ok := n.Attr(ns); !ok || v != "ns" {
		t.Errorf(`Attr({urn:ns}id) = %q, %v, want "ns", true`, v, ok)
	}
	if v, ok := n.Attr(xml.Name{Local: "missing"}); ok {
		t.Errorf(`Attr(missing) = %q, %v, want "", false`, v, ok)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "element",
			node: elem("a", []Attr{attr("y", "2"), attr("x", "1")}, elem("b", nil), NewText("t\n")),
			want: `a[x="1" y="2"](b, "t\n")`,
		},
		{
			name: "namespaced",
			node: NewElement(xml.Name{Space: "urn:x", Local: "a"}, []Attr{{Name: xml.Name{Space: "urn:y", Local: "b"}, Value: "c"}}),
			want: `{urn:x}a[{urn:y}b="c"]`,
		},
		{
			name: "document",
			node: NewDocument(NewProcInst("pi", "data"), NewComment(" c "), elem("root", nil)),
			want: `#document(<?pi data?>, <!-- c -->, root)`,
		},
		{
			name: "fragment",
			node: NewFragment(elem("a", nil), elem("b", nil)),
			want: `#fragment(a, b)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.node.String()); diff != "" {
				t.Errorf("String() differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got, want := Element.String(), "Element"; got != want {
		t.Errorf("Element.String() = %q, want %q", got, want)
	}
	if got, want := Kind(42).String(), "Kind(42)"; got != want {
		t.Errorf("Kind(42).String() = %q, want %q", got, want)
	}
}
