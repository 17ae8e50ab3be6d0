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
	"cmp"
	"encoding/binary"
	"encoding/xml"
	"io"
	"slices"

	"github.com/zeebo/blake3"
)

// Kind describes the kind of a node.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind uint8

const (
	Document Kind = iota // Root container, normally holding a single element
	Element              // Named node with attributes and children
	Fragment             // Sequence of nodes without a container, only produced as output
	Text                 // Character data
	Comment              // A comment
	ProcInst             // A processing instruction
)

// Attr is an attribute of an element.
type Attr struct {
	Name  xml.Name // Name.Space holds the namespace URI, not a prefix.
	Value string
}

// Node is a node in a tree.
//
// Nodes are created using the constructors in this package and can't be modified afterwards.
type Node struct {
	kind     Kind
	name     xml.Name
	attrs    []Attr
	children []*Node
	data     string

	weight int
	digest [32]byte
}

// NewDocument creates a document node.
func NewDocument(children ...*Node) *Node {
	return newNode(Document, xml.Name{}, nil, children, "")
}

// NewElement creates an element node. The attributes are copied and put into canonical order
// (see [CompareName]).
func NewElement(name xml.Name, attrs []Attr, children ...*Node) *Node {
	attrs = slices.Clone(attrs)
	slices.SortStableFunc(attrs, func(a, b Attr) int {
		return CompareName(a.Name, b.Name)
	})
	return newNode(Element, name, attrs, children, "")
}

// NewFragment creates a fragment node.
//
// Fragments are used to return more than one node where only a single node is expected. They
// are never valid as input to a diff.
//
// Fragments can't be children of any node, all constructors panic if they are passed a nil or
// fragment child.
func NewFragment(children ...*Node) *Node {
	return newNode(Fragment, xml.Name{}, nil, children, "")
}

// NewText creates a text node.
func NewText(data string) *Node {
	return newNode(Text, xml.Name{}, nil, nil, data)
}

// NewComment creates a comment node.
func NewComment(data string) *Node {
	return newNode(Comment, xml.Name{}, nil, nil, data)
}

// NewProcInst creates a processing instruction node. The target is stored as the local name of
// the node.
func NewProcInst(target, inst string) *Node {
	return newNode(ProcInst, xml.Name{Local: target}, nil, nil, inst)
}

func newNode(kind Kind, name xml.Name, attrs []Attr, children []*Node, data string) *Node {
	n := &Node{
		kind:     kind,
		name:     name,
		attrs:    slices.Clip(attrs),
		children: slices.Clip(slices.Clone(children)),
		data:     data,
		weight:   1 + len(attrs),
	}

	h := blake3.New()
	var buf [binary.MaxVarintLen64]byte
	writeInt := func(v int) {
		h.Write(buf[:binary.PutUvarint(buf[:], uint64(v))])
	}
	writeString := func(s string) {
		writeInt(len(s))
		io.WriteString(h, s)
	}

	writeInt(int(kind))
	writeString(name.Space)
	writeString(name.Local)
	writeInt(len(attrs))
	for _, a := range attrs {
		writeString(a.Name.Space)
		writeString(a.Name.Local)
		writeString(a.Value)
	}
	writeString(data)
	writeInt(len(n.children))
	for _, c := range n.children {
		switch {
		case c == nil:
			panic("tree: nil child")
		case c.kind == Fragment:
			panic("tree: fragment child")
		}
		n.weight += c.weight
		h.Write(c.digest[:])
	}
	h.Sum(n.digest[:0])
	return n
}

// Kind returns the kind of n.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the name of an element or the target of a processing instruction. It's the zero
// value for all other kinds.
func (n *Node) Name() xml.Name { return n.name }

// Attrs returns the attributes of an element in canonical order. The returned slice must not
// be modified.
func (n *Node) Attrs() []Attr { return n.attrs }

// Attr returns the value of the attribute with the given name.
func (n *Node) Attr(name xml.Name) (string, bool) {
	i, ok := slices.BinarySearchFunc(n.attrs, name, func(a Attr, name xml.Name) int {
		return CompareName(a.Name, name)
	})
	if !ok {
		return "", false
	}
	return n.attrs[i].Value, true
}

// Children returns the ordered children of n. The returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Data returns the content of a text, comment or processing instruction node.
func (n *Node) Data() string { return n.data }

// Weight returns the size of the subtree rooted at n. It's used to price deletions and
// insertions of the subtree. The weight of a leaf is 1, an element weighs 1 plus the number of
// its attributes plus the weight of its children. The weight of every node is at least 1.
func (n *Node) Weight() int { return n.weight }

// Digest returns a BLAKE3 digest of the subtree rooted at n.
func (n *Node) Digest() [32]byte { return n.digest }

// Equal reports whether n and o are structurally equal, that is if they are of the same kind,
// have the same name, attributes and data and if all their children are structurally equal.
//
// Equality is decided by comparing digests, it takes constant time.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	return n.weight == o.weight && n.digest == o.digest
}

// CompareName defines the canonical order of names: By namespace first and by local name
// second. It returns -1, 0, or +1 similar to [cmp.Compare].
func CompareName(a, b xml.Name) int {
	if c := cmp.Compare(a.Space, b.Space); c != 0 {
		return c
	}
	return cmp.Compare(a.Local, b.Local)
}
