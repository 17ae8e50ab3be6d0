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

package treediff

import (
	"encoding/xml"

	"znkr.io/treediff/tree"
)

// Namespace is the namespace of the elements that describe changes in the result of [Diff].
const Namespace = "urn:znkr.io:treediff"

var (
	diffName       = xml.Name{Space: Namespace, Local: "diff"}
	insertName     = xml.Name{Space: Namespace, Local: "insert"}
	deleteName     = xml.Name{Space: Namespace, Local: "delete"}
	attributesName = xml.Name{Space: Namespace, Local: "attributes"}
	addName        = xml.Name{Space: Namespace, Local: "add"}
	removeName     = xml.Name{Space: Namespace, Local: "remove"}
)

// NewDiffRoot creates a diff element. It's used as the only child of a document if the root
// element of the document was replaced.
func NewDiffRoot(children ...*tree.Node) *tree.Node {
	return tree.NewElement(diffName, nil, children...)
}

// NewInsert creates an insert element wrapping nodes that are inserted.
func NewInsert(nodes ...*tree.Node) *tree.Node {
	return tree.NewElement(insertName, nil, nodes...)
}

// NewDelete creates a delete element wrapping nodes that are deleted.
func NewDelete(nodes ...*tree.Node) *tree.Node {
	return tree.NewElement(deleteName, nil, nodes...)
}

// NewAttributes creates an attributes element describing attribute changes of an element. It
// has a remove child holding the removed attributes with their old values, followed by an add
// child holding the added attributes with their new values. The remove or add child is omitted
// if there are no removed or added attributes, respectively.
//
// A changed attribute value is represented by removing the old and adding the new value.
//
// NewAttributes panics if there are neither removed nor added attributes.
func NewAttributes(removed, added []tree.Attr) *tree.Node {
	if len(removed) == 0 && len(added) == 0 {
		panic("treediff: attributes element without changes")
	}
	var children []*tree.Node
	if len(removed) > 0 {
		children = append(children, tree.NewElement(removeName, removed))
	}
	if len(added) > 0 {
		children = append(children, tree.NewElement(addName, added))
	}
	return tree.NewElement(attributesName, nil, children...)
}

// IsDiff reports whether n is a diff element.
func IsDiff(n *tree.Node) bool { return is(n, diffName) }

// IsInsert reports whether n is an insert element.
func IsInsert(n *tree.Node) bool { return is(n, insertName) }

// IsDelete reports whether n is a delete element.
func IsDelete(n *tree.Node) bool { return is(n, deleteName) }

// IsAttributes reports whether n is an attributes element.
func IsAttributes(n *tree.Node) bool { return is(n, attributesName) }

// IsAttributeAdd reports whether n is the add child of an attributes element.
func IsAttributeAdd(n *tree.Node) bool { return is(n, addName) }

// IsAttributeRemove reports whether n is the remove child of an attributes element.
func IsAttributeRemove(n *tree.Node) bool { return is(n, removeName) }

func is(n *tree.Node, name xml.Name) bool {
	return n.Kind() == tree.Element && n.Name() == name
}
