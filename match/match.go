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

// Package match provides match decisions for element nodes.
//
// A match decision determines if two elements are candidates to be transformed into each other
// in place instead of deleting the first and inserting the second. It's only ever invoked for
// pairs of element nodes and must return the same result for the same inputs for the duration
// of a diff.
package match

import (
	"encoding/xml"

	"znkr.io/treediff/tree"
)

// Func is a match decision.
type Func func(a, b *tree.Node) bool

// Default matches two elements if they have the same local name and the same namespace.
func Default(a, b *tree.Node) bool {
	return a.Name() == b.Name()
}

// ByKey returns a match decision that matches two elements if they match according to
// [Default] and they either both have the key attribute with the same value or if both don't
// have the key attribute.
//
// This is useful for lists of elements that are identified by an attribute, e.g. an id.
func ByKey(key xml.Name) Func {
	return func(a, b *tree.Node) bool {
		if !Default(a, b) {
			return false
		}
		va, oka := a.Attr(key)
		vb, okb := b.Attr(key)
		return oka == okb && va == vb
	}
}
