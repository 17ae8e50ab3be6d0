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

// Package treediff provides functions to compare two ordered, labeled trees, similar to a
// structural XML diff.
//
// The main function is [Diff] which compares two trees (see [znkr.io/treediff/tree]) and returns
// another tree that describes how the first tree is transformed into the second. Unchanged
// subtrees are shared with the input, changes are marked using the elements of the output
// vocabulary in [Namespace]:
//
//   - insert and delete wrap subtrees that are inserted or deleted at that position.
//   - attributes is the first child of an element that was matched with an element with
//     different attributes. It contains a remove element with the old attribute values
//     followed by an add element with the new attribute values.
//   - diff wraps the children of a document, if the root element itself was replaced.
//
// Use [Before] and [After] to reconstruct the two inputs from the result of [Diff].
//
// [Edits] and [Hunks] expose the underlying comparison of two node sequences. By default,
// elements with the same name are transformed into each other, use [MatchDecision] to configure this
// decision.
//
// Performance: Comparing two node sequences of length N and M has a worst case time complexity
// of O(NM log NM) but it's considerably faster if most of the nodes are unchanged.
//
// Note: For a diff of XML documents, please see [znkr.io/treediff/xmldiff].
//
// [znkr.io/treediff/tree]: https://pkg.go.dev/znkr.io/treediff/tree
// [znkr.io/treediff/xmldiff]: https://pkg.go.dev/znkr.io/treediff/xmldiff
package treediff
