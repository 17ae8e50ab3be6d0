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

// Package tree provides the immutable, ordered and labeled tree that is compared by
// [znkr.io/treediff].
//
// A tree consists of [Node] values of different kinds (see [Kind]). Element nodes have a name,
// an ordered set of attributes and ordered children. Document and fragment nodes only have
// children. All other kinds are leafs that are compared by their data only.
//
// Nodes are immutable after construction. This allows the constructors to precompute a weight
// and a digest for every node which makes structural equality checks cheap, regardless of the
// size of the subtree.
//
// [znkr.io/treediff]: https://pkg.go.dev/znkr.io/treediff
package tree
