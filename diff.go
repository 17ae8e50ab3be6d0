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
	"errors"
	"fmt"
	"slices"

	"znkr.io/treediff/internal/config"
	"znkr.io/treediff/internal/editpath"
	"znkr.io/treediff/internal/edits"
	"znkr.io/treediff/match"
	"znkr.io/treediff/tree"
)

// ErrInvalidArgument is returned if the input to a comparison function is invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// Diff compares the trees x and y and returns a tree that describes the changes necessary to
// convert from one to the other.
//
//   - If x and y are structurally equal, the result is x itself.
//   - If x and y are documents, the result is a document with the compared children. If the
//     comparison results in more than one child, i.e. if the root element was replaced, the
//     children are wrapped in a diff element.
//   - If x and y are elements that can be transformed into each other (see [MatchDecision]),
//     the result is an element with the name of x and the attributes shared by x and y. An
//     attributes element describing the attribute changes is added as the first child, if
//     there are any. It's followed by the compared children.
//   - Otherwise, the result is a fragment containing x wrapped in a delete element, followed by
//     y wrapped in an insert element.
//
// Children are compared by finding a minimum cost edit script. Every deleted child is wrapped
// in its own delete element and every inserted child in its own insert element. Matched
// children are compared recursively. If x or y has no children, all children of the other are
// wrapped in a single delete or insert element.
//
// Diff returns an error wrapping [ErrInvalidArgument] if x or y is nil or a fragment.
//
// The following option is supported: [treediff.MatchDecision]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Diff(x, y *tree.Node, opts ...Option) (*tree.Node, error) {
	cfg := config.FromOptions(opts, config.Match)
	for _, n := range []*tree.Node{x, y} {
		switch {
		case n == nil:
			return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
		case n.Kind() == tree.Fragment:
			return nil, fmt.Errorf("%w: can't compare a fragment", ErrInvalidArgument)
		}
	}
	d := differ{match: cfg.Match}
	return d.node(x, y), nil
}

// differ holds the configuration for a single diff.
type differ struct {
	match match.Func
}

func (d *differ) node(x, y *tree.Node) *tree.Node {
	switch {
	case x.Equal(y):
		return x
	case x.Kind() == tree.Document && y.Kind() == tree.Document:
		children := d.children(x.Children(), y.Children())
		if len(children) > 1 {
			return tree.NewDocument(NewDiffRoot(children...))
		}
		return tree.NewDocument(children...)
	case x.Kind() == tree.Element && y.Kind() == tree.Element && d.match(x, y):
		return d.element(x, y)
	default:
		return tree.NewFragment(NewDelete(x), NewInsert(y))
	}
}

func (d *differ) element(x, y *tree.Node) *tree.Node {
	kept, removed, added := mergeAttrs(x.Attrs(), y.Attrs())
	children := d.children(x.Children(), y.Children())
	if len(removed) > 0 || len(added) > 0 {
		children = slices.Insert(children, 0, NewAttributes(removed, added))
	}
	return tree.NewElement(x.Name(), kept, children...)
}

func (d *differ) children(x, y []*tree.Node) []*tree.Node {
	switch {
	case len(x) == 0 && len(y) == 0:
		return nil
	case len(x) == 0:
		return []*tree.Node{NewInsert(y...)}
	case len(y) == 0:
		return []*tree.Node{NewDelete(x...)}
	}

	script, _ := editpath.Compute(x, y, d.match)
	out := make([]*tree.Node, 0, len(script))
	s, t := 0, 0
	for _, op := range script {
		switch op {
		case edits.Delete:
			out = append(out, NewDelete(x[s]))
			s++
		case edits.Insert:
			out = append(out, NewInsert(y[t]))
			t++
		case edits.Match:
			r := d.node(x[s], y[t])
			if r.Kind() == tree.Fragment {
				out = append(out, r.Children()...)
			} else {
				out = append(out, r)
			}
			s++
			t++
		default:
			panic("never reached")
		}
	}
	return out
}

// mergeAttrs splits two attribute lists in canonical order into attributes that are the same
// in both, attributes only in x or with a different value in x, and attributes only in y or with
// a different value in y.
func mergeAttrs(x, y []tree.Attr) (kept, removed, added []tree.Attr) {
	i, j := 0, 0
	for i < len(x) && j < len(y) {
		switch c := tree.CompareName(x[i].Name, y[j].Name); {
		case c < 0:
			removed = append(removed, x[i])
			i++
		case c > 0:
			added = append(added, y[j])
			j++
		case x[i].Value == y[j].Value:
			kept = append(kept, x[i])
			i++
			j++
		default:
			removed = append(removed, x[i])
			added = append(added, y[j])
			i++
			j++
		}
	}
	removed = append(removed, x[i:]...)
	added = append(added, y[j:]...)
	return
}

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // Two nodes match, they are either equal or can be transformed into each other
	Delete           // A deletion of a node on the left slice
	Insert           // An insertion of a node from the right side
)

// Edit describes a single edit of a diff.
//
//   - For Match, both X and Y contain the matching node.
//   - For Delete, X contains the deleted node and Y is nil.
//   - For Insert, Y contains the inserted node and X is nil.
type Edit struct {
	Op   Op
	X, Y *tree.Node
}

// Hunk describes a sequence of consecutive edits.
type Hunk struct {
	PosX, EndX int    // Start and end position in x.
	PosY, EndY int    // Start and end position in y.
	Edits      []Edit // Edits to transform x[PosX:EndX] to y[PosY:EndY]
}

// Edits compares the node sequences x and y and returns the changes necessary to convert from
// one to the other.
//
// Edits returns one edit for every node in the input slices. If x and y are identical, the
// output will consist of a match edit for every node. The edits have minimum cost: Deleting or
// inserting a node costs its weight, matching two structurally equal nodes is free and
// transforming one element into another is priced by the difference of their weights plus a
// quarter of the smaller weight.
//
// Matches are not compared recursively, use [Diff] on the matched nodes for that.
//
// The following option is supported: [treediff.MatchDecision]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Edits(x, y []*tree.Node, opts ...Option) []Edit {
	cfg := config.FromOptions(opts, config.Match)
	script, _ := editpath.Compute(x, y, cfg.Match)
	return toEdits(x, y, script)
}

// Hunks compares the node sequences x and y and returns the changes necessary to convert from
// one to the other.
//
// The output is a sequence of hunks. A hunk represents a contiguous block of changes (insertions
// and deletions) along with some surrounding context. The amount of context can be configured
// using [Context].
//
// If x and y are identical, the output has length zero.
//
// The following options are supported: [treediff.Context], [treediff.MatchDecision]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Hunks(x, y []*tree.Node, opts ...Option) []Hunk {
	cfg := config.FromOptions(opts, config.Context|config.Match)
	script, _ := editpath.Compute(x, y, cfg.Match)
	hunks := edits.Hunks(script, cfg.Context)
	if len(hunks) == 0 {
		return nil
	}

	eout := toEdits(x, y, script)
	hout := make([]Hunk, 0, len(hunks))
	for _, h := range hunks {
		hout = append(hout, Hunk{
			PosX:  h.S0,
			EndX:  h.S1,
			PosY:  h.T0,
			EndY:  h.T1,
			Edits: slices.Clip(eout[h.E0:h.E1]),
		})
	}
	return hout
}

func toEdits(x, y []*tree.Node, script []edits.Op) []Edit {
	if len(script) == 0 {
		return nil
	}
	eout := make([]Edit, 0, len(script))
	s, t := 0, 0
	for _, op := range script {
		switch op {
		case edits.Match:
			eout = append(eout, Edit{Op: Match, X: x[s], Y: y[t]})
			s++
			t++
		case edits.Delete:
			eout = append(eout, Edit{Op: Delete, X: x[s]})
			s++
		case edits.Insert:
			eout = append(eout, Edit{Op: Insert, Y: y[t]})
			t++
		default:
			panic("never reached")
		}
	}
	return eout
}
