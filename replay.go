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

	"znkr.io/treediff/tree"
)

// ErrMalformed is returned if a tree doesn't describe changes as produced by [Diff].
var ErrMalformed = errors.New("malformed diff")

type side int

const (
	before side = iota
	after
)

// Before reconstructs the first input to [Diff] from its result d.
//
// Elements in [Namespace] are always interpreted as describing changes. Trees that contain such
// elements themselves can't be reconstructed.
func Before(d *tree.Node) (*tree.Node, error) {
	return replay(d, before)
}

// After reconstructs the second input to [Diff] from its result d.
//
// Elements in [Namespace] are always interpreted as describing changes. Trees that contain such
// elements themselves can't be reconstructed.
func After(d *tree.Node) (*tree.Node, error) {
	return replay(d, after)
}

func replay(d *tree.Node, s side) (*tree.Node, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	nodes, err := replayNode(d, s)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%w: describes %d nodes instead of one", ErrMalformed, len(nodes))
	}
	return nodes[0], nil
}

// replayNode returns the nodes n describes on side s.
func replayNode(n *tree.Node, s side) ([]*tree.Node, error) {
	switch n.Kind() {
	case tree.Document:
		children, err := replayChildren(n.Children(), s)
		if err != nil {
			return nil, err
		}
		return []*tree.Node{tree.NewDocument(children...)}, nil

	case tree.Fragment:
		return replayChildren(n.Children(), s)

	case tree.Element:
		switch {
		case IsInsert(n):
			if s == after {
				return n.Children(), nil
			}
			return nil, nil
		case IsDelete(n):
			if s == before {
				return n.Children(), nil
			}
			return nil, nil
		case IsDiff(n):
			return replayChildren(n.Children(), s)
		case IsAttributes(n), IsAttributeAdd(n), IsAttributeRemove(n):
			return nil, fmt.Errorf("%w: unexpected %s element", ErrMalformed, n.Name().Local)
		}

		attrs := n.Attrs()
		children := n.Children()
		if len(children) > 0 && IsAttributes(children[0]) {
			changed, err := replayAttributes(children[0], s)
			if err != nil {
				return nil, err
			}
			attrs = append(slices.Clip(attrs), changed...)
			children = children[1:]
		}
		children, err := replayChildren(children, s)
		if err != nil {
			return nil, err
		}
		return []*tree.Node{tree.NewElement(n.Name(), attrs, children...)}, nil

	case tree.Text, tree.Comment, tree.ProcInst:
		return []*tree.Node{n}, nil

	default:
		panic("never reached")
	}
}

func replayChildren(children []*tree.Node, s side) ([]*tree.Node, error) {
	var out []*tree.Node
	for _, c := range children {
		nodes, err := replayNode(c, s)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// replayAttributes returns the attributes removed (before) or added (after) by an attributes
// element.
func replayAttributes(n *tree.Node, s side) ([]tree.Attr, error) {
	var removed, added []tree.Attr
	children := n.Children()
	nchanges := len(children)
	if len(children) > 0 && IsAttributeRemove(children[0]) {
		removed = children[0].Attrs()
		children = children[1:]
	}
	if len(children) > 0 && IsAttributeAdd(children[0]) {
		added = children[0].Attrs()
		children = children[1:]
	}
	if nchanges == 0 || len(children) > 0 {
		return nil, fmt.Errorf("%w: attributes element must contain remove and/or add, in that order", ErrMalformed)
	}
	if s == before {
		return removed, nil
	}
	return added, nil
}
