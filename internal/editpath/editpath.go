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

package editpath

import (
	"container/heap"

	"znkr.io/treediff/internal/edits"
	"znkr.io/treediff/match"
	"znkr.io/treediff/tree"
)

// Compute finds a minimum cost edit script that transforms x into y and returns it together
// with its cost.
//
// The match decision canMatch is only invoked for pairs of element nodes that are not
// structurally equal.
func Compute(x, y []*tree.Node, canMatch match.Func) (script []edits.Op, cost int) {
	smin, smax, tmin, tmax := findChangeBounds(x, y)

	script = make([]edits.Op, 0, len(x)+len(y))
	for range smin {
		script = append(script, edits.Match)
	}
	switch {
	case smin == smax && tmin == tmax:
		// Nothing left to do.
	case tmin == tmax:
		for _, n := range x[smin:smax] {
			script = append(script, edits.Delete)
			cost += n.Weight()
		}
	case smin == smax:
		for _, n := range y[tmin:tmax] {
			script = append(script, edits.Insert)
			cost += n.Weight()
		}
	default:
		s := search{canMatch: canMatch}
		path, c := s.run(x[smin:smax], y[tmin:tmax])
		script = append(script, path...)
		cost += c
	}
	for range len(x) - smax {
		script = append(script, edits.Match)
	}
	return script, cost
}

// MatchCost returns the cost of matching two nodes that are not structurally equal.
func MatchCost(a, b *tree.Node) int {
	wa, wb := a.Weight(), b.Weight()
	return abs(wa-wb) + (min(wa, wb)+3)/4
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
//
// Matching a common prefix or suffix is free and never makes the remaining edit script more
// expensive, because structurally equal nodes have equal weight.
func findChangeBounds(x, y []*tree.Node) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin].Equal(y[tmin]) {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1].Equal(y[tmax-1]) {
		smax--
		tmax--
	}

	return
}

// vertex is a vertex in the edit graph, x[:s] has been transformed into y[:t].
type vertex struct{ s, t int }

// state is the best known path to a vertex.
type state struct {
	g, f int      // cost of the path and estimated cost of the full path through this vertex
	prev vertex   // predecessor on the path
	op   edits.Op // edit leading from prev to this vertex
}

// search holds the state of a single search. It must not be reused.
type search struct {
	x, y     []*tree.Node
	canMatch match.Func

	// Minimum weights in x and y for the heuristic.
	wx, wy int

	best  map[vertex]state
	queue queue
}

// run finds a minimum cost path from (0, 0) to (N, M).
//
// Important: x and y must not be empty.
func (m *search) run(x, y []*tree.Node) ([]edits.Op, int) {
	if len(x) == 0 || len(y) == 0 {
		panic("editpath: search requires non-empty inputs")
	}
	N, M := len(x), len(y)
	m.x, m.y = x, y
	m.wx, m.wy = minWeight(x), minWeight(y)
	m.best = make(map[vertex]state)

	start, goal := vertex{0, 0}, vertex{N, M}
	f := m.h(start)
	m.best[start] = state{g: 0, f: f}
	heap.Push(&m.queue, entry{v: start, g: 0, f: f})

	for m.queue.Len() > 0 {
		e := heap.Pop(&m.queue).(entry)
		v := e.v
		if e.g > m.best[v].g {
			continue // stale, a cheaper path to v was found after e was pushed
		}
		if v == goal {
			return m.path(goal), e.g
		}

		if v.s < N {
			m.relax(v, vertex{v.s + 1, v.t}, e.g+x[v.s].Weight(), edits.Delete)
		}
		if v.t < M {
			m.relax(v, vertex{v.s, v.t + 1}, e.g+y[v.t].Weight(), edits.Insert)
		}
		if v.s < N && v.t < M {
			if c, ok := m.matchCost(x[v.s], y[v.t]); ok {
				m.relax(v, vertex{v.s + 1, v.t + 1}, e.g+c, edits.Match)
			}
		}
	}
	// The goal is always reachable using deletions and insertions.
	panic("never reached")
}

// relax records the path to w via v if it's cheaper than the best known path to w.
func (m *search) relax(v, w vertex, g int, op edits.Op) {
	st, ok := m.best[w]
	switch {
	case !ok:
		st = state{g: g, f: g + m.h(w), prev: v, op: op}
	case g < st.g:
		// The heuristic only depends on w, adjust f by the change in cost.
		st = state{g: g, f: st.f - (st.g - g), prev: v, op: op}
	default:
		return
	}
	m.best[w] = st
	heap.Push(&m.queue, entry{v: w, g: st.g, f: st.f})
}

// h returns the lower bound of the cost to get from v to (N, M).
func (m *search) h(v vertex) int {
	d := (v.s - v.t) - (len(m.x) - len(m.y))
	if d < 0 {
		return -d * m.wx
	}
	return d * m.wy
}

// matchCost returns the cost of a diagonal edge from (s, t) to (s+1, t+1) and whether that edge
// exists at all.
func (m *search) matchCost(a, b *tree.Node) (int, bool) {
	if a.Equal(b) {
		return 0, true
	}
	if a.Kind() == tree.Element && b.Kind() == tree.Element && m.canMatch(a, b) {
		return MatchCost(a, b), true
	}
	return 0, false
}

// path reconstructs the edit script by following the predecessors from goal to (0, 0).
func (m *search) path(goal vertex) []edits.Op {
	n := 0
	for v := goal; v != (vertex{}); v = m.best[v].prev {
		n++
	}
	script := make([]edits.Op, n)
	for v := goal; v != (vertex{}); v = m.best[v].prev {
		n--
		script[n] = m.best[v].op
	}
	return script
}

func minWeight(nodes []*tree.Node) int {
	w := nodes[0].Weight()
	for _, n := range nodes[1:] {
		w = min(w, n.Weight())
	}
	return w
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
