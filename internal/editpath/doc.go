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

// Package editpath finds a minimum cost edit script between two node sequences.
//
// # Edit Graph
//
// Similar to Myers' algorithm, the search is a shortest path search on the graph modelling all
// possible edits that transform x into y. For x = [a b c] and y = [a c d] that graph looks like
//
//	(0,0)   a   b   c
//	    ┌───┬───┬───┐ 0
//	 a  │ ╲ │   │   │
//	    ├───┼───┼───┤ 1
//	 c  │   │   │ ╲ │
//	    ├───┼───┼───┤ 2
//	 d  │   │   │   │
//	    └───┴───┴───┘ 3
//	    0   1   2   3 (3,3)
//
// Every vertex (s, t) is a state where x[:s] has been transformed into y[:t]. A step to the
// right deletes x[s], a step down inserts y[t], and a diagonal step matches x[s] with y[t].
//
// In contrast to Myers' algorithm, edges are not unit cost:
//
//   - Deleting x[s] costs the weight of x[s].
//   - Inserting y[t] costs the weight of y[t].
//   - Matching x[s] with y[t] is free if they are structurally equal. Otherwise, two elements
//     that pass the match decision can be matched for
//
//     |w(a) - w(b)| + ⌈min(w(a), w(b)) / 4⌉
//
//     The first term charges for the difference in size, as if the excess had to be deleted or
//     inserted. The second term approximates the cost of updating the shared content. This is
//     only a cheap proxy, the actual differences of matched elements are computed later by
//     recursing into them.
//   - All other diagonals don't exist.
//
// # Search
//
// Because edge costs vary, the greedy diagonal search of Myers' algorithm isn't applicable.
// Instead we use A* with the heuristic
//
//	d = (s - t) - (N - M)
//	h(s, t) = -d * min(w(x))  if d < 0
//	h(s, t) =  d * min(w(y))  otherwise
//
// Every path has to change the diagonal s - t by exactly N - M in total. Matches don't change
// the diagonal, every deletion increases it by one and every insertion decreases it by one.
// Consequently, d counts the unavoidable deletions (d < 0) or insertions (d > 0) that are still
// required and h is a lower bound for their cost. The heuristic is also consistent: a deletion
// changes h by at most the weight of the deleted node and an insertion by at most the weight of
// the inserted node. With a consistent heuristic, A* finds an optimal path and when most of x
// and y are aligned, it prunes large parts of the graph.
//
// The worst case time complexity is O(NM log NM).
//
// The frontier is a binary heap. Go's container/heap doesn't support a decrease-key operation;
// when a cheaper path to a vertex is found, the vertex is pushed again and stale entries are
// skipped when they are popped.
package editpath
