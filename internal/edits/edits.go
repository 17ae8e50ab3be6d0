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

// Package edits contains the internal edit script representation that's produced by the
// minimum edit path search and is then translated to a user facing API.
package edits

import "fmt"

// Op is a single operation of an edit script.
//
// For the input slices x and y, an edit script []Op transforms x into y. Consuming the script
// from left to right, Delete and Match advance in x, Insert and Match advance in y.
type Op uint8

const (
	Match Op = iota
	Delete
	Insert
)

func (op Op) String() string {
	switch op {
	case Match:
		return "match"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return fmt.Sprint(uint8(op))
	}
}

// Count returns the number of matches, deletions and insertions in script.
func Count(script []Op) (matches, deletes, inserts int) {
	for _, op := range script {
		switch op {
		case Match:
			matches++
		case Delete:
			deletes++
		case Insert:
			inserts++
		default:
			panic("never reached")
		}
	}
	return
}

// Hunk describes a sequence of consecutive edits.
type Hunk struct {
	S0, S1 int // Start and end of the hunk in x.
	T0, T1 int // Start and end of the hunk in y.
	E0, E1 int // Start and end of the hunk in the script.
}

// Hunks finds all hunks in script and returns them.
//
// A hunk contains a sequence of deletions and insertions surrounded by up to context matches.
// Hunks that are separated by no more than 2*context matches are merged into a single hunk.
func Hunks(script []Op, context int) []Hunk {
	var hunks []Hunk
	s, t := 0, 0 // current index into x, y
	run := 0     // number of consecutive matches
	open := false
	var h Hunk
	for i, op := range script {
		if op != Match {
			if !open {
				// Start of a new hunk, include as many matches as we have seen, but no more than
				// context.
				n := min(run, context)
				h = Hunk{S0: s - n, T0: t - n, E0: i - n}
				open = true
			}
			run = 0
		} else {
			run++
		}

		switch op {
		case Match:
			s++
			t++
		case Delete:
			s++
		case Insert:
			t++
		default:
			panic("never reached")
		}

		// Active in-progress hunk and we've seen more matches than can be covered by the context
		// of this and the next hunk, finish the hunk.
		if open && run > 2*context {
			Δ := run - context
			h.S1, h.T1, h.E1 = s-Δ, t-Δ, i+1-Δ
			hunks = append(hunks, h)
			open = false
		}
	}
	if open {
		Δ := max(0, run-context)
		h.S1, h.T1, h.E1 = s-Δ, t-Δ, len(script)-Δ
		hunks = append(hunks, h)
	}
	return hunks
}
