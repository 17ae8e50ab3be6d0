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

package treediff_test

import (
	"encoding/xml"
	"fmt"
	"strings"

	"znkr.io/treediff"
	"znkr.io/treediff/tree"
)

func ExampleDiff() {
	x := tree.NewElement(xml.Name{Local: "a"}, []tree.Attr{{Name: xml.Name{Local: "x"}, Value: "1"}},
		tree.NewElement(xml.Name{Local: "b"}, nil))
	y := tree.NewElement(xml.Name{Local: "a"}, []tree.Attr{{Name: xml.Name{Local: "x"}, Value: "2"}},
		tree.NewElement(xml.Name{Local: "b"}, nil),
		tree.NewElement(xml.Name{Local: "c"}, nil))

	d, err := treediff.Diff(x, y)
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.ReplaceAll(d.String(), "{"+treediff.Namespace+"}", "diff:"))
	// Output:
	// a(diff:attributes(diff:remove[x="1"], diff:add[x="2"]), b, diff:insert(c))
}

func ExampleAfter() {
	x := tree.NewElement(xml.Name{Local: "a"}, nil, tree.NewText("old"))
	y := tree.NewElement(xml.Name{Local: "a"}, nil, tree.NewText("new"))

	d, err := treediff.Diff(x, y)
	if err != nil {
		panic(err)
	}
	before, err := treediff.Before(d)
	if err != nil {
		panic(err)
	}
	after, err := treediff.After(d)
	if err != nil {
		panic(err)
	}
	fmt.Println(before)
	fmt.Println(after)
	// Output:
	// a("old")
	// a("new")
}

// Compare two sequences of elements and output the difference in a format that's similar to a
// unified diff.
func ExampleHunks() {
	var x, y []*tree.Node
	for _, name := range strings.Fields("a b c d e f g h") {
		x = append(x, tree.NewElement(xml.Name{Local: name}, nil))
	}
	for _, name := range strings.Fields("a b x d e f g h") {
		y = append(y, tree.NewElement(xml.Name{Local: name}, nil))
	}

	for _, h := range treediff.Hunks(x, y) {
		fmt.Printf("@@ -%d,%d +%d,%d @@\n", h.PosX+1, h.EndX-h.PosX, h.PosY+1, h.EndY-h.PosY)
		for _, edit := range h.Edits {
			switch edit.Op {
			case treediff.Match:
				fmt.Printf(" %v\n", edit.X)
			case treediff.Delete:
				fmt.Printf("-%v\n", edit.X)
			case treediff.Insert:
				fmt.Printf("+%v\n", edit.Y)
			default:
				panic("never reached")
			}
		}
	}
	// Output:
	// @@ -1,6 +1,6 @@
	//  a
	//  b
	// -c
	// +x
	//  d
	//  e
	//  f
}
