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

package tree

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// String returns a compact single line representation of the subtree rooted at n.
//
// Elements are written as name[attr="value" ...](child, ...) where the brackets or parentheses
// are omitted if there are no attributes or children. Names in a namespace are written as
// {namespace}local. Text is quoted, documents and fragments are written as #document(...) and
// #fragment(...) respectively.
func (n *Node) String() string {
	var sb strings.Builder
	format(&sb, n)
	return sb.String()
}

func format(sb *strings.Builder, n *Node) {
	switch n.kind {
	case Document:
		sb.WriteString("#document")
		formatChildren(sb, n.children)
	case Fragment:
		sb.WriteString("#fragment")
		formatChildren(sb, n.children)
	case Element:
		formatName(sb, n.name)
		if len(n.attrs) > 0 {
			sb.WriteByte('[')
			for i, a := range n.attrs {
				if i > 0 {
					sb.WriteByte(' ')
				}
				formatName(sb, a.Name)
				sb.WriteByte('=')
				sb.WriteString(strconv.Quote(a.Value))
			}
			sb.WriteByte(']')
		}
		formatChildren(sb, n.children)
	case Text:
		sb.WriteString(strconv.Quote(n.data))
	case Comment:
		sb.WriteString("<!--")
		sb.WriteString(n.data)
		sb.WriteString("-->")
	case ProcInst:
		sb.WriteString("<?")
		sb.WriteString(n.name.Local)
		if n.data != "" {
			sb.WriteByte(' ')
			sb.WriteString(n.data)
		}
		sb.WriteString("?>")
	default:
		panic("never reached")
	}
}

func formatChildren(sb *strings.Builder, children []*Node) {
	if len(children) == 0 {
		return
	}
	sb.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			sb.WriteString(", ")
		}
		format(sb, c)
	}
	sb.WriteByte(')')
}

func formatName(sb *strings.Builder, name xml.Name) {
	if name.Space != "" {
		sb.WriteByte('{')
		sb.WriteString(name.Space)
		sb.WriteByte('}')
	}
	sb.WriteString(name.Local)
}
