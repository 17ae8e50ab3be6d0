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

package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/fatih/color"
	"znkr.io/treediff"
	"znkr.io/treediff/tree"
)

// ErrNotEncodable is returned by [Encode] if a node can't be represented in XML.
var ErrNotEncodable = errors.New("not encodable as XML")

// EncodeOption configures [Encode].
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	indent string
	color  bool
}

// Indent sets the string used to indent one level of nesting. The default is two spaces.
func Indent(s string) EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.indent = s
	}
}

// Color highlights deletions and insertions described by the elements in [treediff.Namespace]
// using ANSI terminal colors.
func Color() EncodeOption {
	return func(cfg *encodeConfig) {
		cfg.color = true
	}
}

// wellKnownPrefixes are used for namespaces instead of a generated prefix.
var wellKnownPrefixes = map[string]string{
	treediff.Namespace: "diff",
}

// Encode writes n as indented XML to w.
//
// Every element, comment, processing instruction, and text that isn't the only child of its
// parent is written on its own line. Namespaces are declared where they are first used.
// Elements use a default namespace if possible, attributes and elements in [treediff.Namespace]
// use prefixes.
//
// Encode returns an error wrapping [ErrNotEncodable] and writes nothing if a comment contains
// "--" or ends in "-", or if a processing instruction contains "?>".
func Encode(w io.Writer, n *tree.Node, opts ...EncodeOption) error {
	cfg := encodeConfig{indent: "  "}
	for _, opt := range opts {
		opt(&cfg)
	}
	e := encoder{indent: cfg.indent}
	if cfg.color {
		e.insert = color.New(color.FgGreen)
		e.insert.EnableColor()
		e.delete = color.New(color.FgRed)
		e.delete.EnableColor()
	}
	e.node(n, 0, namespaces{})
	if e.err != nil {
		return e.err
	}
	_, err := w.Write(e.buf.Bytes())
	return err
}

type encoder struct {
	buf    bytes.Buffer
	indent string

	insert, delete *color.Color // nil if colors are disabled
	paint          *color.Color // color of the current subtree

	err error // first error
}

// namespaces is the set of namespaces in scope. It's passed by value, prefixes is copied
// before it's modified.
type namespaces struct {
	def      string            // default namespace
	prefixes map[string]string // namespace -> prefix
}

func (e *encoder) node(n *tree.Node, depth int, ns namespaces) {
	switch n.Kind() {
	case tree.Document, tree.Fragment:
		for _, c := range n.Children() {
			e.node(c, depth, ns)
		}
	case tree.Element:
		e.element(n, depth, ns)
	case tree.Text:
		e.line(depth, escapeText(n.Data()))
	case tree.Comment:
		if strings.Contains(n.Data(), "--") || strings.HasSuffix(n.Data(), "-") {
			e.fail(fmt.Errorf("%w: comment %q", ErrNotEncodable, n.Data()))
			return
		}
		e.line(depth, "<!--"+n.Data()+"-->")
	case tree.ProcInst:
		if strings.Contains(n.Data(), "?>") {
			e.fail(fmt.Errorf("%w: processing instruction %q", ErrNotEncodable, n.Data()))
			return
		}
		if n.Data() == "" {
			e.line(depth, "<?"+n.Name().Local+"?>")
		} else {
			e.line(depth, "<?"+n.Name().Local+" "+n.Data()+"?>")
		}
	default:
		panic("never reached")
	}
}

func (e *encoder) element(n *tree.Node, depth int, ns namespaces) {
	if e.insert != nil {
		paint := e.paint
		switch {
		case treediff.IsInsert(n), treediff.IsAttributeAdd(n):
			e.paint = e.insert
		case treediff.IsDelete(n), treediff.IsAttributeRemove(n):
			e.paint = e.delete
		}
		defer func() { e.paint = paint }()
	}

	var decls []string
	tag := qualify(n.Name(), true, &ns, &decls)
	attrs := make([]string, 0, len(n.Attrs()))
	for _, a := range n.Attrs() {
		attrs = append(attrs, qualify(a.Name, false, &ns, &decls)+`="`+escapeAttr(a.Value)+`"`)
	}

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)
	for _, s := range append(decls, attrs...) {
		sb.WriteString(" ")
		sb.WriteString(s)
	}

	children := n.Children()
	switch {
	case len(children) == 0:
		sb.WriteString("/>")
		e.line(depth, sb.String())
	case len(children) == 1 && children[0].Kind() == tree.Text:
		fmt.Fprintf(&sb, ">%s</%s>", escapeText(children[0].Data()), tag)
		e.line(depth, sb.String())
	default:
		sb.WriteString(">")
		e.line(depth, sb.String())
		for _, c := range children {
			e.node(c, depth+1, ns)
		}
		e.line(depth, "</"+tag+">")
	}
}

// qualify returns the qualified name for name. Necessary namespace declarations are added to
// decls and recorded in ns.
func qualify(name xml.Name, elem bool, ns *namespaces, decls *[]string) string {
	switch {
	case name.Space == xmlNamespace:
		return "xml:" + name.Local
	case name.Space == "":
		if elem && ns.def != "" {
			ns.def = ""
			*decls = append(*decls, `xmlns=""`)
		}
		return name.Local
	case elem && name.Space == ns.def:
		return name.Local
	}
	if p, ok := ns.prefixes[name.Space]; ok {
		return p + ":" + name.Local
	}

	p, ok := wellKnownPrefixes[name.Space]
	if !ok && elem {
		ns.def = name.Space
		*decls = append(*decls, `xmlns="`+escapeAttr(name.Space)+`"`)
		return name.Local
	}
	if !ok {
		// Prefixes only accumulate along a path, the count makes them unique.
		p = fmt.Sprintf("ns%d", len(ns.prefixes)+1)
	}
	prefixes := make(map[string]string, len(ns.prefixes)+1)
	maps.Copy(prefixes, ns.prefixes)
	prefixes[name.Space] = p
	ns.prefixes = prefixes
	*decls = append(*decls, "xmlns:"+p+`="`+escapeAttr(name.Space)+`"`)
	return p + ":" + name.Local
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *encoder) line(depth int, s string) {
	for range depth {
		e.buf.WriteString(e.indent)
	}
	if e.paint != nil {
		s = e.paint.Sprint(s)
	}
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;",
	)
)

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
