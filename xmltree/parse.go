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

// Package xmltree converts between XML documents and [tree.Node] trees.
//
// Parsing is lenient about formatting: Whitespace-only text is dropped by default, adjacent text
// and character data are merged, and namespace declarations are resolved into the names of
// elements and attributes.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"znkr.io/treediff/tree"
)

// ErrNoMatch is returned by [Parse] if the expression passed to [Select] doesn't select an
// element.
var ErrNoMatch = errors.New("no matching element")

// xmlNamespace is the namespace bound to the xml prefix.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// ParseOption configures [Parse].
type ParseOption func(*parseConfig)

type parseConfig struct {
	keepWhitespace bool
	selectExpr     string
}

// KeepWhitespace retains text nodes that consist entirely of whitespace.
func KeepWhitespace() ParseOption {
	return func(cfg *parseConfig) {
		cfg.keepWhitespace = true
	}
}

// Select narrows the parsed document to the first element selected by the XPath expression
// expr. The result is a document with that element as its only child.
func Select(expr string) ParseOption {
	return func(cfg *parseConfig) {
		cfg.selectExpr = expr
	}
}

// Parse reads an XML document from r and converts it to a tree.
//
// The result is always a document node. The XML declaration is dropped, all other processing
// instructions and comments are retained.
func Parse(r io.Reader, opts ...ParseOption) (*tree.Node, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var expr *xpath.Expr
	if cfg.selectExpr != "" {
		var err error
		expr, err = xpath.Compile(cfg.selectExpr)
		if err != nil {
			return nil, fmt.Errorf("invalid xpath %q: %w", cfg.selectExpr, err)
		}
	}

	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	c := converter{keepWhitespace: cfg.keepWhitespace}
	if expr == nil {
		return tree.NewDocument(c.children(doc)...), nil
	}
	n := xmlquery.QuerySelector(doc, expr)
	if n == nil || n.Type != xmlquery.ElementNode {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, cfg.selectExpr)
	}
	return tree.NewDocument(c.element(n)), nil
}

type converter struct {
	keepWhitespace bool
}

func (c *converter) children(n *xmlquery.Node) []*tree.Node {
	var out []*tree.Node
	var text strings.Builder
	pending := false
	flush := func() {
		if !pending {
			return
		}
		if s := text.String(); c.keepWhitespace || strings.TrimSpace(s) != "" {
			out = append(out, tree.NewText(s))
		}
		text.Reset()
		pending = false
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(child.Data)
			pending = true
		case xmlquery.ElementNode:
			flush()
			out = append(out, c.element(child))
		case xmlquery.CommentNode:
			flush()
			out = append(out, tree.NewComment(child.Data))
		case xmlquery.ProcessingInstruction:
			flush()
			out = append(out, tree.NewProcInst(child.ProcInst.Target, child.ProcInst.Inst))
		default:
			// The XML declaration and other node types don't contribute content.
		}
	}
	flush()
	return out
}

func (c *converter) element(n *xmlquery.Node) *tree.Node {
	var attrs []tree.Attr
	for _, a := range n.Attr {
		if isNamespaceDecl(a) {
			continue
		}
		space := a.NamespaceURI
		if space == "" && a.Name.Space == "xml" {
			space = xmlNamespace
		}
		attrs = append(attrs, tree.Attr{
			Name:  xml.Name{Space: space, Local: a.Name.Local},
			Value: a.Value,
		})
	}
	name := xml.Name{Space: n.NamespaceURI, Local: n.Data}
	return tree.NewElement(name, attrs, c.children(n)...)
}

// isNamespaceDecl reports whether a declares a namespace. Declarations are resolved during
// parsing and are re-created as needed by [Encode].
func isNamespaceDecl(a xmlquery.Attr) bool {
	return a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns")
}
