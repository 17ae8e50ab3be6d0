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

// Package xmldiff provides functions to compare XML documents structurally.
package xmldiff

import (
	"bytes"
	"fmt"

	"znkr.io/treediff"
	"znkr.io/treediff/internal/config"
	"znkr.io/treediff/tree"
	"znkr.io/treediff/xmltree"
)

// Diff parses the XML documents x and y, compares them, and returns the result as an indented
// XML document. Changes are described by elements in [treediff.Namespace], see [treediff.Diff]
// for details.
//
// If x and y are structurally equal, the result is empty. Whitespace-only text is ignored. An
// empty input stands for an empty document, e.g. for an added or removed file.
//
// The following options are supported: [treediff.MatchDecision], [Indent], [Color]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Diff(x, y []byte, opts ...treediff.Option) ([]byte, error) {
	cfg := config.FromOptions(opts, config.Match|config.Indent|config.Color)

	tx, err := parse(x)
	if err != nil {
		return nil, fmt.Errorf("x: %w", err)
	}
	ty, err := parse(y)
	if err != nil {
		return nil, fmt.Errorf("y: %w", err)
	}

	d, err := treediff.Diff(tx, ty, treediff.MatchDecision(cfg.Match))
	if err != nil {
		return nil, err
	}
	if d == tx {
		return nil, nil
	}

	eopts := []xmltree.EncodeOption{xmltree.Indent(cfg.Indent)}
	if cfg.Color {
		eopts = append(eopts, xmltree.Color())
	}
	var b bytes.Buffer
	if err := xmltree.Encode(&b, d, eopts...); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// parse parses data as an XML document. Empty or whitespace-only data is an empty document.
func parse(data []byte) (*tree.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.NewDocument(), nil
	}
	return xmltree.Parse(bytes.NewReader(data))
}
