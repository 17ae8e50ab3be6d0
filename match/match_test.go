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

package match

import (
	"encoding/xml"
	"testing"

	"znkr.io/treediff/tree"
)

func TestDecisions(t *testing.T) {
	id := xml.Name{Local: "id"}
	el := func(space, local string, attrs ...tree.Attr) *tree.Node {
		return tree.NewElement(xml.Name{Space: space, Local: local}, attrs)
	}
	withID := func(local, v string) *tree.Node {
		return el("", local, tree.Attr{Name: id, Value: v})
	}

	tests := []struct {
		name        string
		a, b        *tree.Node
		wantDefault bool
		wantByKey   bool
	}{
		{
			name:        "same-name",
			a:           el("", "a"),
			b:           el("", "a"),
			wantDefault: true,
			wantByKey:   true,
		},
		{
			name:        "different-name",
			a:           el("", "a"),
			b:           el("", "b"),
			wantDefault: false,
			wantByKey:   false,
		},
		{
			name:        "same-name-different-namespace",
			a:           el("urn:x", "a"),
			b:           el("urn:y", "a"),
			wantDefault: false,
			wantByKey:   false,
		},
		{
			name:        "no-namespace-vs-namespace",
			a:           el("", "a"),
			b:           el("urn:y", "a"),
			wantDefault: false,
			wantByKey:   false,
		},
		{
			name:        "same-key",
			a:           withID("a", "1"),
			b:           withID("a", "1"),
			wantDefault: true,
			wantByKey:   true,
		},
		{
			name:        "different-key",
			a:           withID("a", "1"),
			b:           withID("a", "2"),
			wantDefault: true,
			wantByKey:   false,
		},
		{
			name:        "key-only-on-one-side",
			a:           withID("a", ""),
			b:           el("", "a"),
			wantDefault: true,
			wantByKey:   false,
		},
	}

	byKey := ByKey(id)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Default(tt.a, tt.b); got != tt.wantDefault {
				t.Errorf("Default(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.wantDefault)
			}
			if got := Default(tt.b, tt.a); got != tt.wantDefault {
				t.Errorf("Default(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.wantDefault)
			}
			if got := byKey(tt.a, tt.b); got != tt.wantByKey {
				t.Errorf("ByKey(id)(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.wantByKey)
			}
		})
	}
}
