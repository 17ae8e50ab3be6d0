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

package config_test

import (
	"encoding/xml"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"znkr.io/treediff"
	"znkr.io/treediff/internal/config"
	"znkr.io/treediff/tree"
	"znkr.io/treediff/xmldiff"
)

func TestFromOptions(t *testing.T) {
	never := func(a, b *tree.Node) bool { return false }

	tests := []struct {
		name      string
		opts      []config.Option
		want      config.Config
		wantMatch bool // result of cfg.Match for two identically named elements
	}{
		{
			name:      "default",
			opts:      nil,
			want:      config.Default,
			wantMatch: true,
		},
		{
			name: "context",
			opts: []config.Option{
				treediff.Context(5),
			},
			want: config.Config{
				Context: 5,
				Indent:  config.Default.Indent,
				Color:   config.Default.Color,
			},
			wantMatch: true,
		},
		{
			name: "negative-context",
			opts: []config.Option{
				treediff.Context(-1),
			},
			want: config.Config{
				Context: 0,
				Indent:  config.Default.Indent,
				Color:   config.Default.Color,
			},
			wantMatch: true,
		},
		{
			name: "match",
			opts: []config.Option{
				treediff.MatchDecision(never),
			},
			want: config.Config{
				Context: config.Default.Context,
				Indent:  config.Default.Indent,
				Color:   config.Default.Color,
			},
			wantMatch: false,
		},
		{
			name: "nil-match-is-default",
			opts: []config.Option{
				treediff.MatchDecision(never),
				treediff.MatchDecision(nil),
			},
			want: config.Config{
				Context: config.Default.Context,
				Indent:  config.Default.Indent,
				Color:   config.Default.Color,
			},
			wantMatch: true,
		},
		{
			name: "context-override",
			opts: []config.Option{
				treediff.Context(5),
				treediff.MatchDecision(never),
				treediff.Context(1),
			},
			want: config.Config{
				Context: 1,
				Indent:  config.Default.Indent,
				Color:   config.Default.Color,
			},
			wantMatch: false,
		},
		{
			name: "everything",
			opts: []config.Option{
				treediff.Context(5),
				treediff.MatchDecision(never),
				xmldiff.Indent("\t"),
				xmldiff.Color(),
			},
			want: config.Config{
				Context: 5,
				Indent:  "\t",
				Color:   true,
			},
			wantMatch: false,
		},
	}

	a := tree.NewElement(xml.Name{Local: "a"}, nil)
	b := tree.NewElement(xml.Name{Local: "a"}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, config.Context|config.Match|config.Indent|config.Color)
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(config.Config{}, "Match")); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
			if got.Match == nil {
				t.Fatalf("FromOptions(...).Match = nil")
			}
			if got := got.Match(a, b); got != tt.wantMatch {
				t.Errorf("FromOptions(...).Match(a, a) = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

func TestFromOptionsNotAllowed(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("FromOptions(...) did not panic for a disallowed option")
		}
	}()
	config.FromOptions([]config.Option{xmldiff.Color()}, config.Context|config.Match)
}
