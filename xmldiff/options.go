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

package xmldiff

import (
	"znkr.io/treediff"
	"znkr.io/treediff/internal/config"
)

// Indent sets the string used to indent one level of nesting in the output. The default is two
// spaces.
func Indent(s string) treediff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Indent = s
		return config.Indent
	}
}

// Color highlights deletions and insertions in the output using ANSI terminal colors.
func Color() treediff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Color = true
		return config.Color
	}
}
