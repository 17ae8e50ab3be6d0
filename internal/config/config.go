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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// treediff.Option.
package config

import "znkr.io/treediff/match"

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Context is the number of matches to include as a prefix and postfix for hunks returned.
	Context int

	// Match decides if two elements are candidates for an in-place transformation.
	Match match.Func

	// Indentation used by xmldiff to encode the result.
	Indent string

	// If set, xmldiff will color deletions, insertions, and attribute changes.
	Color bool
}

// Default is the default configuration.
var Default = Config{
	Context: 3,
	Match:   match.Default,
	Indent:  "  ",
	Color:   false,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Context Flag = 1 << iota
	Match
	Indent
	Color
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Context:
		return "treediff.Context"
	case Match:
		return "treediff.MatchDecision"
	case Indent:
		return "xmldiff.Indent"
	case Color:
		return "xmldiff.Color"
	default:
		panic("never reached")
	}
}
