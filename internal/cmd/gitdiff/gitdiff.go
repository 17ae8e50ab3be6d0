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

// gitdiff is a tool that can be used with git using GIT_EXTERNAL_DIFF to show structural diffs of
// XML files.
//
//	GIT_EXTERNAL_DIFF=gitdiff git diff -- '*.xml'
//
// The output is colored if stdout is a terminal. Elements are transformed into each other if
// they have the same name. If TREEDIFF_KEY is set, they additionally need to agree on the value
// of the attribute with that name.
package main

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"znkr.io/treediff"
	"znkr.io/treediff/match"
	"znkr.io/treediff/xmldiff"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 8 {
		return fmt.Errorf("expected at least 8 args, got %v: %v", len(args), args)
	}

	path, oldFile, oldHex, _, newFile, newHex, newMode := args[1], args[2], args[3], args[4], args[5], args[6], args[7]

	old, err := readFile(oldFile)
	if err != nil {
		return fmt.Errorf("reading old file: %v", err)
	}
	new, err := readFile(newFile)
	if err != nil {
		return fmt.Errorf("reading new file: %v", err)
	}

	opts := []treediff.Option{xmldiff.Indent("  ")}
	if key := os.Getenv("TREEDIFF_KEY"); key != "" {
		opts = append(opts, treediff.MatchDecision(match.ByKey(xml.Name{Local: key})))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		opts = append(opts, xmldiff.Color())
	}

	diff, err := xmldiff.Diff(old, new, opts...)
	if err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}
	if len(diff) == 0 {
		return nil
	}

	fmt.Printf("diff --git a/%s b/%s\n", path, path)
	fmt.Printf("index %s..%s %s\n", short(oldHex), short(newHex), newMode)
	fmt.Printf("--- a/%s\n", path)
	fmt.Printf("+++ b/%s\n", path)
	_, err = os.Stdout.Write(diff)
	return err
}

// readFile reads a file passed by git, /dev/null stands for a missing file.
func readFile(name string) ([]byte, error) {
	if name == "/dev/null" {
		return nil, nil
	}
	return os.ReadFile(name)
}

func short(hex string) string {
	if len(hex) > 10 {
		return hex[:10]
	}
	return hex
}
