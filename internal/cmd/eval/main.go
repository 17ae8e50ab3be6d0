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

// eval validates tree diffs on the history of a git repository. Every XML file changed by a
// commit is compared with its previous version and the result is replayed to check that it
// reconstructs both versions.
package main

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"znkr.io/treediff"
	"znkr.io/treediff/internal/cmd/eval/internal/git"
	"znkr.io/treediff/match"
	"znkr.io/treediff/tree"
	"znkr.io/treediff/xmltree"
)

type config struct {
	repo     string
	ext      string
	key      string
	sample   int
	parallel int
	stats    string
	validate bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "repository to use for evaluation")
	flag.StringVar(&cfg.ext, "ext", ".xml", "only evaluate files with this extension")
	flag.StringVar(&cfg.key, "key", "", "if set, also evaluate matching elements by this attribute")
	flag.IntVar(&cfg.sample, "sample", 0, "if >0, sample commits to the value of the flag")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", true, "if validation should be performed")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	prefix string
	msg    string
}

// result is the outcome of a single evaluation. N and M are the weights of the old and new
// document, D is the weight of everything that was deleted, inserted, or changed.
type result struct {
	commitID string
	file     string
	variant  string
	N, M     int
	D        int
	duration time.Duration
}

type change struct {
	commitID string
	filename string
	old, new []byte
}

func run(cfg *config) error {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var commitsDone atomic.Int64
	var processed atomic.Int64
	var skipped atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
	}

	repo, err := git.Open(cfg.repo)
	if err != nil {
		return fmt.Errorf("opening git repository: %v", err)
	}

	commitIDs, err := repo.RevList()
	if err != nil {
		return fmt.Errorf("reading rev-list: %v", err)
	}
	if len(commitIDs) == 0 {
		return fmt.Errorf("no commits in %s", cfg.repo)
	}

	if cfg.sample > 0 && cfg.sample < len(commitIDs) {
		perm := rand.Perm(len(commitIDs))[:cfg.sample]
		sample := make([]string, 0, cfg.sample)
		for _, i := range perm {
			sample = append(sample, commitIDs[i])
		}
		commitIDs = sample
	}

	variants := map[string][]treediff.Option{
		"default": nil,
	}
	if cfg.key != "" {
		variants["key="+cfg.key] = []treediff.Option{
			treediff.MatchDecision(match.ByKey(xml.Name{Local: cfg.key})),
		}
	}

	// Read changes.
	changes := make(chan change)
	var changesWG sync.WaitGroup
	chunkSize := max(1, len(commitIDs)/(4*runtime.GOMAXPROCS(0)))
	for chunk := range slices.Chunk(commitIDs, chunkSize) {
		changesWG.Add(1)
		go func() {
			defer changesWG.Done()
			for _, commitID := range chunk {
				files, err := repo.DiffTree(commitID)
				if err != nil {
					notes <- note{
						prefix: commitID,
						msg:    fmt.Sprintf("error processing commit: %v", err),
					}
				}
				for _, file := range files {
					if !strings.HasSuffix(file.Name, cfg.ext) || file.Added() || file.Removed() {
						continue
					}
					repo.Read([]string{file.OldID, file.NewID}, func(blobs [][]byte) {
						changes <- change{
							commitID: commitID,
							filename: file.Name,
							old:      blobs[0],
							new:      blobs[1],
						}
					})
				}
				commitsDone.Add(1)
			}
		}()
	}

	// Evaluate diffs.
	var processWG sync.WaitGroup
	var results chan result
	if cfg.stats != "" {
		results = make(chan result)
	}
	for range cfg.parallel {
		processWG.Add(1)
		go func() {
			defer processWG.Done()
			for c := range changes {
				prefix := c.commitID + ":" + c.filename
				x, errx := xmltree.Parse(bytes.NewReader(c.old))
				y, erry := xmltree.Parse(bytes.NewReader(c.new))
				if errx != nil || erry != nil {
					// Not every revision of a file is well-formed.
					skipped.Add(1)
					continue
				}

				for variant, opts := range variants {
					start := time.Now()
					d, err := treediff.Diff(x, y, opts...)
					duration := time.Since(start)
					if err != nil {
						notes <- note{prefix: prefix, msg: fmt.Sprintf("%s: diff failed: %v", variant, err)}
						continue
					}

					if results != nil {
						results <- result{
							commitID: c.commitID,
							file:     c.filename,
							variant:  variant,
							N:        x.Weight(),
							M:        y.Weight(),
							D:        changedWeight(d),
							duration: duration,
						}
					}

					if cfg.validate {
						if msg := validate(d, x, y); msg != "" {
							notes <- note{prefix: prefix, msg: variant + ": " + msg}
						}
					}
				}
				processed.Add(1)
			}
		}()
	}

	// Render progress
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		commits := commitsDone.Load()
		processed := processed.Load()
		progress := float64(commits) / float64(len(commitIDs))
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var commitsPerSec, procPerSec int
		if commits > 0 {
			commitsPerSec = int((time.Duration(commits) * time.Second) / time.Since(start))
		}
		if processed > 0 {
			procPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d commits/s, %d evals/s, %d skipped) ", width, bar, 100*progress, commitsPerSec, procPerSec, skipped.Load())
	}
	ioWG.Add(1)
	go func() {
		defer ioWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	var statsWG sync.WaitGroup
	if cfg.stats != "" {
		statsWG.Add(1)
		go func() {
			defer statsWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("commit_id,file,variant,N,M,D,duration_ns\n")
			for result := range results {
				_, err := fmt.Fprintf(w, "%s,%s,%s,%d,%d,%d,%d\n", result.commitID, result.file, result.variant, result.N, result.M, result.D, result.duration.Nanoseconds())
				if err != nil {
					notes <- note{
						prefix: result.commitID + ":" + result.file,
						msg:    fmt.Sprintf("failed to write stats: %v", err),
					}
				}
			}
			if err := w.Flush(); err != nil {
				notes <- note{msg: fmt.Sprintf("failed to flush stats: %v", err)}
			}
			if err := stats.Close(); err != nil {
				notes <- note{msg: fmt.Sprintf("failed to close stats: %v", err)}
			}
		}()
	}

	// Shutdown
	changesWG.Wait()
	repo.Close()
	close(changes)
	processWG.Wait()
	if results != nil {
		close(results)
		statsWG.Wait()
	}
	close(done)
	ioWG.Wait()

	return nil
}

// validate checks that d describes x and y. It returns a message describing the problem or the
// empty string if there is none.
func validate(d, x, y *tree.Node) string {
	before, err := treediff.Before(d)
	if err != nil {
		return fmt.Sprintf("failed to reconstruct old version: %v", err)
	}
	if !before.Equal(x) {
		return fmt.Sprintf("old version is different after replay. got:\n%v\nwant:\n%v", before, x)
	}
	after, err := treediff.After(d)
	if err != nil {
		return fmt.Sprintf("failed to reconstruct new version: %v", err)
	}
	if !after.Equal(y) {
		return fmt.Sprintf("new version is different after replay. got:\n%v\nwant:\n%v", after, y)
	}
	return ""
}

// changedWeight sums up the weight of all deleted and inserted nodes and the number of changed
// attributes in d.
func changedWeight(d *tree.Node) int {
	switch {
	case treediff.IsInsert(d), treediff.IsDelete(d):
		w := 0
		for _, c := range d.Children() {
			w += c.Weight()
		}
		return w
	case treediff.IsAttributeAdd(d), treediff.IsAttributeRemove(d):
		return len(d.Attrs())
	}
	w := 0
	for _, c := range d.Children() {
		w += changedWeight(c)
	}
	return w
}
