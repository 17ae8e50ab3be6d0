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

// Package git provides read access to the history of a git repository for evaluations.
package git

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// zeroID is the object ID git reports for a missing file.
const zeroID = "0000000000000000000000000000000000000000"

// Repo is a git repository. Blobs are read through a single long running git cat-file process.
type Repo struct {
	dir    string
	reads  chan<- readRequest
	closed chan struct{}
}

// Open opens the repository in dir.
func Open(dir string) (*Repo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	reads, closed, err := catFile(dir)
	if err != nil {
		return nil, err
	}
	return &Repo{dir: dir, reads: reads, closed: closed}, nil
}

// Close waits for all pending reads and stops the cat-file process.
func (r *Repo) Close() {
	close(r.reads)
	<-r.closed
}

// RevList returns the IDs of all commits reachable from HEAD, excluding merges.
func (r *Repo) RevList() ([]string, error) {
	out, err := git("-C", r.dir, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// FileDiff describes a file changed by a commit.
type FileDiff struct {
	Name  string
	OldID string
	NewID string
}

// Added reports whether the file was created by the commit.
func (f FileDiff) Added() bool { return f.OldID == zeroID }

// Removed reports whether the file was deleted by the commit.
func (f FileDiff) Removed() bool { return f.NewID == zeroID }

// DiffTree returns the files changed by commit.
func (r *Repo) DiffTree(commit string) ([]FileDiff, error) {
	out, err := git("-C", r.dir, "diff-tree", "-r", commit)
	if err != nil {
		return nil, err
	}
	var ret []FileDiff
	for i, line := range strings.Split(out, "\n") {
		if i == 0 || len(line) == 0 {
			continue // the first line is the commit ID
		}
		if line[0] != ':' {
			return nil, fmt.Errorf("diff-tree line not starting with ':': %q", line)
		}
		fields := strings.Fields(line[1:])
		if len(fields) < 6 {
			return nil, fmt.Errorf("diff-tree line with %d fields: %q", len(fields), line)
		}
		ret = append(ret, FileDiff{
			Name:  fields[5],
			OldID: fields[2],
			NewID: fields[3],
		})
	}
	return ret, nil
}

// Read reads the blobs with the given IDs and calls cb with their contents in the same order.
// Missing blobs are passed as nil. The callback is called from a different goroutine.
func (r *Repo) Read(blobIDs []string, cb func([][]byte)) {
	r.reads <- readRequest{blobIDs, cb}
}

func git(args ...string) (string, error) {
	var wout, werr strings.Builder
	cmd := exec.Command("git", args...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running git command %v: %v\n%s", cmd, err, werr.String())
	}
	return wout.String(), nil
}

type readRequest struct {
	blobIDs []string
	cb      func([][]byte)
}

// catFile starts git cat-file in batch mode. Requests are written in bundles followed by a flush,
// a second goroutine reads the responses in the same order.
func catFile(repo string) (chan<- readRequest, chan struct{}, error) {
	cmd := exec.Command("git", "-C", repo, "cat-file", "--batch-command", "--buffer")
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("connecting stdin: %v", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("connecting stdout: %v", err)
	}
	var werr bytes.Buffer
	cmd.Stderr = &werr
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("starting git cat-file: %v", err)
	}

	requests := make(chan readRequest)
	bundles := make(chan []readRequest, runtime.GOMAXPROCS(0))
	closed := make(chan struct{})

	go func() {
		defer close(bundles)
		defer in.Close()
		const N = 32
		for req := range requests {
			// Block for the first request of a bundle, then add whatever is ready.
			bundle := []readRequest{writeRequest(in, req)}
		Write:
			for len(bundle) < N {
				select {
				case req, ok := <-requests:
					if !ok {
						break Write
					}
					bundle = append(bundle, writeRequest(in, req))
				default:
					break Write
				}
			}
			flush(in, bundle, bundles)
		}
	}()

	go func() {
		defer close(closed)
		r := bufio.NewReader(out)
		for bundle := range bundles {
			for _, req := range bundle {
				blobs := make([][]byte, len(req.blobIDs))
				for i, id := range req.blobIDs {
					if id == zeroID {
						continue
					}
					blob, err := readBlob(r, id)
					if err != nil {
						panic(fmt.Sprintf("%v\n%s", err, werr.String()))
					}
					blobs[i] = blob
				}
				req.cb(blobs)
			}
		}
		cmd.Wait()
	}()

	return requests, closed, nil
}

func writeRequest(w io.Writer, req readRequest) readRequest {
	for _, id := range req.blobIDs {
		if id == zeroID {
			continue
		}
		if _, err := fmt.Fprintf(w, "contents %s\n", id); err != nil {
			panic(fmt.Sprintf("writing to stdin pipe: %v", err))
		}
	}
	return req
}

func flush(w io.Writer, bundle []readRequest, bundles chan<- []readRequest) {
	if _, err := fmt.Fprintf(w, "flush\n"); err != nil {
		panic(fmt.Sprintf("writing to stdin pipe: %v", err))
	}
	bundles <- bundle
}

// readBlob reads a single response of the form "<id> <type> <size>\n<contents>\n".
func readBlob(r *bufio.Reader, id string) ([]byte, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, fmt.Errorf("found %v fields, expected 3: %q", len(fields), line)
	}
	if fields[0] != id {
		return nil, fmt.Errorf("ids don't match %s vs %s", fields[0], id)
	}
	n, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n+1)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf[:n], nil
}
