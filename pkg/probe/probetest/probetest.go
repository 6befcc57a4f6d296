// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package probetest provides scripted command executors for probe tests.
package probetest

import (
	"testing"
	"time"

	"k8s.io/utils/exec"
	testingexec "k8s.io/utils/exec/testing"
)

// Step is the scripted result of one command invocation.
type Step struct {
	// Stdout is returned as standard output unless Raw is set.
	Stdout string
	// Raw overrides Stdout with arbitrary bytes.
	Raw []byte
	// Err is returned from Output, e.g. testingexec.FakeExitError{Status: 1}.
	Err error
	// Delay is slept before the step returns.
	Delay time.Duration
}

// OK returns a step that prints out followed by a newline and exits 0.
func OK(out string) Step {
	return Step{Stdout: out + "\n"}
}

// Exit returns a step that exits with the given non-zero status.
func Exit(status int) Step {
	return Step{Err: testingexec.FakeExitError{Status: status}}
}

// Fail returns a step whose command could not be started.
func Fail(err error) Step {
	return Step{Err: err}
}

// Exec is a fake executor that replays steps in order and records the
// command lines it was asked to run.
type Exec struct {
	*testingexec.FakeExec
	cmds []*testingexec.FakeCmd
}

// New returns an executor that plays steps in order. Running more commands
// than there are steps panics, which fails the calling test.
func New(steps ...Step) *Exec {
	e := &Exec{FakeExec: &testingexec.FakeExec{
		LookPathFunc: func(cmd string) (string, error) {
			return "/usr/bin/" + cmd, nil
		},
	}}
	for _, s := range steps {
		out := s.Raw
		if out == nil {
			out = []byte(s.Stdout)
		}
		err, delay := s.Err, s.Delay
		fc := &testingexec.FakeCmd{
			OutputScript: []testingexec.FakeAction{
				func() ([]byte, []byte, error) {
					time.Sleep(delay)
					return out, nil, err
				},
			},
		}
		e.cmds = append(e.cmds, fc)
		e.CommandScript = append(e.CommandScript, func(cmd string, args ...string) exec.Cmd {
			return testingexec.InitFakeCmd(fc, cmd, args...)
		})
	}
	return e
}

// Calls returns the number of commands started so far.
func (e *Exec) Calls() int {
	return e.CommandCalls
}

// Argv returns the command line of the i-th started command.
func (e *Exec) Argv(t testing.TB, i int) []string {
	t.Helper()
	if i >= e.CommandCalls {
		t.Fatalf("command %d was never started (%d calls)", i, e.CommandCalls)
	}
	return e.cmds[i].Argv
}
