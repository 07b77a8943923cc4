// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run a set of long lived processes and stop
// them together
package background

// the shutdown and completed channels for one process
type shutdown struct {
	shutdown chan struct{}
	finished chan struct{}
}

// T - handle for a started set of processes
type T struct {
	s []shutdown
}

// Process - anything that can run until told to shut down
//
// Run must return soon after shutdown is closed; it may also return
// early, e.g. if its startup fails
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// Start - start up a set of background processes
func Start(processes Processes, args interface{}) *T {

	register := &T{
		s: make([]shutdown, len(processes)),
	}

	// start each background
	for i, p := range processes {
		s := shutdown{
			shutdown: make(chan struct{}),
			finished: make(chan struct{}),
		}
		register.s[i] = s
		go func(p Process, s shutdown) {
			defer close(s.finished)
			p.Run(args, s.shutdown)
		}(p, s)
	}
	return register
}

// Stop - signal all processes then wait for each to finish
//
// processes are signalled in the order they were started
func (t *T) Stop() {
	if nil == t {
		return
	}

	for _, s := range t.s {
		close(s.shutdown)
	}

	for _, s := range t.s {
		<-s.finished
	}
}

// Running - number of processes that have not yet finished
func (t *T) Running() int {
	if nil == t {
		return 0
	}
	n := 0
	for _, s := range t.s {
		select {
		case <-s.finished:
		default:
			n += 1
		}
	}
	return n
}
