// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

// DefaultQueueSize - used when a queue is created with size <= 0
const DefaultQueueSize = 1000

// Message - one queued item and the name of its producer
type Message struct {
	From string
	Item interface{}
}

// Queue - FIFO of messages
type Queue struct {
	queue chan Message
}

// New - create a queue holding at most size messages
func New(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		queue: make(chan Message, size),
	}
}

// Send - queue data, blocking while the queue is full
func (q *Queue) Send(from string, item interface{}) {
	q.queue <- Message{
		From: from,
		Item: item,
	}
}

// SendOrAbandon - queue data unless shutdown closes first
//
// returns false if the item was abandoned
func (q *Queue) SendOrAbandon(from string, item interface{}, shutdown <-chan struct{}) bool {
	select {
	case q.queue <- Message{From: from, Item: item}:
		return true
	case <-shutdown:
		return false
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.queue
}

// Len - number of messages waiting
func (q *Queue) Len() int {
	return len(q.queue)
}

// Cap - maximum number of waiting messages
func (q *Queue) Cap() int {
	return cap(q.queue)
}
