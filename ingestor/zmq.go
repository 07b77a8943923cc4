// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingestor

import (
	"context"
	"strings"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/datastories-org/aisstream/fault"
)

// ZMQConsumer - SUB socket connected to one or more publishers
//
// messages are two frames: topic and JSON payload
type ZMQConsumer struct {
	socket *zmq.Socket
	poller *zmq.Poller
}

// NewZMQConsumer - connect to all endpoints, "host:port" means tcp
func NewZMQConsumer(endpoints []string) (*ZMQConsumer, error) {
	if 0 == len(endpoints) {
		return nil, fault.ErrMissingParameters
	}

	socket, err := zmq.NewSocket(zmq.SUB)
	if nil != err {
		return nil, err
	}

	for _, endpoint := range endpoints {
		if !strings.Contains(endpoint, "://") {
			endpoint = "tcp://" + endpoint
		}
		err = socket.Connect(endpoint)
		if nil != err {
			socket.Close()
			return nil, err
		}
	}

	poller := zmq.NewPoller()
	poller.Add(socket, zmq.POLLIN)

	return &ZMQConsumer{
		socket: socket,
		poller: poller,
	}, nil
}

// CheckTopics - publishers have no topic registry so only the list is checked
func (c *ZMQConsumer) CheckTopics(ctx context.Context, topics []string) error {
	if 0 == len(topics) {
		return fault.ErrNoTopics
	}
	for _, topic := range topics {
		if "" == topic {
			return fault.ErrMissingTopic
		}
	}
	return ctx.Err()
}

// Subscribe - one prefix filter per topic
func (c *ZMQConsumer) Subscribe(topics []string) error {
	if 0 == len(topics) {
		return fault.ErrNoTopics
	}
	for _, topic := range topics {
		err := c.socket.SetSubscribe(topic)
		if nil != err {
			return err
		}
	}
	return nil
}

// Poll - payload frame of the next message or nil after the timeout
func (c *ZMQConsumer) Poll(timeout time.Duration) ([]byte, error) {
	polled, err := c.poller.Poll(timeout)
	if nil != err {
		return nil, err
	}
	if 0 == len(polled) {
		return nil, nil
	}

	data, err := c.socket.RecvMessageBytes(0)
	if nil != err {
		return nil, err
	}
	if 2 != len(data) {
		return nil, fault.ErrInvalidPayload
	}
	return data[1], nil
}

// Close - close the socket
func (c *ZMQConsumer) Close() error {
	return c.socket.Close()
}
