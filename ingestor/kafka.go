// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingestor

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/datastories-org/aisstream/fault"
)

const maxFetchBytes = 10e6

// the part of kafka.Reader used by the consumer
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer - consumer group member reading from the latest offset
type KafkaConsumer struct {
	brokers []string
	groupID string
	reader  messageReader

	uncommitted *kafka.Message
}

// NewKafkaConsumer - the group id should be unique per session so that
// every daemon instance sees the whole stream
func NewKafkaConsumer(brokers []string, groupID string) (*KafkaConsumer, error) {
	if 0 == len(brokers) || "" == groupID {
		return nil, fault.ErrMissingParameters
	}
	return &KafkaConsumer{
		brokers: brokers,
		groupID: groupID,
	}, nil
}

// CheckTopics - connect to the first reachable broker and verify each
// topic has partitions
func (c *KafkaConsumer) CheckTopics(ctx context.Context, topics []string) error {
	if 0 == len(topics) {
		return fault.ErrNoTopics
	}

	var conn *kafka.Conn
	var err error
	for _, broker := range c.brokers {
		conn, err = kafka.DialContext(ctx, "tcp", broker)
		if nil == err {
			break
		}
	}
	if nil != err {
		return err
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if nil != err {
		return err
	}

	available := make(map[string]struct{})
	for _, p := range partitions {
		available[p.Topic] = struct{}{}
	}
	for _, topic := range topics {
		if _, ok := available[topic]; !ok {
			return fault.ErrMissingTopic
		}
	}
	return nil
}

// Subscribe - join the group on all topics
func (c *KafkaConsumer) Subscribe(topics []string) error {
	if 0 == len(topics) {
		return fault.ErrNoTopics
	}
	if nil != c.reader {
		return fault.ErrAlreadyInitialised
	}
	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.brokers,
		GroupID:     c.groupID,
		GroupTopics: topics,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    maxFetchBytes,
	})
	return nil
}

// Poll - next message value or nil after the timeout
func (c *KafkaConsumer) Poll(timeout time.Duration) ([]byte, error) {
	if nil == c.reader {
		return nil, fault.ErrNotInitialised
	}

	if nil != c.uncommitted {
		if err := c.reader.CommitMessages(context.Background(), *c.uncommitted); nil != err {
			return nil, err
		}
		c.uncommitted = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	m, err := c.reader.FetchMessage(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}

	// the commit is not bound to the poll deadline, a failed commit is
	// retried by the next poll
	if err := c.reader.CommitMessages(context.Background(), m); nil != err {
		c.uncommitted = &m
	}
	return m.Value, nil
}

// Close - leave the group
func (c *KafkaConsumer) Close() error {
	if nil == c.reader {
		return nil
	}
	err := c.reader.Close()
	c.reader = nil
	c.uncommitted = nil
	return err
}
