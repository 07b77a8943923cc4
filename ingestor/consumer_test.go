// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingestor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/ingestor"
)

func TestKafkaConsumerParameters(t *testing.T) {
	_, err := ingestor.NewKafkaConsumer(nil, "session")
	assert.Equal(t, fault.ErrMissingParameters, err, "no brokers")

	_, err = ingestor.NewKafkaConsumer([]string{"127.0.0.1:9092"}, "")
	assert.Equal(t, fault.ErrMissingParameters, err, "no group")

	c, err := ingestor.NewKafkaConsumer([]string{"127.0.0.1:9092"}, "session")
	assert.Nil(t, err, "valid")

	assert.Equal(t, fault.ErrNoTopics, c.CheckTopics(context.Background(), nil), "check without topics")
	assert.Equal(t, fault.ErrNoTopics, c.Subscribe(nil), "subscribe without topics")

	_, err = c.Poll(time.Millisecond)
	assert.Equal(t, fault.ErrNotInitialised, err, "poll before subscribe")
	assert.Nil(t, c.Close(), "close before subscribe")
}

func TestZMQConsumer(t *testing.T) {
	_, err := ingestor.NewZMQConsumer(nil)
	assert.Equal(t, fault.ErrMissingParameters, err, "no endpoints")

	// connect is asynchronous so no publisher is needed
	c, err := ingestor.NewZMQConsumer([]string{"127.0.0.1:5999"})
	assert.Nil(t, err, "create")
	defer c.Close()

	assert.Equal(t, fault.ErrNoTopics, c.CheckTopics(context.Background(), nil), "no topics")
	assert.Equal(t, fault.ErrMissingTopic, c.CheckTopics(context.Background(), []string{""}), "blank topic")
	assert.Nil(t, c.CheckTopics(context.Background(), []string{"ais"}), "topics")
	assert.Nil(t, c.Subscribe([]string{"ais"}), "subscribe")

	data, err := c.Poll(5 * time.Millisecond)
	assert.Nil(t, err, "poll error")
	assert.Nil(t, data, "poll data")
}
