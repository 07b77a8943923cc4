// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ingestor

import (
	"context"
	"time"
)

// Consumer - a subscription to the message bus
//
// Poll returns nil data and nil error when nothing arrived within the
// timeout
type Consumer interface {
	CheckTopics(ctx context.Context, topics []string) error
	Subscribe(topics []string) error
	Poll(timeout time.Duration) ([]byte, error)
	Close() error
}
