// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ingestor - reads the vessel message stream from the bus,
// decodes each message and queues the result for the position writer
//
// bus access is behind the Consumer interface with a Kafka and a ZeroMQ
// implementation
package ingestor
