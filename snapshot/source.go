// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"context"
)

// DefaultCodeKey - name of the type code hash
const DefaultCodeKey = "ais_code_descriptions"

// ScanFunc - receives one per-vessel hash, a returned error stops the scan
type ScanFunc func(key string, fields map[string]string) error

// Source - read-only view of a cache store
type Source interface {
	Ping(ctx context.Context) error
	CodeDescriptions(ctx context.Context) (map[string]string, error)
	Scan(ctx context.Context, fn ScanFunc) error
	Close() error
}
