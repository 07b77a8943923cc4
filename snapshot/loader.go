// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/datastories-org/aisstream/decoder"
	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/metrics"
	"github.com/datastories-org/aisstream/positions"
	"github.com/datastories-org/aisstream/typecode"
	"github.com/datastories-org/aisstream/vessel"
)

// Result - counts from one bootstrap
type Result struct {
	Codes   int // type code descriptions loaded
	Scanned int // per-vessel hashes read
	Skipped int // hashes that could not be used
	Created int // rows added to the table
}

// Load - fill the code table and the store from a cache source
//
// an unreachable source returns fault.ErrCacheUnreachable and leaves the
// store untouched
func Load(ctx context.Context, log *logger.L, source Source, codes *typecode.Table, store *positions.Store, m *metrics.Metrics) (Result, error) {
	result := Result{}

	err := source.Ping(ctx)
	if nil != err {
		log.Errorf("ping cache error: %s", err)
		return result, fault.ErrCacheUnreachable
	}

	descriptions, err := source.CodeDescriptions(ctx)
	if nil != err {
		log.Warnf("code descriptions error: %s", err)
	} else {
		result.Codes = codes.Load(descriptions)
	}
	log.Infof("type codes: %d", result.Codes)

	deltas := make([]vessel.Delta, 0, 1024)
	err = source.Scan(ctx, func(key string, fields map[string]string) error {
		result.Scanned += 1

		delta, err := decoder.FromFields(key, fields, codes)
		if nil != err {
			result.Skipped += 1
			if fault.ErrNotKinematic == err {
				log.Debugf("key: %q  no position", key)
			} else {
				log.Warnf("key: %q  error: %s", key, err)
			}
			return nil
		}
		deltas = append(deltas, delta)
		return nil
	})
	if nil != err {
		log.Errorf("scan cache error: %s", err)
		return result, err
	}

	result.Created = store.SnapshotLoad(deltas)
	m.Loaded(result.Created)
	m.Rows(store.Len())

	log.Infof("scanned: %d  skipped: %d  created: %d", result.Scanned, result.Skipped, result.Created)
	return result, nil
}
