// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"context"
	"encoding/json"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// key prefixes
const (
	vesselPrefix = 'V' // V<mmsi> → JSON object of fields
	codePrefix   = 'C' // C<code> → description
)

// LevelDBSource - cache source on a local LevelDB database
type LevelDBSource struct {
	db *leveldb.DB
}

// OpenLevelDB - open an existing database read-only
func OpenLevelDB(directory string) (*LevelDBSource, error) {
	opt := &ldb_opt.Options{
		ErrorIfMissing: true,
		ReadOnly:       true,
	}
	db, err := leveldb.OpenFile(directory, opt)
	if nil != err {
		return nil, err
	}
	return NewLevelDBSource(db), nil
}

// NewLevelDBSource - source on an already open database
func NewLevelDBSource(db *leveldb.DB) *LevelDBSource {
	return &LevelDBSource{
		db: db,
	}
}

// Ping - check the database is usable
func (l *LevelDBSource) Ping(ctx context.Context) error {
	snap, err := l.db.GetSnapshot()
	if nil != err {
		return err
	}
	snap.Release()
	return ctx.Err()
}

// CodeDescriptions - all C records
func (l *LevelDBSource) CodeDescriptions(ctx context.Context) (map[string]string, error) {
	descriptions := make(map[string]string)

	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{codePrefix}), nil)
	defer iter.Release()

	for iter.Next() {
		descriptions[string(iter.Key()[1:])] = string(iter.Value())
	}
	return descriptions, iter.Error()
}

// Scan - all V records in key order
func (l *LevelDBSource) Scan(ctx context.Context, fn ScanFunc) error {
	iter := l.db.NewIterator(ldb_util.BytesPrefix([]byte{vesselPrefix}), nil)
	defer iter.Release()

	for iter.Next() {
		if err := ctx.Err(); nil != err {
			return err
		}

		fields := make(map[string]string)
		err := json.Unmarshal(iter.Value(), &fields)
		if nil != err {
			return err
		}

		err = fn(string(iter.Key()[1:]), fields)
		if nil != err {
			return err
		}
	}
	return iter.Error()
}

// Close - close the database
func (l *LevelDBSource) Close() error {
	return l.db.Close()
}

// WriteLevelDB - store vessel hashes and code descriptions in one batch
func WriteLevelDB(db *leveldb.DB, vessels map[string]map[string]string, codes map[string]string) error {
	batch := new(leveldb.Batch)

	for code, description := range codes {
		batch.Put(append([]byte{codePrefix}, code...), []byte(description))
	}

	for key, fields := range vessels {
		value, err := json.Marshal(fields)
		if nil != err {
			return err
		}
		batch.Put(append([]byte{vesselPrefix}, key...), value)
	}

	return db.Write(batch, nil)
}
