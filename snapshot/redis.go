// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package snapshot

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const scanCount = 1000

// RedisSource - cache source on a redis server
type RedisSource struct {
	client  *redis.Client
	codeKey string
}

// RedisOptions - connection settings
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	CodeKey  string
}

// NewRedisSource - create a client, no connection is made until first use
func NewRedisSource(options RedisOptions) *RedisSource {
	codeKey := options.CodeKey
	if "" == codeKey {
		codeKey = DefaultCodeKey
	}
	return &RedisSource{
		client: redis.NewClient(&redis.Options{
			Addr:     options.Address,
			Password: options.Password,
			DB:       options.DB,
		}),
		codeKey: codeKey,
	}
}

// Ping - check that the server answers
func (r *RedisSource) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// CodeDescriptions - the whole type code hash
func (r *RedisSource) CodeDescriptions(ctx context.Context) (map[string]string, error) {
	return r.client.HGetAll(ctx, r.codeKey).Result()
}

// Scan - every hash key except the code hash
func (r *RedisSource) Scan(ctx context.Context, fn ScanFunc) error {
	iter := r.client.Scan(ctx, 0, "*", scanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == r.codeKey {
			continue
		}

		kind, err := r.client.Type(ctx, key).Result()
		if nil != err {
			return err
		}
		if "hash" != kind {
			continue
		}

		fields, err := r.client.HGetAll(ctx, key).Result()
		if nil != err {
			return err
		}
		// key expired between scan and read
		if 0 == len(fields) {
			continue
		}

		err = fn(key, fields)
		if nil != err {
			return err
		}
	}
	return iter.Err()
}

// Close - release the connection pool
func (r *RedisSource) Close() error {
	return r.client.Close()
}
