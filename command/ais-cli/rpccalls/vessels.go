// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/datastories-org/aisstream/positions"
	"github.com/datastories-org/aisstream/vessel"
)

// Vessels - columnar snapshot of the table
//
// with a since version the reply is nil when the table is unchanged
func (client *Client) Vessels(since *uint64) (*positions.Snapshot, error) {
	var query url.Values
	if nil != since {
		query = url.Values{}
		query.Set("since", strconv.FormatUint(*since, 10))
	}

	status, data, err := client.call(http.MethodGet, "/vessels", query, nil)
	if nil != err {
		return nil, err
	}
	if http.StatusNotModified == status {
		return nil, nil
	}

	var reply positions.Snapshot
	if err := json.Unmarshal(data, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Vessel - one row by identifier
func (client *Client) Vessel(mmsi vessel.MMSI) (*vessel.Record, error) {
	var reply vessel.Record
	if err := client.callJSON(http.MethodGet, "/vessels/"+mmsi.String(), nil, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
