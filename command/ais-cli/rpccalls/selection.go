// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"net/http"

	"github.com/datastories-org/aisstream/rpc"
	"github.com/datastories-org/aisstream/vessel"
)

// Selection - current selected rows
func (client *Client) Selection() (*rpc.SelectionReply, error) {
	var reply rpc.SelectionReply
	if err := client.callJSON(http.MethodGet, "/selection", nil, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SelectPositions - replace the selection by row position
func (client *Client) SelectPositions(positions []int) (*rpc.SelectionReply, error) {
	if nil == positions {
		positions = []int{}
	}
	return client.setSelection(rpc.SelectionRequest{
		Selected: positions,
	})
}

// SelectIdentifiers - replace the selection by vessel identifier
func (client *Client) SelectIdentifiers(ids []vessel.MMSI) (*rpc.SelectionReply, error) {
	if nil == ids {
		ids = []vessel.MMSI{}
	}
	return client.setSelection(rpc.SelectionRequest{
		MMSI: ids,
	})
}

func (client *Client) setSelection(request rpc.SelectionRequest) (*rpc.SelectionReply, error) {
	var reply rpc.SelectionReply
	if err := client.callJSON(http.MethodPut, "/selection", request, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// SetVisibility - toggle the display of the table
func (client *Client) SetVisibility(visible bool) (*rpc.VisibilityReply, error) {
	var reply rpc.VisibilityReply
	if err := client.callJSON(http.MethodPut, "/visibility", rpc.VisibilityRequest{Visible: &visible}, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}

// Details - table summary and daemon version
func (client *Client) Details() (*rpc.DetailsReply, error) {
	var reply rpc.DetailsReply
	if err := client.callJSON(http.MethodGet, "/details", nil, &reply); nil != err {
		return nil, err
	}
	return &reply, nil
}
