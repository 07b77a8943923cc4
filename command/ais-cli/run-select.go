// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/rpc"
)

func runSelect(c *cli.Context) error {

	positions := strings.TrimSpace(c.String("positions"))
	identifiers := strings.TrimSpace(c.String("mmsi"))
	none := c.Bool("clear")

	given := 0
	for _, b := range []bool{"" != positions, "" != identifiers, none} {
		if b {
			given += 1
		}
	}
	if given > 1 {
		return ErrConflictingSelection
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	var reply *rpc.SelectionReply

	switch {
	case none:
		reply, err = client.SelectPositions([]int{})

	case "" != positions:
		p, err := parsePositions(positions)
		if nil != err {
			return err
		}
		reply, err = client.SelectPositions(p)
		if nil != err {
			return err
		}

	case "" != identifiers:
		ids, err := parseIdentifiers(identifiers)
		if nil != err {
			return err
		}
		reply, err = client.SelectIdentifiers(ids)
		if nil != err {
			return err
		}

	default:
		reply, err = client.Selection()
	}
	if nil != err {
		return err
	}

	printJson(m.w, reply)

	return nil
}

func runVisibility(c *cli.Context) error {

	s := strings.TrimSpace(c.String("visible"))
	if "" == s {
		return ErrMissingVisible
	}
	visible, err := strconv.ParseBool(s)
	if nil != err {
		return fault.ErrInvalidPayload
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.SetVisibility(visible)
	if nil != err {
		return err
	}

	printJson(m.w, reply)

	return nil
}
