// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/datastories-org/aisstream/command/ais-cli/rpccalls"
	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/vessel"
)

// client for the connection given by the global flags
func newClient(c *cli.Context) (*rpccalls.Client, *metadata, error) {
	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.insecure, m.verbose, m.e)
	if nil != err {
		return nil, m, err
	}
	return client, m, nil
}

// split a comma separated list, ignoring blank items
func splitList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if "" != item {
			items = append(items, item)
		}
	}
	return items
}

func parsePositions(s string) ([]int, error) {
	items := splitList(s)
	positions := make([]int, 0, len(items))
	for _, item := range items {
		n, err := strconv.Atoi(item)
		if nil != err || n < 0 {
			return nil, fault.ErrInvalidNumber
		}
		positions = append(positions, n)
	}
	return positions, nil
}

func parseIdentifiers(s string) ([]vessel.MMSI, error) {
	items := splitList(s)
	ids := make([]vessel.MMSI, 0, len(items))
	for _, item := range items {
		mmsi, err := vessel.ParseMMSI(item)
		if nil != err {
			return nil, err
		}
		ids = append(ids, mmsi)
	}
	return ids, nil
}
