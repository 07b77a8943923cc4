// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/vessel"
)

func runVessels(c *cli.Context) error {

	var since *uint64
	if s := strings.TrimSpace(c.String("since")); "" != s {
		v, err := strconv.ParseUint(s, 10, 64)
		if nil != err {
			return fault.ErrInvalidNumber
		}
		since = &v
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	snap, err := client.Vessels(since)
	if nil != err {
		return err
	}
	if nil == snap {
		fmt.Fprintf(m.e, "unchanged since version: %d\n", *since)
		return nil
	}

	printJson(m.w, snap)

	return nil
}

func runVessel(c *cli.Context) error {

	s := strings.TrimSpace(c.String("mmsi"))
	if "" == s {
		return ErrMissingMMSI
	}
	mmsi, err := vessel.ParseMMSI(s)
	if nil != err {
		return err
	}

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	record, err := client.Vessel(mmsi)
	if nil != err {
		return err
	}

	printJson(m.w, record)

	return nil
}
