// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli"
)

func runDetails(c *cli.Context) error {

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Details()
	if nil != err {
		return err
	}

	response := map[string]interface{}{
		"details":     reply,
		"_connection": m.connect,
	}
	printJson(m.w, response)

	return nil
}

func runMetrics(c *cli.Context) error {

	client, m, err := newClient(c)
	if nil != err {
		return err
	}
	defer client.Close()

	samples, err := client.Metrics(c.String("prefix"))
	if nil != err {
		return err
	}

	if m.verbose {
		printJson(m.w, samples)
		return nil
	}

	for _, s := range samples {
		fmt.Fprintf(m.w, "%s%s %g\n", s.Name, formatLabels(s.Labels), s.Value)
	}

	return nil
}

func formatLabels(labels map[string]string) string {
	if 0 == len(labels) {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%q", k, labels[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}
