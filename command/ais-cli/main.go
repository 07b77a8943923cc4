// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect  string
	insecure bool
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "ais-cli"
	app.Usage = "query and control a running aislived"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:5006",
			Usage:  " aislived `HOST:PORT` or URL",
			EnvVar: "AISLIVED_CONNECT",
		},
		cli.BoolFlag{
			Name:  "insecure, k",
			Usage: " accept a self signed certificate",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "vessels",
			Usage:     "columnar snapshot of the position table",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "since, s",
					Value: "",
					Usage: " only if the table changed after `VERSION`",
				},
			},
			Action: runVessels,
		},
		{
			Name:      "vessel",
			Usage:     "show one vessel",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "mmsi, m",
					Value: "",
					Usage: "*vessel identifier `MMSI`",
				},
			},
			Action: runVessel,
		},
		{
			Name:      "select",
			Usage:     "show or replace the selected rows",
			ArgsUsage: "\n   (+ = select one, none to show)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "positions, p",
					Value: "",
					Usage: "+comma separated row `POSITIONS`",
				},
				cli.StringFlag{
					Name:  "mmsi, m",
					Value: "",
					Usage: "+comma separated vessel `IDENTIFIERS`",
				},
				cli.BoolFlag{
					Name:  "clear",
					Usage: "+remove all rows from the selection",
				},
			},
			Action: runSelect,
		},
		{
			Name:      "visibility",
			Usage:     "show or hide the table",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "visible",
					Value: "",
					Usage: "*table visibility `BOOL`",
				},
			},
			Action: runVisibility,
		},
		{
			Name:      "details",
			Usage:     "table summary and daemon version",
			ArgsUsage: " ",
			Action:    runDetails,
		},
		{
			Name:      "metrics",
			Usage:     "scrape the daemon counters",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "prefix, p",
					Value: "aislived_",
					Usage: " only series whose name starts with `PREFIX`",
				},
			},
			Action: runMetrics,
		},
		{
			Name:      "seed-cache",
			Usage:     "write a LevelDB bootstrap cache from a JSON file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "directory, d",
					Value: "",
					Usage: "*LevelDB `DIRECTORY`, created if missing",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*JSON `FILE` of vessels and codes",
				},
			},
			Action: runSeedCache,
		},
		{
			Name:  "version",
			Usage: "display ais-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect:  c.GlobalString("connect"),
			insecure: c.GlobalBool("insecure"),
			verbose:  c.GlobalBool("verbose"),
			e:        c.App.ErrWriter,
			w:        c.App.Writer,
		}
		return nil
	}

	return app
}
