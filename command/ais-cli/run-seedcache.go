// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/urfave/cli"

	"github.com/datastories-org/aisstream/snapshot"
)

// seedFile - input of seed-cache
//
//   {
//     "codes": { "70": "Cargo, all ships of this type" },
//     "vessels": {
//       "237000001": { "timestamp": "1571000000000", "longitude": "23.6",
//                      "latitude": "37.9", "speed": "11.2", "shiptype": "70" }
//     }
//   }
type seedFile struct {
	Codes   map[string]string            `json:"codes"`
	Vessels map[string]map[string]string `json:"vessels"`
}

func runSeedCache(c *cli.Context) error {

	directory := strings.TrimSpace(c.String("directory"))
	if "" == directory {
		return ErrMissingDirectory
	}
	fileName := strings.TrimSpace(c.String("file"))
	if "" == fileName {
		return ErrMissingFile
	}

	m := c.App.Metadata["config"].(*metadata)
	if m.verbose {
		fmt.Fprintf(m.e, "reading: %q\n", fileName)
	}

	vessels, codes, err := seedCache(directory, fileName)
	if nil != err {
		return err
	}

	printJson(m.w, map[string]interface{}{
		"directory": directory,
		"vessels":   vessels,
		"codes":     codes,
	})

	return nil
}

// write the file contents into a LevelDB cache and return the counts
func seedCache(directory string, fileName string) (int, int, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return 0, 0, err
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); nil != err {
		return 0, 0, err
	}

	db, err := leveldb.OpenFile(directory, nil)
	if nil != err {
		return 0, 0, err
	}
	defer db.Close()

	if err := snapshot.WriteLevelDB(db, seed.Vessels, seed.Codes); nil != err {
		return 0, 0, err
	}
	return len(seed.Vessels), len(seed.Codes), nil
}
