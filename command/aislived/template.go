// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"text/template"

	"github.com/datastories-org/aisstream/configuration"
	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/templates"
)

// render a configuration as a Lua file
func writeConfiguration(w io.Writer, c *configuration.Configuration) error {
	t, err := template.New("configuration").Funcs(templates.Funcs).Parse(templates.ConfigurationTemplate)
	if nil != err {
		return err
	}
	return t.Execute(w, c)
}

// create a configuration file holding the defaults
func makeConfigurationFile(fileName string) error {
	if fileExists(fileName) {
		return fault.ErrConfigFileExists
	}

	c := configuration.Default()
	c.DataDirectory = "."

	fd, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if nil != err {
		return err
	}

	err = writeConfiguration(fd, c)
	if nil != err {
		fd.Close()
		os.Remove(fileName)
		return err
	}
	return fd.Close()
}
