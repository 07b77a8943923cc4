// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package templates

import (
	"fmt"
	"strings"
	"text/template"
)

// Funcs - helpers used by the templates below
var Funcs = template.FuncMap{
	"quote": func(s string) string {
		return fmt.Sprintf("%q", s)
	},
	"list": func(items []string) string {
		quoted := make([]string, len(items))
		for i, s := range items {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "{ " + strings.Join(quoted, ", ") + " }"
	},
}

const (
	/**** Configuration template ****/
	ConfigurationTemplate = `-- aislived.conf  -*- mode: lua -*-

local M = {}

-- "." means the same directory as this file
M.data_directory = {{quote .DataDirectory}}

-- optional pid file if not absolute path then is created relative to
-- the data directory
M.pidfile = {{quote .PidFile}}

-- consumer group; blank for a new random group on every start
M.session = {{quote .Session}}

-- live position stream
M.bus = {
    -- "kafka" or "zmq"
    driver = {{quote .Bus.Driver}},
    brokers = {{list .Bus.Brokers}},
    topics = {{list .Bus.Topics}},
    poll_timeout = {{quote .Bus.PollTimeout}},
    backoff = {{quote .Bus.Backoff}},
}

-- bootstrap snapshot read once at start
M.cache = {
    -- "redis", "leveldb" or "none"
    driver = {{quote .Cache.Driver}},
    address = {{quote .Cache.Address}},
    db = {{.Cache.DB}},
    password = {{quote .Cache.Password}},
    code_key = {{quote .Cache.CodeKey}},
    directory = {{quote .Cache.Directory}},
}

-- position table; the TTLs are re-read when this file changes
M.store = {
    limit = {{.Store.Limit}},
    moving_ttl = {{quote .Store.MovingTTL}},
    stationary_ttl = {{quote .Store.StationaryTTL}},
    sweep_interval = {{quote .Store.SweepInterval}},
    queue_size = {{.Store.QueueSize}},
}

-- HTTP interface; TLS is enabled when both files are given
M.http_rpc = {
    listen = {{list .HTTPRPC.Listen}},
    certificate = {{quote .HTTPRPC.Certificate}},
    private_key = {{quote .HTTPRPC.PrivateKey}},
    rate_limit = {{.HTTPRPC.RateLimit}},
    rate_burst = {{.HTTPRPC.RateBurst}},
}

-- logging configuration
M.logging = {
    directory = {{quote .Logging.Directory}},
    file = {{quote .Logging.File}},
    size = {{.Logging.Size}},
    count = {{.Logging.Count}},
    console = {{.Logging.Console}},
    levels = {
{{- range $tag, $level := .Logging.Levels}}
        [{{quote $tag}}] = {{quote $level}},
{{- end}}
    },
}

return M
`
)
