// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 30 * time.Second

// Client - to hold the HTTP connection to an aislived
type Client struct {
	client  *http.Client
	base    *url.URL
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// ReplyError - JSON error body returned by the daemon
type ReplyError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewClient - create a client for HOST:PORT or a full URL
//
// insecure skips verification of a self signed certificate
func NewClient(connect string, insecure bool, verbose bool, handle io.Writer) (*Client, error) {
	if !strings.Contains(connect, "://") {
		connect = "http://" + connect
	}
	base, err := url.Parse(connect)
	if nil != err {
		return nil, err
	}
	switch base.Scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("unsupported scheme: %q", base.Scheme)
	}
	if "" == base.Host {
		return nil, fmt.Errorf("missing host in: %q", connect)
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: insecure,
		},
	}

	r := &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		base:    base,
		verbose: verbose,
		handle:  handle,
	}
	return r, nil
}

// Close - release idle connections
func (client *Client) Close() {
	client.client.CloseIdleConnections()
}

// issue one request, the raw body is returned for a 2xx status
func (client *Client) call(method string, path string, query url.Values, body interface{}) (int, []byte, error) {
	u := *client.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if nil != query {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if nil != body {
		b, err := json.Marshal(body)
		if nil != err {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
	}

	request, err := http.NewRequest(method, u.String(), reader)
	if nil != err {
		return 0, nil, err
	}
	if nil != body {
		request.Header.Set("Content-Type", "application/json")
	}

	if client.verbose {
		fmt.Fprintf(client.handle, "%s %s\n", method, u.String())
	}

	response, err := client.client.Do(request)
	if nil != err {
		return 0, nil, err
	}
	defer response.Body.Close()

	data, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return response.StatusCode, nil, err
	}

	if client.verbose {
		fmt.Fprintf(client.handle, "status: %d  bytes: %d\n", response.StatusCode, len(data))
	}

	switch {
	case response.StatusCode == http.StatusNotModified:
		return response.StatusCode, nil, nil
	case response.StatusCode < 200 || response.StatusCode > 299:
		reply := &ReplyError{}
		if err := json.Unmarshal(data, reply); nil != err || "" == reply.Message {
			reply.Code = response.StatusCode
			reply.Message = http.StatusText(response.StatusCode)
		}
		return response.StatusCode, nil, reply
	}
	return response.StatusCode, data, nil
}

// call and decode the JSON reply
func (client *Client) callJSON(method string, path string, body interface{}, reply interface{}) error {
	_, data, err := client.call(method, path, nil, body)
	if nil != err {
		return err
	}
	return json.Unmarshal(data, reply)
}
