// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/datastories-org/aisstream/configuration"
	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/positions"
)

func TestTTLFrom(t *testing.T) {
	ttl := ttlFrom(configuration.Durations{
		MovingTTL:     720 * time.Second,
		StationaryTTL: 30 * time.Minute,
	})
	assert.Equal(t, positions.DefaultTTL(), ttl, "default durations")
}

func TestOpenSource(t *testing.T) {
	source, err := openSource(configuration.CacheType{Driver: configuration.CacheNone})
	assert.Nil(t, err)
	assert.Nil(t, source, "disabled cache")

	_, err = openSource(configuration.CacheType{Driver: "memcached"})
	assert.Equal(t, fault.ErrInvalidDriver, err)

	dir, err := ioutil.TempDir("", "aislived")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	_, err = openSource(configuration.CacheType{
		Driver:    configuration.CacheLevelDB,
		Directory: filepath.Join(dir, "missing.leveldb"),
	})
	assert.NotNil(t, err, "missing leveldb directory")
}

func TestMakeSelfSignedCertificate(t *testing.T) {
	dir, err := ioutil.TempDir("", "aislived")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	certificate := getFilenameWithDirectory([]string{dir}, rpcCertificateKeyFilename)
	key := getFilenameWithDirectory([]string{dir}, rpcPrivateKeyFilename)

	err = makeSelfSignedCertificate("test", certificate, key, true, []string{"127.0.0.1"})
	assert.Nil(t, err)

	_, err = tls.LoadX509KeyPair(certificate, key)
	assert.Nil(t, err, "generated pair must load")

	err = makeSelfSignedCertificate("test", certificate, key, true, []string{"127.0.0.1"})
	assert.Equal(t, fault.ErrCertificateFileExists, err)

	os.Remove(certificate)
	err = makeSelfSignedCertificate("test", certificate, key, true, []string{"127.0.0.1"})
	assert.Equal(t, fault.ErrKeyFileExists, err)
}

func TestGetFilenameWithDirectory(t *testing.T) {
	assert.Equal(t, "rpc.crt", getFilenameWithDirectory(nil, "rpc.crt"))
	assert.Equal(t, "/etc/ais/rpc.key", getFilenameWithDirectory([]string{"/etc/ais"}, "rpc.key"))
}

func TestWriteConfiguration(t *testing.T) {
	expected := configuration.Default()
	expected.DataDirectory = "."
	expected.Bus.Brokers = []string{"10.0.0.1:9092", "10.0.0.2:9092"}
	expected.HTTPRPC.RateLimit = 12.5

	var buffer bytes.Buffer
	err := writeConfiguration(&buffer, expected)
	assert.Nil(t, err)

	actual := configuration.Default()
	err = configuration.ParseConfigurationString(buffer.String(), actual)
	assert.Nil(t, err, "parse rendered text")
	assert.Equal(t, expected, actual, "round trip")
}

func TestMakeConfigurationFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "aislived")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	fileName := getFilenameWithDirectory([]string{dir}, configurationFilename)
	err = makeConfigurationFile(fileName)
	assert.Nil(t, err)

	c, err := configuration.Get(fileName)
	assert.Nil(t, err, "generated file must be valid")
	if nil != c {
		assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "log directory")
		assert.Equal(t, positions.DefaultTTL(), ttlFrom(c.Durations()), "ttl")
	}

	err = makeConfigurationFile(fileName)
	assert.Equal(t, fault.ErrConfigFileExists, err)
}
