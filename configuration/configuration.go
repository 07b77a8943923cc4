// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/datastories-org/aisstream/fault"
)

// bus and cache drivers
const (
	BusKafka = "kafka"
	BusZMQ   = "zmq"

	CacheRedis   = "redis"
	CacheLevelDB = "leveldb"
	CacheNone    = "none"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultBroker      = "127.0.0.1:9092"
	defaultTopic       = "ais"
	defaultPollTimeout = "1s"
	defaultBackoff     = "100ms"

	defaultCacheAddress   = "127.0.0.1:6379"
	defaultCodeKey        = "ais_code_descriptions"
	defaultCacheDirectory = "cache.leveldb"

	defaultLimit         = 10000
	defaultMovingTTL     = "720s"
	defaultStationaryTTL = "1800s"
	defaultSweepInterval = "10s"
	defaultQueueSize     = 1000

	defaultListen    = "127.0.0.1:5006"
	defaultRateLimit = 50
	defaultRateBurst = 100

	defaultLogDirectory = "log"
	defaultLogFile      = "aislived.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// BusType - message bus connection
type BusType struct {
	Driver      string   `gluamapper:"driver" json:"driver"`
	Brokers     []string `gluamapper:"brokers" json:"brokers"`
	Topics      []string `gluamapper:"topics" json:"topics"`
	PollTimeout string   `gluamapper:"poll_timeout" json:"poll_timeout"`
	Backoff     string   `gluamapper:"backoff" json:"backoff"`
}

// CacheType - bootstrap cache store
type CacheType struct {
	Driver    string `gluamapper:"driver" json:"driver"`
	Address   string `gluamapper:"address" json:"address"`
	DB        int    `gluamapper:"db" json:"db"`
	Password  string `gluamapper:"password" json:"-"`
	CodeKey   string `gluamapper:"code_key" json:"code_key"`
	Directory string `gluamapper:"directory" json:"directory"`
}

// StoreType - position table limits and eviction
type StoreType struct {
	Limit         int    `gluamapper:"limit" json:"limit"`
	MovingTTL     string `gluamapper:"moving_ttl" json:"moving_ttl"`
	StationaryTTL string `gluamapper:"stationary_ttl" json:"stationary_ttl"`
	SweepInterval string `gluamapper:"sweep_interval" json:"sweep_interval"`
	QueueSize     int    `gluamapper:"queue_size" json:"queue_size"`
}

// RPCType - HTTP presentation boundary
type RPCType struct {
	Listen      []string `gluamapper:"listen" json:"listen"`
	Certificate string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey  string   `gluamapper:"private_key" json:"private_key"`
	RateLimit   float64  `gluamapper:"rate_limit" json:"rate_limit"`
	RateBurst   int      `gluamapper:"rate_burst" json:"rate_burst"`
}

// Durations - the duration strings after parsing
type Durations struct {
	PollTimeout   time.Duration
	Backoff       time.Duration
	MovingTTL     time.Duration
	StationaryTTL time.Duration
	SweepInterval time.Duration
}

// Configuration - the whole file
type Configuration struct {
	DataDirectory string `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string `gluamapper:"pidfile" json:"pidfile"`
	Session       string `gluamapper:"session" json:"session"`

	Bus     BusType              `gluamapper:"bus" json:"bus"`
	Cache   CacheType            `gluamapper:"cache" json:"cache"`
	Store   StoreType            `gluamapper:"store" json:"store"`
	HTTPRPC RPCType              `gluamapper:"http_rpc" json:"http_rpc"`
	Logging logger.Configuration `gluamapper:"logging" json:"logging"`

	durations Durations
}

// Durations - parsed values, only valid after Get
func (c *Configuration) Durations() Durations {
	return c.durations
}

// Default - configuration before the file is applied
func Default() *Configuration {
	return &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Session:       "", // random on each start

		Bus: BusType{
			Driver:      BusKafka,
			Brokers:     []string{defaultBroker},
			Topics:      []string{defaultTopic},
			PollTimeout: defaultPollTimeout,
			Backoff:     defaultBackoff,
		},

		Cache: CacheType{
			Driver:    CacheRedis,
			Address:   defaultCacheAddress,
			CodeKey:   defaultCodeKey,
			Directory: defaultCacheDirectory,
		},

		Store: StoreType{
			Limit:         defaultLimit,
			MovingTTL:     defaultMovingTTL,
			StationaryTTL: defaultStationaryTTL,
			SweepInterval: defaultSweepInterval,
			QueueSize:     defaultQueueSize,
		},

		HTTPRPC: RPCType{
			Listen:    []string{defaultListen},
			RateLimit: defaultRateLimit,
			RateBurst: defaultRateBurst,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "info",
			},
		},
	}
}

// Get - read, decode and verify the configuration
func Get(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := Default()

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("path: %q is not a directory", options.DataDirectory)
	}

	if err := options.validate(); nil != err {
		return nil, err
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Cache.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.HTTPRPC.Certificate,
		&options.HTTPRPC.PrivateKey,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = ensureAbsolute(options.DataDirectory, *f)
		}
	}

	// log file must be a plain name inside the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fmt.Errorf("files: %q is not plain name", options.Logging.File)
	}

	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	return options, nil
}

// check the values that do not depend on the file system
func (c *Configuration) validate() error {
	switch c.Bus.Driver {
	case BusKafka, BusZMQ:
	default:
		return fault.ErrInvalidDriver
	}
	if 0 == len(c.Bus.Brokers) {
		return fault.ErrMissingParameters
	}
	if 0 == len(c.Bus.Topics) {
		return fault.ErrNoTopics
	}

	switch c.Cache.Driver {
	case CacheRedis, CacheLevelDB, CacheNone:
	default:
		return fault.ErrInvalidDriver
	}

	if c.Store.Limit < 0 || c.Store.QueueSize <= 0 {
		return fault.ErrInvalidCount
	}
	if c.HTTPRPC.RateLimit <= 0 || c.HTTPRPC.RateBurst <= 0 {
		return fault.ErrInvalidCount
	}
	if ("" == c.HTTPRPC.Certificate) != ("" == c.HTTPRPC.PrivateKey) {
		return fault.ErrMissingParameters
	}

	items := []struct {
		text  string
		value *time.Duration
	}{
		{c.Bus.PollTimeout, &c.durations.PollTimeout},
		{c.Bus.Backoff, &c.durations.Backoff},
		{c.Store.MovingTTL, &c.durations.MovingTTL},
		{c.Store.StationaryTTL, &c.durations.StationaryTTL},
		{c.Store.SweepInterval, &c.durations.SweepInterval},
	}
	for _, item := range items {
		d, err := time.ParseDuration(item.text)
		if nil != err || d <= 0 {
			return fault.ErrInvalidDuration
		}
		*item.value = d
	}
	return nil
}

func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
