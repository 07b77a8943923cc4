// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promversion "github.com/prometheus/common/version"

	"github.com/datastories-org/aisstream/background"
	"github.com/datastories-org/aisstream/configuration"
	"github.com/datastories-org/aisstream/fault"
	"github.com/datastories-org/aisstream/messagebus"
	"github.com/datastories-org/aisstream/metrics"
	"github.com/datastories-org/aisstream/mode"
	"github.com/datastories-org/aisstream/positions"
	"github.com/datastories-org/aisstream/sweeper"
	"github.com/datastories-org/aisstream/typecode"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	promversion.Version = version

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.Get(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// a blank session gets a fresh consumer group on every start
	session := theConfiguration.Session
	if "" == session {
		session = uuid.New().String()
	}
	log.Infof("session: %s", session)

	durations := theConfiguration.Durations()

	// instrumentation on a private registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// shared state, constructed here and injected
	codes := typecode.New()
	store := positions.New(logger.New("positions"), theConfiguration.Store.Limit)
	queue := messagebus.New(theConfiguration.Store.QueueSize)
	store.Observe(m.Version)

	// bootstrap from the cache before any live update is applied
	state := mode.New(logger.New("mode"))
	loadSnapshot(log, theConfiguration, codes, store, m)

	// --verbose verifies the index after every applied update
	writer := positions.NewWriter(logger.New("writer"), store, queue, m)
	writer.SetIndexCheck(len(options["verbose"]) > 0)

	processes := background.Processes{writer}

	// a consumer that cannot be created leaves the daemon serving the
	// bootstrap data only
	if ing, err := newIngestor(theConfiguration, session, durations, codes, queue, m); nil != err {
		log.Criticalf("message bus: %q error: %s", theConfiguration.Bus.Driver, err)
	} else {
		processes = append(processes, ing)
	}

	sweep := sweeper.New(logger.New("sweeper"), store, m, durations.SweepInterval, ttlFrom(durations))
	processes = append(processes, sweep)

	watcher, err := configuration.NewWatcher(logger.New("watcher"), configurationFile, configuration.DefaultSettleDelay, func(c *configuration.Configuration) {
		sweep.SetTTL(ttlFrom(c.Durations()))
	})
	if nil != err {
		log.Errorf("configuration watcher error: %s", err)
	} else {
		processes = append(processes, watcher)
	}

	listener, err := newListener(theConfiguration, store, state, registry)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	processes = append(processes, listener)

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, newStats(store, queue))
	}

	running := background.Start(processes, nil)
	state.Set(mode.Normal)
	log.Infof("started: %d processes", len(processes))

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	state.Set(mode.Stopped)
	running.Stop()
	log.Infof("rows at shutdown: %d", store.Len())
}
