// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrCacheUnreachable      = ProcessError("cache store is unreachable")
	ErrCertificateFileExists = ExistsError("certificate file already exists")
	ErrConfigFileExists      = ExistsError("configuration file already exists")
	ErrIndexInconsistent     = ProcessError("identity index is inconsistent with the table")
	ErrInvalidConfiguration  = InvalidError("invalid configuration")
	ErrInvalidCount          = InvalidError("invalid count")
	ErrInvalidDriver         = InvalidError("invalid driver")
	ErrInvalidDuration       = InvalidError("invalid duration")
	ErrInvalidIdentifier     = InvalidError("invalid vessel identifier")
	ErrInvalidLoggerChannel  = InvalidError("invalid logger channel")
	ErrInvalidNumber         = InvalidError("invalid number")
	ErrInvalidPayload        = InvalidError("invalid payload")
	ErrInvalidSelection      = InvalidError("invalid selection")
	ErrKeyFileExists         = ExistsError("key file already exists")
	ErrMissingField          = InvalidError("missing field")
	ErrMissingParameters     = InvalidError("missing parameters")
	ErrMissingTopic          = NotFoundError("topic not found or unavailable")
	ErrNoTopics              = InvalidError("no topics configured")
	ErrNotInitialised        = NotFoundError("not initialised")
	ErrNotKinematic          = InvalidError("record has no kinematic data")
	ErrRateLimiting          = ProcessError("rate limiting")
	ErrTableFull             = ProcessError("position table is full")
	ErrVesselNotFound        = NotFoundError("vessel not found")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
