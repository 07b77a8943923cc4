// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"
)

// LoadTLS - server TLS configuration from PEM files
//
// returns the SHA3-256 fingerprint of the leaf certificate
func LoadTLS(log *logger.L, certificateFileName string, keyFileName string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		log.Errorf("failed to load keypair: %v", err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
		NextProtos: []string{"http/1.1"},
	}

	fin = Fingerprint(keyPair.Certificate[0])
	log.Infof("SHA3-256 fingerprint: %x", fin)

	return tlsConfiguration, fin, nil
}

// Fingerprint - SHA3-256 of a DER certificate
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
