// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vessel - the per vessel row and the partial updates applied
// to it
//
//  Record          one row of the position table
//  Kinematic       time, position, movement and heading update
//                  with the derived compass angles and projection
//  Identity        name and type update
//  Delta           identifier plus either or both of the above
//
// derived fields of a Kinematic are computed once by NewKinematic and
// are always copied into a Record together with the values they are
// computed from
package vessel
