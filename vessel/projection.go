// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vessel

import (
	"math"
)

const (
	earthRadius = 6378137.0 // WGS84 semi-major axis in metres

	// latitudes beyond this are outside the square Web Mercator world
	maximumLatitude = 85.05112877980659
)

// Mercator - project longitude/latitude (EPSG:4326, degrees) to
// Web Mercator (EPSG:3857, metres)
func Mercator(longitude float64, latitude float64) (float64, float64) {
	if latitude > maximumLatitude {
		latitude = maximumLatitude
	} else if latitude < -maximumLatitude {
		latitude = -maximumLatitude
	}
	x := earthRadius * longitude * math.Pi / 180
	y := earthRadius * math.Log(math.Tan(math.Pi/4+latitude*math.Pi/360))
	return x, y
}

// HeadingUp - angle for the glyph pointing along the heading
func HeadingUp(heading float64) float64 {
	return -heading
}

// HeadingAcross - angle for the glyph drawn across the heading
func HeadingAcross(heading float64) float64 {
	return 270 - heading
}
