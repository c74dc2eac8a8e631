// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func unitCube() [8][3]float64 {
	return [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
}

func Test_geom01(tst *testing.T) {

	chk.PrintTitle("Test geom01: axis-aligned hex volume and sampling bounds")

	cube := unitCube()
	if v := HexVolume(cube); v < 0.999999 || v > 1.000001 {
		tst.Errorf("unit cube volume should be 1, got %g", v)
	}

	rng := rand.New(rand.NewSource(1953))
	for i := 0; i < 2000; i++ {
		p := SampleHex(cube, rng.Float64(), rng.Float64(), rng.Float64())
		for d := 0; d < 3; d++ {
			if p[d] < 0 || p[d] > 1 {
				tst.Errorf("sampled point %v escaped the unit cube at dim %d", p, d)
			}
		}
	}
}

func Test_geom02(tst *testing.T) {

	chk.PrintTitle("Test geom02: general (sheared) hex volume via sum-of-tets")

	// a unit cube sheared along x by z: still volume 1 (shear preserves volume)
	sheared := unitCube()
	for i := range sheared {
		sheared[i][0] += 0.5 * sheared[i][2]
	}
	if v := HexVolume(sheared); v < 0.999 || v > 1.001 {
		tst.Errorf("sheared unit-volume hex should keep volume 1, got %g", v)
	}
}

func Test_geom03(tst *testing.T) {

	chk.PrintTitle("Test geom03: tet volume and uniform sampling stay inside")

	verts := [4][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if v := TetVolume(verts); v < 1.0/6.0-1e-12 || v > 1.0/6.0+1e-12 {
		tst.Errorf("unit right tet volume should be 1/6, got %g", v)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		p := SampleTet(verts, rng.Float64(), rng.Float64(), rng.Float64())
		if !PointInTet(verts, p) {
			tst.Errorf("sampled point %v should lie inside the tet", p)
		}
	}
}

func Test_geom04(tst *testing.T) {

	chk.PrintTitle("Test geom04: point-in-tet rejects points clearly outside")

	verts := [4][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	outside := [3]float64{2, 2, 2}
	if PointInTet(verts, outside) {
		tst.Errorf("point %v should be outside the tet", outside)
	}
}
