// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the geometric primitives the source sampler needs:
// point-in-tetrahedron testing, and uniform sampling of a point inside a
// hexahedron or a tetrahedron given normalized (natural) coordinates.
package geom

import (
	"math"

	"github.com/cpmech/mcsample/internal/shpfn"

	"github.com/cpmech/gosl/la"
)

// axisAlignedTol is the relative tolerance used to detect whether a hex is a
// rectangular box, in which case the cheap corner+offset sampler applies
// instead of general trilinear interpolation.
const axisAlignedTol = 1e-9

// isAxisAlignedHex reports whether verts describes a right (rectangular)
// hexahedron: the edges from vertex 0 to vertices 1,3,4 are mutually
// orthogonal and every other vertex sits at the matching corner, in the
// vertex ordering of shpfn.Hex8NatCoords. The edges need not be parallel to
// the coordinate axes.
func isAxisAlignedHex(verts [8][3]float64) (dx, dy, dz [3]float64, ok bool) {
	dx = sub(verts[1], verts[0])
	dy = sub(verts[3], verts[0])
	dz = sub(verts[4], verts[0])

	// the three edge vectors from vertex 0 must be mutually orthogonal and
	// every other vertex must equal vertex0 plus the appropriate combination
	expect := func(vid int, a, b, c float64) bool {
		want := add3(verts[0], scale(dx, a), scale(dy, b), scale(dz, c))
		return near(verts[vid], want, axisAlignedTol*scaleOf(dx, dy, dz))
	}
	if !expect(2, 1, 1, 0) || !expect(5, 1, 0, 1) || !expect(6, 1, 1, 1) || !expect(7, 0, 1, 1) {
		return dx, dy, dz, false
	}
	if math.Abs(dot(dx, dy)) > axisAlignedTol*scaleOf(dx, dy, dz) ||
		math.Abs(dot(dx, dz)) > axisAlignedTol*scaleOf(dx, dy, dz) ||
		math.Abs(dot(dy, dz)) > axisAlignedTol*scaleOf(dx, dy, dz) {
		return dx, dy, dz, false
	}
	return dx, dy, dz, true
}

// SampleHex returns a point sampled inside the hexahedron with vertices
// verts (ordered per shpfn.Hex8NatCoords), given three uniforms u, v, w in
// [0,1). Rectangular hexes use the closed-form corner+offset formula of
// spec.md Sec.4.2; general hexes fall back to trilinear interpolation via
// shpfn.Hex8, as PyNE's own sampler special-cases the common
// structured-grid case. The result is uniform in space for rectangular hexes
// and parallelepipeds; for other hexes the trilinear map has a varying
// Jacobian and the sampled density is not uniform.
func SampleHex(verts [8][3]float64, u, v, w float64) [3]float64 {
	if dx, dy, dz, ok := isAxisAlignedHex(verts); ok {
		return add3(verts[0], scale(dx, u), scale(dy, v), scale(dz, w))
	}
	r, s, t := 2*u-1, 2*v-1, 2*w-1
	return shpfn.InterpHex8(verts, r, s, t)
}

// SampleTet returns a point sampled uniformly inside the tetrahedron with
// vertices verts, given three uniforms u1, u2, u3 in [0,1), using the
// Shao & Badler fold-back transform that preserves uniformity over the
// simplex.
func SampleTet(verts [4][3]float64, u1, u2, u3 float64) [3]float64 {
	if u1+u2 > 1 {
		u1, u2 = 1-u1, 1-u2
	}
	if u2+u3 > 1 {
		t := u3
		u3 = 1 - u1 - u2
		u2 = 1 - t
	} else if u1+u2+u3 > 1 {
		t := u3
		u3 = u1 + u2 + u3 - 1
		u1 = 1 - u2 - t
	}
	return shpfn.InterpTet4(verts, u1, u2, u3)
}

// PointInTet reports whether p lies inside (or on the boundary of) the
// tetrahedron with vertices verts, by comparing the sign of the tet's
// signed volume against the signed volumes of the four sub-tets obtained
// by replacing one vertex at a time with p: p is inside iff all five
// determinants share sign (zero counts as boundary, i.e. inside).
//
// This primitive is exported for testability (the tests use it to check
// that SampleTet's points lie inside the tet) but ParticleBirth never
// calls it: forward sampling always proceeds element-first then
// position-within-element, never the reverse lookup this enables.
func PointInTet(verts [4][3]float64, p [3]float64) bool {
	sign := func(a, b, c, d [3]float64) float64 {
		m := la.MatAlloc(3, 3)
		for i, v := range [][3]float64{b, c, d} {
			for d2 := 0; d2 < 3; d2++ {
				m[d2][i] = v[d2] - a[d2]
			}
		}
		return det3(m)
	}
	d0 := sign(verts[0], verts[1], verts[2], verts[3])
	d1 := sign(p, verts[1], verts[2], verts[3])
	d2 := sign(verts[0], p, verts[2], verts[3])
	d3 := sign(verts[0], verts[1], p, verts[3])
	d4 := sign(verts[0], verts[1], verts[2], p)
	return sameSignOrZero(d0, d1) && sameSignOrZero(d0, d2) && sameSignOrZero(d0, d3) && sameSignOrZero(d0, d4)
}

// HexVolume returns the volume of the hexahedron with vertices verts: the
// product of side lengths for the axis-aligned fast path, or a sum-of-tets
// decomposition (6 tets) for the general case.
func HexVolume(verts [8][3]float64) float64 {
	if dx, dy, dz, ok := isAxisAlignedHex(verts); ok {
		return norm(dx) * norm(dy) * norm(dz)
	}
	// decompose into 6 tets sharing the main diagonal 0-6, covering the hex
	// exactly (standard hex-to-6-tets split)
	tetIdx := [6][3]int{
		{1, 2, 6}, {2, 3, 6}, {3, 7, 6},
		{7, 4, 6}, {4, 5, 6}, {5, 1, 6},
	}
	vol := 0.0
	for _, idx := range tetIdx {
		vol += TetVolume([4][3]float64{verts[0], verts[idx[0]], verts[idx[1]], verts[idx[2]]})
	}
	return vol
}

// TetVolume returns the volume of the tetrahedron with vertices verts.
func TetVolume(verts [4][3]float64) float64 {
	det, err := shpfn.Tet4JacobianDet(verts)
	if err != nil {
		return 0
	}
	return math.Abs(det) / 6.0
}

// --- small vector helpers -------------------------------------------------

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func add3(a [3]float64, bs ...[3]float64) [3]float64 {
	r := a
	for _, b := range bs {
		r[0] += b[0]
		r[1] += b[1]
		r[2] += b[2]
	}
	return r
}

func scale(a [3]float64, s float64) [3]float64 { return [3]float64{a[0] * s, a[1] * s, a[2] * s} }

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func norm(a [3]float64) float64 { return math.Sqrt(dot(a, a)) }

func scaleOf(dx, dy, dz [3]float64) float64 {
	m := norm(dx)
	if n := norm(dy); n > m {
		m = n
	}
	if n := norm(dz); n > m {
		m = n
	}
	if m == 0 {
		return 1
	}
	return m * m
}

func near(a, b [3]float64, tol float64) bool {
	d := sub(a, b)
	return dot(d, d) <= tol*tol
}

func det3(m [][]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

func sameSignOrZero(a, b float64) bool {
	if a == 0 || b == 0 {
		return true
	}
	return (a > 0) == (b > 0)
}
