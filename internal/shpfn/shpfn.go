// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shpfn carries the isoparametric shape-function machinery that
// cpmech/gofem's shp package builds for finite-element interpolation,
// trimmed to the two cell types a source sampler ever interpolates over:
// the 8-node hexahedron ("hex8") and the 4-node tetrahedron ("tet4").
//
// Natural coordinates for hex8 follow the usual isoparametric convention
// r,s,t in [-1,1]; for tet4, barycentric coordinates in [0,1].
package shpfn

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// MinDet is the minimum determinant allowed for a cell's Jacobian;
// below it, the cell is considered degenerate. Mirrors shp.MINDET.
const MinDet = 1.0e-14

// Hex8NatCoords holds the natural coordinates (r,s,t) of the 8 hex8 vertices,
// in the same vertex order the mesh's Vertices(i) must supply them.
var Hex8NatCoords = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// Hex8 evaluates the 8 trilinear shape functions at natural coordinates
// (r,s,t), each in [-1,1].
func Hex8(r, s, t float64) (S [8]float64) {
	for i, rst := range Hex8NatCoords {
		S[i] = 0.125 * (1 + r*rst[0]) * (1 + s*rst[1]) * (1 + t*rst[2])
	}
	return
}

// Tet4 evaluates the 4 linear (barycentric) shape functions at natural
// coordinates (L1,L2,L3), each in [0,1] with L1+L2+L3 <= 1. L0 = 1-L1-L2-L3
// is the coordinate associated with vertex 0.
func Tet4(L1, L2, L3 float64) (S [4]float64) {
	S[0] = 1 - L1 - L2 - L3
	S[1] = L1
	S[2] = L2
	S[3] = L3
	return
}

// InterpHex8 maps natural coordinates (r,s,t) in [-1,1] to real coordinates
// via trilinear interpolation of the 8 vertex positions, the same
// x = sum_i verts[i] * S_i(r) operation shp.Shape.CalcAtIp performs for FE
// integration.
func InterpHex8(verts [8][3]float64, r, s, t float64) (x [3]float64) {
	S := Hex8(r, s, t)
	for i := 0; i < 8; i++ {
		for d := 0; d < 3; d++ {
			x[d] += verts[i][d] * S[i]
		}
	}
	return
}

// InterpTet4 maps barycentric coordinates (L1,L2,L3) to real coordinates via
// linear interpolation of the 4 vertex positions.
func InterpTet4(verts [4][3]float64, L1, L2, L3 float64) (x [3]float64) {
	S := Tet4(L1, L2, L3)
	for i := 0; i < 4; i++ {
		for d := 0; d < 3; d++ {
			x[d] += verts[i][d] * S[i]
		}
	}
	return
}

// Tet4JacobianDet returns the determinant of the constant Jacobian
// dx/dL for a tet4 cell, computed via la.MatInv's determinant byproduct --
// the same idiom shp.Shape.CalcAtIp uses to invert dxdR -- discarding the
// inverse itself. The determinant equals 6*volume for a non-degenerate tet.
func Tet4JacobianDet(verts [4][3]float64) (det float64, err error) {
	dxdL := la.MatAlloc(3, 3)
	for d := 0; d < 3; d++ {
		for i := 0; i < 3; i++ {
			dxdL[d][i] = verts[i+1][d] - verts[0][d]
		}
	}
	dLdx := la.MatAlloc(3, 3)
	det, err = la.MatInv(dLdx, dxdL, MinDet)
	if err != nil {
		return 0, chk.Err("shpfn: tet4 Jacobian is singular: %v\n", err)
	}
	return det, nil
}
