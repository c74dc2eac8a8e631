// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshview defines the read-only mesh abstraction the sampler
// consumes: element geometry, volumes, and the per-element tag arrays
// (source density, bias density, sub-voxel cell fractions) spec.md Sec.3
// requires. The concrete mesh library backing it is a construction-time
// dependency, not a runtime coupling -- the sampler only ever imports this
// package, never a specific mesh format.
package meshview

// ElementKind distinguishes the two convex-cell geometries this sampler
// understands.
type ElementKind int

const (
	// Hex is a right or general 8-vertex hexahedron.
	Hex ElementKind = iota
	// Tet is a 4-vertex tetrahedron.
	Tet
)

func (k ElementKind) String() string {
	switch k {
	case Hex:
		return "hex"
	case Tet:
		return "tet"
	default:
		return "unknown"
	}
}

// CellFrac is one sub-voxel partition entry for a mesh element: a physical
// region identified by CellID, carrying VolFrac of the element's volume.
// RelError is informational only (spec.md Sec.3) and is never consumed by
// the sampler's own sampling decisions.
type CellFrac struct {
	CellID   int
	VolFrac  float64
	RelError float64
}

// MeshView is the read-only view over a mesh that PDFBuilder and Sampler
// consume. Implementations must keep element ordering stable between
// construction and any later calls: spec.md Sec.4.3.
type MeshView interface {
	// NumElements returns the number of mesh elements N_e.
	NumElements() int

	// ElementKind reports whether element i is a hex or a tet.
	ElementKind(i int) ElementKind

	// Vertices returns element i's vertex coordinates, in the canonical
	// order geom.SampleHex / geom.SampleTet expect (8 for Hex, 4 for Tet).
	Vertices(i int) [][3]float64

	// Volume returns element i's volume V_i > 0.
	Volume(i int) float64

	// Src returns element i's source-density tag array: shape [N_g] when
	// sub-voxels are absent, or [S_max*N_g] laid out sub-major when present.
	Src(i int) []float64

	// Bias returns element i's bias-density tag array: shape [N_g]
	// (group-resolved) or [1] (spatial-only, broadcast to every group).
	// Returns nil when no bias tag is present on this mesh.
	Bias(i int) []float64

	// CellFracs returns element i's sub-voxel partition. When sub-voxels
	// are absent, implementations return a single implicit entry
	// {CellID: 0, VolFrac: 1.0}.
	CellFracs(i int) []CellFrac
}
