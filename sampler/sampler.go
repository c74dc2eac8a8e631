// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sampler implements ParticleBirth: the public entry point that
// configures a mesh-based source sampler (spec.md Sec.4.5) and draws
// weighted particle births from it in O(1) per birth.
package sampler

import (
	"github.com/cpmech/mcsample/internal/geom"
	"github.com/cpmech/mcsample/meshview"
	"github.com/cpmech/mcsample/pdf"

	"github.com/cpmech/gosl/chk"
)

// NoCell is the sentinel Particle.Cell carries in modes that never consume
// sub-voxel tags (spec.md Sec.4.5: "the cell id field is only meaningful
// under Modes 3 and 4").
const NoCell = -1

// Particle is one sampled birth: position, energy, statistical weight, and
// -- only under AnalogSubVoxel/UniformSubVoxel -- the sub-voxel cell id.
type Particle struct {
	X, Y, Z float64
	E       float64
	W       float64
	Cell    int
}

// Sampler holds the folded PDF/alias tables and the mesh geometry needed to
// turn a bin index into a physical birth. Once built, Sampler is immutable
// and every method is safe to call concurrently from any number of
// goroutines (spec.md Sec.5): ParticleBirth touches no shared mutable state.
type Sampler struct {
	mv      meshview.MeshView
	eBounds []float64
	mode    pdf.Mode
	tbl     *pdf.Tables
}

// New validates tagged mesh mv against mode and e_bounds, folds its tags
// into the PDF/alias tables, and returns a ready-to-sample Sampler.
func New(mv meshview.MeshView, eBounds []float64, mode pdf.Mode) (*Sampler, error) {
	if !mode.Valid() {
		return nil, chk.Err("sampler: mode %d is not one of the five recognized modes\n", int(mode))
	}
	if len(eBounds) < 2 {
		return nil, chk.Err("sampler: e_bounds must list at least 2 boundaries (1 group), got %d\n", len(eBounds))
	}
	for g := 1; g < len(eBounds); g++ {
		if eBounds[g] <= eBounds[g-1] {
			return nil, chk.Err("sampler: e_bounds must be strictly increasing: e_bounds[%d]=%g <= e_bounds[%d]=%g\n",
				g, eBounds[g], g-1, eBounds[g-1])
		}
	}

	tbl, err := pdf.Build(mv, eBounds, mode)
	if err != nil {
		return nil, err
	}

	return &Sampler{mv: mv, eBounds: eBounds, mode: mode, tbl: tbl}, nil
}

// ParticleBirth draws one weighted particle birth given six independent
// uniform variates in [0,1): r[0],r[1] select the joint bin via the alias
// table, r[2] samples energy uniformly within the bin's group, and
// r[3],r[4],r[5] sample position uniformly within the bin's element (and,
// under sub-voxel modes, implicitly within its sub-voxel region -- spec.md
// Sec.4.2 treats sub-voxel geometry as coincident with the parent element's,
// since sub-voxel shape is not separately available to the sampler).
func (o *Sampler) ParticleBirth(r [6]float64) Particle {
	bi := o.tbl.AliasBias.Sample(r[0], r[1])
	bin := o.tbl.Bins[bi]

	eLo, eHi := o.eBounds[bin.Group], o.eBounds[bin.Group+1]
	e := eLo + r[2]*(eHi-eLo)

	verts := o.mv.Vertices(bin.Elem)
	var x, y, z float64
	switch o.mv.ElementKind(bin.Elem) {
	case meshview.Hex:
		var vs [8][3]float64
		copy(vs[:], verts)
		p := geom.SampleHex(vs, r[3], r[4], r[5])
		x, y, z = p[0], p[1], p[2]
	case meshview.Tet:
		var vs [4][3]float64
		copy(vs[:], verts)
		p := geom.SampleTet(vs, r[3], r[4], r[5])
		x, y, z = p[0], p[1], p[2]
	default:
		chk.Panic("sampler: element %d has unrecognized kind %v\n", bin.Elem, o.mv.ElementKind(bin.Elem))
	}

	cell := NoCell
	if o.mode.NeedsSubVoxels() {
		cell = bin.CellID
	}

	return Particle{X: x, Y: y, Z: z, E: e, W: o.tbl.Weight[bi], Cell: cell}
}

// Mode returns the biasing mode this sampler was configured with.
func (o *Sampler) Mode() pdf.Mode { return o.mode }

// NumBins returns the number of joint (element, sub-voxel, group) bins the
// sampler folded the mesh into.
func (o *Sampler) NumBins() int { return len(o.tbl.Bins) }
