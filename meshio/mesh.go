// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meshio reads the JSON mesh-file convention this module uses,
// following the conventions of cpmech/gofem's inp.ReadMsh: a flat vertex list and a flat
// cell list, each cell carrying its own source/bias/sub-voxel tag arrays
// rather than gofem's separate per-problem "Extra" data files. It is one
// concrete meshview.MeshView implementation among possibly many -- the
// sampler itself never imports this package.
package meshio

import (
	"bytes"
	"encoding/json"

	"github.com/cpmech/mcsample/internal/geom"
	"github.com/cpmech/mcsample/meshview"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds one mesh vertex: an id and its coordinates.
type Vert struct {
	Id int       `json:"id"`
	C  []float64 `json:"c"` // size 3
}

// CellFracEntry is the JSON form of one meshview.CellFrac.
type CellFracEntry struct {
	Cell     int     `json:"cell"`
	VolFrac  float64 `json:"volfrac"`
	RelError float64 `json:"relerror"`
}

// Cell holds one mesh element: its geometry ("hex8" or "tet4"), vertex
// indices, and the source/bias/sub-voxel tags PDFBuilder consumes.
type Cell struct {
	Id        int             `json:"id"`
	Type      string          `json:"type"` // "hex8" or "tet4"
	Verts     []int           `json:"verts"`
	Src       []float64       `json:"src"`
	Bias      []float64       `json:"bias,omitempty"`
	CellFracs []CellFracEntry `json:"cellfracs,omitempty"`
}

// Mesh is a flat, immutable, JSON-backed mesh implementing meshview.MeshView.
type Mesh struct {
	Verts []Vert `json:"verts"`
	Cells []Cell `json:"cells"`

	volumes []float64             // cached per-cell volume
	verts3d [][][3]float64        // cached per-cell vertex coordinates
	kind    []meshview.ElementKind // cached per-cell kind
}

// Write marshals m to path as indented JSON, the inverse of Read.
func Write(path string, m *Mesh) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return chk.Err("meshio: cannot marshal mesh: %v\n", err)
	}
	io.WriteFile(path, bytes.NewBuffer(b))
	return nil
}

// Read loads and validates a mesh from a JSON file at path.
func Read(path string) (*Mesh, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("meshio: cannot read file %q: %v\n", path, err)
	}
	var m Mesh
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, chk.Err("meshio: cannot parse JSON mesh %q: %v\n", path, err)
	}
	if err := m.init(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Parse decodes and validates a mesh from raw JSON bytes.
func Parse(data []byte) (*Mesh, error) {
	var m Mesh
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, chk.Err("meshio: cannot parse JSON mesh: %v\n", err)
	}
	if err := m.init(); err != nil {
		return nil, err
	}
	return &m, nil
}

// init validates cell/vertex consistency and precomputes per-cell geometry.
func (o *Mesh) init() error {
	if len(o.Verts) == 0 {
		return chk.Err("meshio: mesh must have at least one vertex\n")
	}
	if len(o.Cells) == 0 {
		return chk.Err("meshio: mesh must have at least one cell\n")
	}

	coords := make([][3]float64, len(o.Verts))
	for i, v := range o.Verts {
		if v.Id != i {
			return chk.Err("meshio: vertex ids must coincide with their order in the \"verts\" list: %d != %d\n", v.Id, i)
		}
		if len(v.C) != 3 {
			return chk.Err("meshio: vertex %d must have 3 coordinates, got %d\n", i, len(v.C))
		}
		coords[i] = [3]float64{v.C[0], v.C[1], v.C[2]}
	}

	o.volumes = make([]float64, len(o.Cells))
	o.verts3d = make([][][3]float64, len(o.Cells))
	o.kind = make([]meshview.ElementKind, len(o.Cells))

	for i, c := range o.Cells {
		if c.Id != i {
			return chk.Err("meshio: cell ids must coincide with their order in the \"cells\" list: %d != %d\n", c.Id, i)
		}
		switch c.Type {
		case "hex8":
			if len(c.Verts) != 8 {
				return chk.Err("meshio: cell %d: hex8 needs 8 vertices, got %d\n", i, len(c.Verts))
			}
			o.kind[i] = meshview.Hex
			var vs [8][3]float64
			vv := make([][3]float64, 8)
			for j, vid := range c.Verts {
				if vid < 0 || vid >= len(coords) {
					return chk.Err("meshio: cell %d references out-of-range vertex %d\n", i, vid)
				}
				vs[j] = coords[vid]
				vv[j] = coords[vid]
			}
			o.verts3d[i] = vv
			o.volumes[i] = geom.HexVolume(vs)
		case "tet4":
			if len(c.Verts) != 4 {
				return chk.Err("meshio: cell %d: tet4 needs 4 vertices, got %d\n", i, len(c.Verts))
			}
			o.kind[i] = meshview.Tet
			var vs [4][3]float64
			vv := make([][3]float64, 4)
			for j, vid := range c.Verts {
				if vid < 0 || vid >= len(coords) {
					return chk.Err("meshio: cell %d references out-of-range vertex %d\n", i, vid)
				}
				vs[j] = coords[vid]
				vv[j] = coords[vid]
			}
			o.verts3d[i] = vv
			o.volumes[i] = geom.TetVolume(vs)
		default:
			return chk.Err("meshio: cell %d has unknown type %q (want \"hex8\" or \"tet4\")\n", i, c.Type)
		}
		if o.volumes[i] <= 0 {
			return chk.Err("meshio: cell %d has non-positive volume %g\n", i, o.volumes[i])
		}

		sumFrac := 0.0
		for _, cf := range c.CellFracs {
			if cf.VolFrac < 0 || cf.VolFrac > 1 {
				return chk.Err("meshio: cell %d: sub-voxel vol_frac %g out of [0,1]\n", i, cf.VolFrac)
			}
			sumFrac += cf.VolFrac
		}
		if sumFrac > 1+1e-9 {
			return chk.Err("meshio: cell %d: sub-voxel vol_fracs sum to %g, must be <= 1\n", i, sumFrac)
		}
	}
	return nil
}

// NumElements implements meshview.MeshView.
func (o *Mesh) NumElements() int { return len(o.Cells) }

// ElementKind implements meshview.MeshView.
func (o *Mesh) ElementKind(i int) meshview.ElementKind { return o.kind[i] }

// Vertices implements meshview.MeshView.
func (o *Mesh) Vertices(i int) [][3]float64 { return o.verts3d[i] }

// Volume implements meshview.MeshView.
func (o *Mesh) Volume(i int) float64 { return o.volumes[i] }

// Src implements meshview.MeshView.
func (o *Mesh) Src(i int) []float64 { return o.Cells[i].Src }

// Bias implements meshview.MeshView.
func (o *Mesh) Bias(i int) []float64 {
	if len(o.Cells[i].Bias) == 0 {
		return nil
	}
	return o.Cells[i].Bias
}

// CellFracs implements meshview.MeshView.
func (o *Mesh) CellFracs(i int) []meshview.CellFrac {
	entries := o.Cells[i].CellFracs
	if len(entries) == 0 {
		return []meshview.CellFrac{{CellID: 0, VolFrac: 1.0}}
	}
	out := make([]meshview.CellFrac, len(entries))
	for j, e := range entries {
		out[j] = meshview.CellFrac{CellID: e.Cell, VolFrac: e.VolFrac, RelError: e.RelError}
	}
	return out
}
