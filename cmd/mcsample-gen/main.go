// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mcsample-gen synthesizes a structured hexahedral mesh with an analytic
// source profile, for exercising the sampler without a hand-written mesh
// file. Geometry comes from gemlab's structured-region generator, the same
// one the teacher's example problems use to build their FE meshes; the
// source tag is evaluated from a gosl/fun.Func at each element's centroid,
// the same callback interface the teacher's elements use for distributed
// loads and gravity. The JSON gemlab writes is decoded directly into a
// meshio.Mesh -- this tool has no use for an isoparametric FE mesh's shape
// functions, Jacobians, or face/seam tag bookkeeping, only for vertex
// coordinates and cell connectivity.
package main

import (
	"encoding/json"

	"github.com/cpmech/mcsample/meshio"

	"github.com/cpmech/gemlab"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// radialHump is a compact source profile peaking at (cx,cy,cz) and falling
// off as 1/(1+r^2); it implements fun.Func so it can be wired through the
// same callback interface gravity/load functions use.
type radialHump struct {
	Cx, Cy, Cz float64
}

func (o *radialHump) F(t float64, x []float64) float64 {
	dx, dy, dz := x[0]-o.Cx, x[1]-o.Cy, 0.0
	if len(x) > 2 {
		dz = x[2] - o.Cz
	}
	r2 := dx*dx + dy*dy + dz*dz
	return 1.0 / (1.0 + r2)
}

func (o *radialHump) G(t float64, x []float64) float64 { return 0 }
func (o *radialHump) H(t float64, x []float64) float64 { return 0 }

// gemlabVert and gemlabCell decode only the fields gemlab's ".msh" output
// carries that this tool actually needs: coordinates and connectivity. The
// file also carries tag/partition/face-tag fields meant for an FE solver's
// domain assembly, which are silently ignored here.
type gemlabVert struct {
	Id int       `json:"id"`
	C  []float64 `json:"c"`
}

type gemlabCell struct {
	Id    int    `json:"id"`
	Type  string `json:"type"`
	Verts []int  `json:"verts"`
}

type gemlabMesh struct {
	Verts []gemlabVert `json:"verts"`
	Cells []gemlabCell `json:"cells"`
}

func main() {

	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	outfn, _ := io.ArgToFilename(0, "data/mcsample-gen", ".json", false)
	nx := io.ArgToInt(1, 4)
	ny := io.ArgToInt(2, 4)
	nz := io.ArgToInt(3, 4)
	lx := io.ArgToFloat(4, 1.0)
	ly := io.ArgToFloat(5, 1.0)
	lz := io.ArgToFloat(6, 1.0)
	ng := io.ArgToInt(7, 1)

	io.Pf("\n%s\n", io.ArgsTable(
		"output filename", "outfn", outfn,
		"elements along x", "nx", nx,
		"elements along y", "ny", ny,
		"elements along z", "nz", nz,
		"length along x", "lx", lx,
		"length along y", "ly", ly,
		"length along z", "lz", lz,
		"energy groups", "ng", ng,
	))

	// generate structured hex geometry via gemlab
	var gd gemlab.InData
	gd.Nparts = 1
	gd.Sregs = &gemlab.Sregs{
		Tags: []int{-1},
		Nxs:  []int{nx},
		Nys:  []int{ny},
		Nzs:  []int{nz},
		Points: [][]float64{
			{0, 0, 0}, {lx, 0, 0}, {lx, ly, 0}, {0, ly, 0},
			{0, 0, lz}, {lx, 0, lz}, {lx, ly, lz}, {0, ly, lz},
		},
		Conn:  [][]int{{0, 1, 2, 3, 4, 5, 6, 7}},
		Btags: [][]int{{-10, -11, -20, -21, -30, -31}},
	}
	fnkey := "mcsample-gen-tmp"
	if err := gemlab.Generate(fnkey, &gd); err != nil {
		io.PfRed("gemlab generation failed: %v\n", err)
		return
	}

	// read the generated mesh back, without routing through any FE mesh package
	raw, err := io.ReadFile("data/" + fnkey + ".msh")
	if err != nil {
		io.PfRed("cannot read generated mesh: %v\n", err)
		return
	}
	var gm gemlabMesh
	if err := json.Unmarshal(raw, &gm); err != nil {
		io.PfRed("cannot parse generated mesh: %v\n", err)
		return
	}

	var profile fun.Func = &radialHump{Cx: lx / 2, Cy: ly / 2, Cz: lz / 2}

	verts := make([]meshio.Vert, len(gm.Verts))
	for i, v := range gm.Verts {
		verts[i] = meshio.Vert{Id: v.Id, C: append([]float64{}, v.C...)}
	}

	cells := make([]meshio.Cell, len(gm.Cells))
	for i, c := range gm.Cells {
		cx, cy, cz := centroid(gm.Verts, c.Verts)
		density := profile.F(0, []float64{cx, cy, cz})
		srcTag := make([]float64, ng)
		for g := range srcTag {
			srcTag[g] = density
		}
		cells[i] = meshio.Cell{
			Id:    c.Id,
			Type:  c.Type,
			Verts: append([]int{}, c.Verts...),
			Src:   srcTag,
		}
	}

	mesh := &meshio.Mesh{Verts: verts, Cells: cells}
	if err := meshio.Write(outfn, mesh); err != nil {
		io.PfRed("cannot write mesh: %v\n", err)
		return
	}
	io.Pfgreen("generated mesh with %d elements written to %s\n", len(cells), outfn)
}

func centroid(verts []gemlabVert, ids []int) (x, y, z float64) {
	n := float64(len(ids))
	for _, vid := range ids {
		c := verts[vid].C
		x += c[0] / n
		y += c[1] / n
		if len(c) > 2 {
			z += c[2] / n
		}
	}
	return
}
