// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"math"
	"testing"

	"github.com/cpmech/mcsample/meshview"

	"github.com/cpmech/gosl/chk"
)

// fakeMesh is a minimal meshview.MeshView for PDFBuilder tests; geometry
// never matters here, only volumes and tags.
type fakeMesh struct {
	vol       []float64
	src       [][]float64
	bias      [][]float64
	cellFracs [][]meshview.CellFrac
}

func (m *fakeMesh) NumElements() int                    { return len(m.vol) }
func (m *fakeMesh) ElementKind(i int) meshview.ElementKind { return meshview.Hex }
func (m *fakeMesh) Vertices(i int) [][3]float64         { return nil }
func (m *fakeMesh) Volume(i int) float64                { return m.vol[i] }
func (m *fakeMesh) Src(i int) []float64                 { return m.src[i] }
func (m *fakeMesh) Bias(i int) []float64 {
	if m.bias == nil {
		return nil
	}
	return m.bias[i]
}
func (m *fakeMesh) CellFracs(i int) []meshview.CellFrac {
	if m.cellFracs == nil {
		return []meshview.CellFrac{{CellID: 0, VolFrac: 1.0}}
	}
	return m.cellFracs[i]
}

func scenario3Mesh() *fakeMesh {
	return &fakeMesh{
		vol: []float64{3.0, 0.5},
		src: [][]float64{{2.0, 1.0}, {9.0, 3.0}},
	}
}

func Test_pdf01_uniform(tst *testing.T) {

	chk.PrintTitle("Test pdf01: uniform mode matches spec.md scenario 3")

	tbl, err := Build(scenario3Mesh(), []float64{0, 0.5, 1.0}, Uniform)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}

	wantWeight := map[[2]int]float64{{0, 0}: 0.7, {0, 1}: 0.7, {1, 0}: 2.8, {1, 1}: 2.8}
	for i, b := range tbl.Bins {
		w := wantWeight[[2]int{b.Elem, b.Group}]
		if math.Abs(tbl.Weight[i]-w) > 1e-9 {
			tst.Errorf("bin elem=%d group=%d: weight=%g, want %g", b.Elem, b.Group, tbl.Weight[i], w)
		}
	}

	wantPBias := map[[2]int]float64{{0, 0}: 4.0 / 7, {0, 1}: 2.0 / 7, {1, 0}: 3.0 / 28, {1, 1}: 1.0 / 28}
	for i, b := range tbl.Bins {
		p := wantPBias[[2]int{b.Elem, b.Group}]
		if math.Abs(tbl.PBias[i]-p) > 1e-9 {
			tst.Errorf("bin elem=%d group=%d: p_bias=%g, want %g", b.Elem, b.Group, tbl.PBias[i], p)
		}
	}
}

func Test_pdf02_userbias(tst *testing.T) {

	chk.PrintTitle("Test pdf02: user-bias mode matches spec.md scenario 4")

	m := scenario3Mesh()
	m.bias = [][]float64{{1.0, 2.0}, {3.0, 3.0}}

	tbl, err := Build(m, []float64{0, 0.5, 1.0}, UserBias)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}

	wantWeight := map[[2]int]float64{{0, 0}: 1.6, {0, 1}: 0.4, {1, 0}: 2.4, {1, 1}: 0.8}
	for i, b := range tbl.Bins {
		w := wantWeight[[2]int{b.Elem, b.Group}]
		if math.Abs(tbl.Weight[i]-w) > 1e-9 {
			tst.Errorf("bin elem=%d group=%d: weight=%g, want %g", b.Elem, b.Group, tbl.Weight[i], w)
		}
	}

	wantPBias := map[[2]int]float64{{0, 0}: 0.25, {0, 1}: 0.5, {1, 0}: 0.125, {1, 1}: 0.125}
	for i, b := range tbl.Bins {
		p := wantPBias[[2]int{b.Elem, b.Group}]
		if math.Abs(tbl.PBias[i]-p) > 1e-9 {
			tst.Errorf("bin elem=%d group=%d: p_bias=%g, want %g", b.Elem, b.Group, tbl.PBias[i], p)
		}
	}
}

func Test_pdf03_analog(tst *testing.T) {

	chk.PrintTitle("Test pdf03: analog mode has unity weights and p_bias==p_true")

	tbl, err := Build(scenario3Mesh(), []float64{0, 0.5, 1.0}, Analog)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}
	for i := range tbl.Weight {
		if tbl.Weight[i] != 1.0 {
			tst.Errorf("bin %d: analog weight must be exactly 1, got %g", i, tbl.Weight[i])
		}
		if tbl.PBias[i] != tbl.PTrue[i] {
			tst.Errorf("bin %d: analog p_bias must equal p_true exactly", i)
		}
	}
}

func Test_pdf04_subvoxel_analog(tst *testing.T) {

	chk.PrintTitle("Test pdf04: sub-voxel analog matches spec.md scenario 5")

	m := &fakeMesh{
		vol: []float64{1.0},
		src: [][]float64{{0, 0.2, 0.8}},
		cellFracs: [][]meshview.CellFrac{
			{{CellID: 11, VolFrac: 0.3}, {CellID: 12, VolFrac: 0.3}, {CellID: 13, VolFrac: 0.4}},
		},
	}
	tbl, err := Build(m, []float64{0, 1}, AnalogSubVoxel)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}
	for i, b := range tbl.Bins {
		if tbl.Weight[i] != 1.0 {
			tst.Errorf("bin %d: analog sub-voxel weight must be 1, got %g", i, tbl.Weight[i])
		}
		if b.CellID == 11 && tbl.PTrue[i] != 0 {
			tst.Errorf("cell 11 has zero source, p_true must be 0, got %g", tbl.PTrue[i])
		}
	}
	var p12, p13 float64
	for i, b := range tbl.Bins {
		switch b.CellID {
		case 12:
			p12 = tbl.PTrue[i]
		case 13:
			p13 = tbl.PTrue[i]
		}
	}
	if math.Abs(p12/(0.2*0.3)-p13/(0.8*0.4)) > 1e-9 {
		tst.Errorf("p_true ratio between cells 12,13 should match 0.2*0.3 : 0.8*0.4")
	}
}

func Test_pdf05_subvoxel_uniform(tst *testing.T) {

	chk.PrintTitle("Test pdf05: sub-voxel uniform matches spec.md scenario 6")

	m := &fakeMesh{
		vol: []float64{1.0},
		src: [][]float64{{0, 0.2, 0.8}},
		cellFracs: [][]meshview.CellFrac{
			{{CellID: 11, VolFrac: 0.3}, {CellID: 12, VolFrac: 0.3}, {CellID: 13, VolFrac: 0.4}},
		},
	}
	tbl, err := Build(m, []float64{0, 1}, UniformSubVoxel)
	if err != nil {
		tst.Errorf("Build failed: %v", err)
		return
	}
	for i, b := range tbl.Bins {
		switch b.CellID {
		case 11:
			if tbl.PBias[i] != 0 {
				tst.Errorf("cell 11 must never be sampled, p_bias=%g", tbl.PBias[i])
			}
		case 12:
			if math.Abs(tbl.PBias[i]-0.3/0.7) > 1e-9 {
				tst.Errorf("cell 12 p_bias=%g, want %g", tbl.PBias[i], 0.3/0.7)
			}
			if math.Abs(tbl.Weight[i]-0.3684) > 1e-3 {
				tst.Errorf("cell 12 weight=%g, want ~0.3684", tbl.Weight[i])
			}
		case 13:
			if math.Abs(tbl.PBias[i]-0.4/0.7) > 1e-9 {
				tst.Errorf("cell 13 p_bias=%g, want %g", tbl.PBias[i], 0.4/0.7)
			}
			if math.Abs(tbl.Weight[i]-1.4737) > 1e-3 {
				tst.Errorf("cell 13 weight=%g, want ~1.4737", tbl.Weight[i])
			}
		}
	}
}

func Test_pdf06_config_errors(tst *testing.T) {

	chk.PrintTitle("Test pdf06: configuration errors")

	// mode 2 without bias tag
	if _, err := Build(scenario3Mesh(), []float64{0, 0.5, 1.0}, UserBias); err == nil {
		tst.Errorf("expected error: mode 2 requires a bias tag")
	}

	// all-zero source
	zero := &fakeMesh{vol: []float64{1.0}, src: [][]float64{{0.0}}}
	if _, err := Build(zero, []float64{0, 1}, Analog); err == nil {
		tst.Errorf("expected error: all-zero source")
	}

	// bias zero where source positive
	m := scenario3Mesh()
	m.bias = [][]float64{{0.0, 2.0}, {3.0, 3.0}}
	if _, err := Build(m, []float64{0, 0.5, 1.0}, UserBias); err == nil {
		tst.Errorf("expected error: bias zero where source positive")
	}
}
