// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pdf folds a mesh's source, bias, and sub-voxel tags into the two
// flat probability mass functions (true and biased) over the joint
// (element, sub-voxel, group) space spec.md Sec.3-4.4 defines, plus the
// per-bin weight ratio and the alias tables built from them.
package pdf

import (
	"math"

	"github.com/cpmech/mcsample/internal/aliastable"
	"github.com/cpmech/mcsample/meshview"

	"github.com/cpmech/gosl/chk"
)

// BinKey identifies one joint bin (element, sub-voxel, energy group) and
// carries the sub-voxel's cell id alongside it, so Sampler never has to
// re-derive it from the mesh at birth time.
type BinKey struct {
	Elem   int
	Sub    int
	Group  int
	CellID int
}

// Tables holds the two normalized PDFs, the per-bin weight, and the alias
// table built over the biased PDF.
type Tables struct {
	Bins   []BinKey
	PTrue  []float64
	PBias  []float64
	Weight []float64

	// AliasBias is the operational table particle_birth samples from.
	AliasBias *aliastable.Table
	// AliasTrue is preserved per spec.md Sec.4.4 ("two alias tables are
	// constructed... one unused operationally but preserved conceptually")
	// for callers that want to importance-resample analog statistics
	// offline; ParticleBirth never reads it.
	AliasTrue *aliastable.Table
}

// Build folds mv's tags into Tables for the given energy bounds and mode.
// eBounds must already be validated strictly increasing by the caller
// (sampler.New owns that check, since it is a sampler-wide configuration
// concern, not specific to PDF construction).
func Build(mv meshview.MeshView, eBounds []float64, mode Mode) (*Tables, error) {
	ng := len(eBounds) - 1
	if ng < 1 {
		return nil, chk.Err("pdf: e_bounds must describe at least one energy group\n")
	}
	useSubVoxels := mode.NeedsSubVoxels()
	useBias := mode.NeedsBias()

	ne := mv.NumElements()
	if ne < 1 {
		return nil, chk.Err("pdf: mesh has no elements\n")
	}

	// first pass: determine S_max (mesh-wide) when sub-voxels are consumed
	smax := 1
	subsByElem := make([][]meshview.CellFrac, ne)
	for i := 0; i < ne; i++ {
		if useSubVoxels {
			subs := mv.CellFracs(i)
			if len(subs) == 0 {
				return nil, chk.Err("pdf: element %d has no sub-voxel entries\n", i)
			}
			subsByElem[i] = subs
			if len(subs) > smax {
				smax = len(subs)
			}
		} else {
			subsByElem[i] = []meshview.CellFrac{{CellID: 0, VolFrac: 1.0}}
		}
	}

	var bins []BinKey
	var pTrueRaw, phaseVol, biasDensity, subVol []float64

	for i := 0; i < ne; i++ {
		src := mv.Src(i)
		wantLen := ng
		if useSubVoxels {
			wantLen = smax * ng
		}
		if len(src) != wantLen {
			return nil, chk.Err("pdf: element %d: src tag has length %d, want %d\n", i, len(src), wantLen)
		}

		var bias []float64
		if useBias {
			bias = mv.Bias(i)
			if bias == nil {
				return nil, chk.Err("pdf: element %d: bias tag is required by mode %s but absent\n", i, mode)
			}
			if len(bias) != ng && len(bias) != 1 {
				return nil, chk.Err("pdf: element %d: bias tag has length %d, want %d or 1\n", i, len(bias), ng)
			}
		}

		vol := mv.Volume(i)
		if vol <= 0 {
			return nil, chk.Err("pdf: element %d has non-positive volume %g\n", i, vol)
		}

		subs := subsByElem[i]
		for s, sub := range subs {
			if sub.VolFrac < 0 || sub.VolFrac > 1 {
				return nil, chk.Err("pdf: element %d sub-voxel %d: vol_frac %g out of [0,1]\n", i, s, sub.VolFrac)
			}
			sv := sub.VolFrac * vol
			for g := 0; g < ng; g++ {
				idx := g
				if useSubVoxels {
					idx = s*ng + g
				}
				srcDensity := src[idx]
				if srcDensity < 0 {
					return nil, chk.Err("pdf: element %d sub-voxel %d group %d: negative source density %g\n", i, s, g, srcDensity)
				}
				dE := eBounds[g+1] - eBounds[g]
				pv := sv * dE
				pt := srcDensity * pv

				var bd float64
				if useBias {
					if len(bias) == ng {
						bd = bias[g]
					} else {
						bd = bias[0]
					}
					if bd < 0 {
						return nil, chk.Err("pdf: element %d group %d: negative bias density %g\n", i, g, bd)
					}
					if bd == 0 && pt > 0 {
						return nil, chk.Err("pdf: element %d sub-voxel %d group %d: bias is zero where source is positive\n", i, s, g)
					}
				}

				bins = append(bins, BinKey{Elem: i, Sub: s, Group: g, CellID: sub.CellID})
				pTrueRaw = append(pTrueRaw, pt)
				phaseVol = append(phaseVol, pv)
				subVol = append(subVol, sv)
				if useBias {
					biasDensity = append(biasDensity, bd)
				}
			}
		}
	}

	totalTrue := 0.0
	for _, v := range pTrueRaw {
		totalTrue += v
	}
	if totalTrue <= 0 {
		return nil, chk.Err("pdf: total source is zero across the entire mesh\n")
	}

	pTrue := make([]float64, len(pTrueRaw))
	for i, v := range pTrueRaw {
		pTrue[i] = v / totalTrue
	}

	pBiasRaw := make([]float64, len(pTrueRaw))
	switch mode {
	case Analog, AnalogSubVoxel:
		copy(pBiasRaw, pTrueRaw)
	case Uniform, UniformSubVoxel:
		// Uniform biases the (element, sub-voxel) spatial marginal in
		// direct proportion to its physical volume (vol_frac*V_i, summed
		// over its energy groups so a group-width choice never perturbs
		// the spatial distribution), while the conditional distribution
		// over energy groups within that (element, sub-voxel) is kept
		// exactly as in the true source -- this is what lets a birth's
		// weight depend only on which (element, sub-voxel) it landed in,
		// never on which group, matching spec.md's worked Scenario 3
		// (weight 0.7 for every x<3 group, 2.8 for every x>=3 group).
		groupSum := make(map[[2]int]float64)
		for i, b := range bins {
			groupSum[[2]int{b.Elem, b.Sub}] += pTrueRaw[i]
		}
		for i, b := range bins {
			gs := groupSum[[2]int{b.Elem, b.Sub}]
			if gs > 0 {
				pBiasRaw[i] = subVol[i] * pTrueRaw[i] / gs
			}
		}
	case UserBias:
		for i, bd := range biasDensity {
			pBiasRaw[i] = bd * phaseVol[i]
		}
	default:
		return nil, chk.Err("pdf: unknown mode %d\n", int(mode))
	}

	totalBias := 0.0
	for _, v := range pBiasRaw {
		totalBias += v
	}
	if totalBias <= 0 {
		return nil, chk.Err("pdf: biased distribution sums to zero for mode %s\n", mode)
	}

	pBias := make([]float64, len(pBiasRaw))
	for i, v := range pBiasRaw {
		pBias[i] = v / totalBias
	}

	weight := make([]float64, len(pTrue))
	for i := range weight {
		if pBias[i] > 0 {
			weight[i] = pTrue[i] / pBias[i]
			if math.IsNaN(weight[i]) || math.IsInf(weight[i], 0) {
				chk.Panic("pdf: internal invariant violated: bin %d has non-finite weight %g\n", i, weight[i])
			}
		} else if pTrue[i] != 0 {
			chk.Panic("pdf: internal invariant violated: bin %d has p_bias=0 but p_true=%g\n", i, pTrue[i])
		}
	}

	aliasBias, err := aliastable.New(pBias)
	if err != nil {
		return nil, chk.Err("pdf: failed to build biased alias table: %v\n", err)
	}
	aliasTrue, err := aliastable.New(pTrue)
	if err != nil {
		return nil, chk.Err("pdf: failed to build true alias table: %v\n", err)
	}

	return &Tables{
		Bins:      bins,
		PTrue:     pTrue,
		PBias:     pBias,
		Weight:    weight,
		AliasBias: aliasBias,
		AliasTrue: aliasTrue,
	}, nil
}
