// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mcsample-birth loads a tagged mesh, configures a Sampler, and drives a
// batch of particle births, reporting a per-cell weight-sum tally --
// the same sanity check PyNE's own test driver runs after sampling.
package main

import (
	"math/rand"

	"github.com/cpmech/mcsample/meshio"
	"github.com/cpmech/mcsample/pdf"
	"github.com/cpmech/mcsample/sampler"

	"github.com/cpmech/gosl/io"
)

func main() {

	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// input data
	meshfn, _ := io.ArgToFilename(0, "data/mcsample-gen.json", ".json", true)
	mode := io.ArgToInt(1, 0)
	nbirths := io.ArgToInt(2, 10000)
	elo := io.ArgToFloat(3, 0.0)
	ehi := io.ArgToFloat(4, 10.0)
	seed := io.ArgToInt(5, 0)

	io.Pf("\n%s\n", io.ArgsTable(
		"mesh filename", "meshfn", meshfn,
		"sampling mode (0-4)", "mode", mode,
		"number of births", "nbirths", nbirths,
		"energy group lower bound", "elo", elo,
		"energy group upper bound", "ehi", ehi,
		"random seed", "seed", seed,
	))

	mesh, err := meshio.Read(meshfn)
	if err != nil {
		io.PfRed("cannot read mesh: %v\n", err)
		return
	}

	smp, err := sampler.New(mesh, []float64{elo, ehi}, pdf.Mode(mode))
	if err != nil {
		io.PfRed("cannot configure sampler: %v\n", err)
		return
	}
	io.Pfcyan("sampler ready: mode=%v bins=%d\n", smp.Mode(), smp.NumBins())

	rng := rand.New(rand.NewSource(int64(seed)))
	weightSum := make(map[int]float64)
	countByCell := make(map[int]int)
	totalW := 0.0

	for n := 0; n < nbirths; n++ {
		var r [6]float64
		for i := range r {
			r[i] = rng.Float64()
		}
		p := smp.ParticleBirth(r)
		totalW += p.W
		if p.Cell != sampler.NoCell {
			countByCell[p.Cell]++
			weightSum[p.Cell] += p.W
		}
	}

	io.Pfgreen("\n%d births drawn, mean weight = %g (should be ~1 for an unbiased tally)\n",
		nbirths, totalW/float64(nbirths))

	if len(countByCell) > 0 {
		io.Pf("\nper-cell birth counts:\n")
		for cell, n := range countByCell {
			io.Pf("  cell %d: %d births, weight sum %g\n", cell, n, weightSum[cell])
		}
	}
}
