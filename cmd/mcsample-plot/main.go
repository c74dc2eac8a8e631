// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// mcsample-plot draws a scatter of sampled birth positions (x,y) and a
// histogram of sampled energies, using gosl/plt the same way the teacher's
// msolid/plotter.go renders its stress-path figures.
package main

import (
	"math/rand"

	"github.com/cpmech/mcsample/meshio"
	"github.com/cpmech/mcsample/pdf"
	"github.com/cpmech/mcsample/sampler"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

func main() {

	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	meshfn, fnkey := io.ArgToFilename(0, "data/mcsample-gen.json", ".json", true)
	mode := io.ArgToInt(1, 0)
	nbirths := io.ArgToInt(2, 2000)
	elo := io.ArgToFloat(3, 0.0)
	ehi := io.ArgToFloat(4, 10.0)
	nebins := io.ArgToInt(5, 20)

	io.Pf("\n%s\n", io.ArgsTable(
		"mesh filename", "meshfn", meshfn,
		"sampling mode (0-4)", "mode", mode,
		"number of births", "nbirths", nbirths,
		"energy group lower bound", "elo", elo,
		"energy group upper bound", "ehi", ehi,
		"energy histogram bins", "nebins", nebins,
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

	rng := rand.New(rand.NewSource(0))
	x := make([]float64, nbirths)
	y := make([]float64, nbirths)
	e := make([]float64, nbirths)
	for n := 0; n < nbirths; n++ {
		var r [6]float64
		for i := range r {
			r[i] = rng.Float64()
		}
		p := smp.ParticleBirth(r)
		x[n], y[n], e[n] = p.X, p.Y, p.E
	}

	ecounts := make([]float64, nebins)
	ecenters := make([]float64, nebins)
	dE := (ehi - elo) / float64(nebins)
	for g := 0; g < nebins; g++ {
		ecenters[g] = elo + (float64(g)+0.5)*dE
	}
	for _, ev := range e {
		g := int((ev - elo) / dE)
		if g < 0 {
			g = 0
		}
		if g >= nebins {
			g = nebins - 1
		}
		ecounts[g]++
	}

	plt.Reset()
	plt.Plot(x, y, "'b.', ls='', markersize=2")
	plt.Gll("$x$", "$y$", "")
	plt.SaveD("/tmp/mcsample", fnkey+"_positions.png")

	plt.Reset()
	plt.Plot(ecenters, ecounts, "'r-'")
	plt.Gll("$E$", "count", "")
	plt.SaveD("/tmp/mcsample", fnkey+"_energies.png")

	io.Pfgreen("wrote /tmp/mcsample/%s_positions.png and %s_energies.png\n", fnkey, fnkey)
}
