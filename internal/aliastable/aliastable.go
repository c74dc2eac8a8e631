// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aliastable implements Walker's alias method for O(1) discrete
// sampling from a fixed probability mass function.
package aliastable

import (
	"github.com/cpmech/gosl/chk"
)

// Table holds the two parallel arrays ("prob" and "alias") that Walker's
// method needs to sample an index in O(1) given a pair of uniform variates.
type Table struct {
	n     int       // number of bins
	prob  []float64 // prob[i]: probability of staying at i when k==i
	alias []int     // alias[i]: index to switch to when the coin fails
}

// New builds a Table from a probability mass function p. p does not need to
// be normalized; it is rescaled internally so that it sums to one. An empty,
// all-zero, or negative-valued p is a construction error.
func New(p []float64) (o *Table, err error) {
	n := len(p)
	if n == 0 {
		return nil, chk.Err("alias table: probability mass function cannot be empty\n")
	}

	sum := 0.0
	for i, v := range p {
		if v < 0 {
			return nil, chk.Err("alias table: probability mass function has a negative entry p[%d]=%g\n", i, v)
		}
		sum += v
	}
	if sum <= 0 {
		return nil, chk.Err("alias table: probability mass function sums to zero\n")
	}

	o = &Table{n: n, prob: make([]float64, n), alias: make([]int, n)}

	// q[i] = n * p[i] / sum -- the scaled probabilities Walker's method partitions
	q := make([]float64, n)
	small := make([]int, 0, n) // q[i] < 1
	large := make([]int, 0, n) // q[i] >= 1
	for i, v := range p {
		q[i] = float64(n) * v / sum
		if q[i] < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		o.prob[s] = q[s]
		o.alias[s] = l

		q[l] = q[l] - (1.0 - q[s])
		if q[l] < 1.0 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}

	// leftover entries (floating-point slop keeps them out of exactly-empty
	// stacks) are bins that never need the alias: drain both stacks to 1
	for _, l := range large {
		o.prob[l] = 1.0
		o.alias[l] = l
	}
	for _, s := range small {
		o.prob[s] = 1.0
		o.alias[s] = s
	}

	for i, pr := range o.prob {
		if pr < 0 || pr > 1 {
			chk.Panic("alias table: internal invariant violated: prob[%d]=%g outside [0,1]\n", i, pr)
		}
	}
	return o, nil
}

// Len returns the number of bins in the table.
func (o *Table) Len() int { return o.n }

// Sample draws an index from the table's distribution given two independent
// uniform variates r1, r2 in [0,1). The caller owns the random source.
func (o *Table) Sample(r1, r2 float64) int {
	k := int(r1 * float64(o.n))
	if k >= o.n { // r1 approaching 1.0 under floating-point rounding
		k = o.n - 1
	}
	if r2 < o.prob[k] {
		return k
	}
	return o.alias[k]
}
