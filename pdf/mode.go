// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

// Mode selects one of the four biasing schemes spec.md Sec.4.4 defines.
// The numbering (0-4) matches the original source's own numbering, kept
// unchanged so replay scripts and test expectations translate directly.
type Mode int

const (
	// Analog samples directly from the true source PDF; all weights are 1.
	Analog Mode = 0
	// Uniform samples each nonzero-source element (or sub-voxel) in
	// proportion to its volume, keeping the true source's energy-group
	// distribution within it.
	Uniform Mode = 1
	// UserBias biases according to a user-supplied bias tag.
	UserBias Mode = 2
	// AnalogSubVoxel is Analog with sub-voxel cell ids consumed and emitted.
	AnalogSubVoxel Mode = 3
	// UniformSubVoxel is Uniform with sub-voxel cell ids consumed and emitted.
	UniformSubVoxel Mode = 4
)

func (m Mode) String() string {
	switch m {
	case Analog:
		return "analog"
	case Uniform:
		return "uniform"
	case UserBias:
		return "user-bias"
	case AnalogSubVoxel:
		return "analog-subvoxel"
	case UniformSubVoxel:
		return "uniform-subvoxel"
	default:
		return "unknown"
	}
}

// NeedsSubVoxels reports whether mode m consumes cell_fracs and emits a
// cell id on every birth.
func (m Mode) NeedsSubVoxels() bool { return m == AnalogSubVoxel || m == UniformSubVoxel }

// NeedsBias reports whether mode m requires a bias tag to be present.
func (m Mode) NeedsBias() bool { return m == UserBias }

// Valid reports whether m is one of the five recognized modes.
func (m Mode) Valid() bool { return m >= Analog && m <= UniformSubVoxel }
