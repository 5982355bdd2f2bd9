/*
Copyright © 2024 the ATHIM authors.
This file is part of ATHIM.

ATHIM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ATHIM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ATHIM.  If not, see <http://www.gnu.org/licenses/>.
*/

package athim

import (
	"errors"
	"math"
	"testing"

	"github.com/ctessum/sparse"
)

// uniformArray returns a [NAgeClasses, NSexes] array with every
// element set to v.
func uniformArray(v float64) *sparse.DenseArray {
	a := sparse.ZerosDense(NAgeClasses, NSexes)
	for i := range a.Elements {
		a.Elements[i] = v
	}
	return a
}

// uniformInput returns a scenario with travel time evenly distributed
// across strata.
func uniformInput(walk, cycle, nonTravel float64) *ScenarioInput {
	return &ScenarioInput{
		WalkWeight:       uniformArray(1),
		CycleWeight:      uniformArray(1),
		PopShare:         uniformArray(1 / float64(NAgeClasses*NSexes)),
		MeanWalkTime:     walk,
		MeanCycleTime:    cycle,
		MeanNonTravelMET: nonTravel,
	}
}

// In overall mode, the population-share weighted mean of the stratum
// means must equal the population mean.
func TestExposureMeansOverall(t *testing.T) {
	c := DefaultConfig()
	in := uniformInput(100, 20, 8)
	// Skew the walking weights so normalization has work to do.
	in.WalkWeight.Set(3, 0, 0)
	in.WalkWeight.Set(0.5, 4, 1)

	m, err := c.ExposureMeans(in)
	if err != nil {
		t.Fatal(err)
	}
	var weighted float64
	for a := 0; a < NAgeClasses; a++ {
		for s := 0; s < NSexes; s++ {
			weighted += in.PopShare.Get(a, s) * m.WalkTime.Get(a, s)
		}
	}
	if math.Abs(weighted-in.MeanWalkTime) > 1e-9 {
		t.Errorf("population-weighted mean walking time = %g, want %g", weighted, in.MeanWalkTime)
	}

	// The ratio between stratum means must match the ratio between
	// weights.
	r := m.WalkTime.Get(0, 0) / m.WalkTime.Get(1, 0)
	if math.Abs(r-3) > 1e-9 {
		t.Errorf("stratum mean ratio = %g, want 3", r)
	}
}

func TestExposureMeansReferent(t *testing.T) {
	c := DefaultConfig()
	c.Normalization = NormalizationReferent
	in := uniformInput(100, 20, 8)
	in.CycleWeight.Set(2, 3, 1)

	m, err := c.ExposureMeans(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.CycleTime.Get(3, 1); math.Abs(got-40) > 1e-12 {
		t.Errorf("referent mean = %g, want 40", got)
	}
	if got := m.CycleTime.Get(0, 0); math.Abs(got-20) > 1e-12 {
		t.Errorf("referent mean = %g, want 20", got)
	}
}

func TestExposureMeansBadMode(t *testing.T) {
	c := DefaultConfig()
	c.Normalization = "percapita"
	_, err := c.ExposureMeans(uniformInput(100, 20, 8))
	var ce ConfigurationError
	if !errors.As(err, &ce) {
		t.Errorf("got %v, want ConfigurationError", err)
	}
}

func TestExposureMeansTimeSplit(t *testing.T) {
	c := DefaultConfig()
	m, err := c.ExposureMeans(uniformInput(100, 20, 8))
	if err != nil {
		t.Fatal(err)
	}
	for a := 0; a < NAgeClasses; a++ {
		for s := 0; s < NSexes; s++ {
			propCycle := m.PropCycle.Get(a, s)
			if math.Abs(propCycle-20.0/120.0) > 1e-12 {
				t.Errorf("stratum (%d,%d): propCycle = %g, want %g", a, s, propCycle, 20.0/120.0)
			}
			if pw := m.PropWalk.Get(a, s); math.Abs(pw+propCycle-1) > 1e-12 {
				t.Errorf("stratum (%d,%d): pWalk+propCycle = %g, want 1", a, s, pw+propCycle)
			}
			if sd := m.ActiveTimeSD.Get(a, s); math.Abs(sd-c.CV*120) > 1e-9 {
				t.Errorf("stratum (%d,%d): active SD = %g, want %g", a, s, sd, c.CV*120)
			}
		}
	}
}

// A stratum with no active travel gets pWalk = 1 rather than a
// division by zero.
func TestExposureMeansZeroActive(t *testing.T) {
	c := DefaultConfig()
	m, err := c.ExposureMeans(uniformInput(0, 0, 8))
	if err != nil {
		t.Fatal(err)
	}
	if pw := m.PropWalk.Get(0, 0); pw != 1 {
		t.Errorf("pWalk = %g, want 1", pw)
	}
}

func TestScenarioInputShape(t *testing.T) {
	c := DefaultConfig()
	in := uniformInput(100, 20, 8)
	in.CycleWeight = sparse.ZerosDense(4, NSexes) // Wrong shape.
	_, err := c.ExposureMeans(in)
	var ife InputFormatError
	if !errors.As(err, &ife) {
		t.Errorf("got %v, want InputFormatError", err)
	}
}
