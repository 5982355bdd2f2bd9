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

	"github.com/spatialmodel/athim/epi"
	"github.com/spatialmodel/athim/gbd"
)

// fullTable builds a burden table covering every disease, stratum, and
// burden type with the given value.
func fullTable(value float64) gbd.Table {
	t := make(gbd.Table)
	for _, d := range epi.Diseases {
		for age := 1; age <= NAgeClasses; age++ {
			for _, sex := range []Sex{Male, Female} {
				for _, bt := range gbd.BurdenTypes {
					t[gbd.Key{Disease: d, AgeClass: age, Sex: sex, Type: bt}] = value
				}
			}
		}
	}
	return t
}

// testConfig returns the default configuration with a sample size
// small enough for fast tests.
func testConfig() *Config {
	c := DefaultConfig()
	c.SampleSize = 20000
	return c
}

// Comparing a scenario against itself changes nothing: AF is zero and
// every burden delta is zero, for every burden type and disease.
func TestCompareIdenticalScenarios(t *testing.T) {
	c := testConfig()
	cmp, err := c.CompareModels(fullTable(1000), uniformInput(100, 20, 8), uniformInput(100, 20, 8))
	if err != nil {
		t.Fatal(err)
	}
	for d, arr := range cmp.AF {
		for i, v := range arr.Elements {
			if v != 0 {
				t.Errorf("%s element %d: AF = %g, want 0", d, i, v)
			}
		}
	}
	for _, bt := range gbd.BurdenTypes {
		for _, d := range epi.Diseases {
			delta, err := cmp.DeltaBurden(string(bt), d.String())
			if err != nil {
				t.Fatal(err)
			}
			if delta != 0 {
				t.Errorf("%s/%s: delta = %g, want 0", bt, d, delta)
			}
		}
	}
}

// Doubling cycling time is a health benefit: the CVD DALY delta is
// negative, and its magnitude grows with the size of the exposure
// increase.
func TestCompareCyclingBenefit(t *testing.T) {
	c := testConfig()
	table := fullTable(1000)
	baseline := uniformInput(100, 20, 8)

	var prev float64
	for _, cycle := range []float64{30, 40, 60} {
		cmp, err := c.CompareModels(table, baseline, uniformInput(100, cycle, 8))
		if err != nil {
			t.Fatal(err)
		}
		delta, err := cmp.DeltaBurden("daly", "cvd")
		if err != nil {
			t.Fatal(err)
		}
		if delta >= 0 {
			t.Errorf("cycling %g min/week: CVD DALY delta = %g, want negative", cycle, delta)
		}
		if math.Abs(delta) <= math.Abs(prev) {
			t.Errorf("cycling %g min/week: |delta| = %g not greater than %g",
				cycle, math.Abs(delta), math.Abs(prev))
		}
		prev = delta
	}
}

// The comparison report carries the walking, cycling, and active-time
// quantile matrices of both scenarios.
func TestComparisonTimeQuantiles(t *testing.T) {
	c := testConfig()
	cmp, err := c.CompareModels(fullTable(1000),
		uniformInput(100, 20, 8), uniformInput(100, 40, 8))
	if err != nil {
		t.Fatal(err)
	}
	if cmp.BaselineTimes == nil || cmp.ScenarioTimes == nil {
		t.Fatal("comparison is missing time quantiles")
	}
	nq := len(c.Quantiles)
	for a := 0; a < NAgeClasses; a++ {
		for s := 0; s < NSexes; s++ {
			for k := 0; k < nq; k++ {
				bc := cmp.BaselineTimes.Cycle.Get(a, s, k)
				sc := cmp.ScenarioTimes.Cycle.Get(a, s, k)
				if sc <= bc {
					t.Fatalf("stratum (%d,%d) quantile %d: scenario cycling time %g not above baseline %g",
						a+1, s, k, sc, bc)
				}
				bw := cmp.BaselineTimes.Walk.Get(a, s, k)
				sw := cmp.ScenarioTimes.Walk.Get(a, s, k)
				if math.Abs(sw-bw) > 1e-9 {
					t.Fatalf("stratum (%d,%d) quantile %d: walking time changed from %g to %g",
						a+1, s, k, bw, sw)
				}
			}
		}
	}
}

// The "all"-disease total equals the sum over individual diseases.
func TestDeltaBurdenAllEqualsSum(t *testing.T) {
	c := testConfig()
	cmp, err := c.CompareModels(fullTable(1000), uniformInput(100, 20, 8), uniformInput(80, 40, 8))
	if err != nil {
		t.Fatal(err)
	}
	for _, bt := range gbd.BurdenTypes {
		all, err := cmp.DeltaBurden(string(bt), DiseaseAll)
		if err != nil {
			t.Fatal(err)
		}
		var sum float64
		for _, d := range epi.Diseases {
			delta, err := cmp.DeltaBurden(string(bt), d.String())
			if err != nil {
				t.Fatal(err)
			}
			sum += delta
		}
		if math.Abs(all-sum) > 1e-9*math.Max(1, math.Abs(all)) {
			t.Errorf("%s: all = %g, sum of diseases = %g", bt, all, sum)
		}
	}
}

// An unrecognized selector is an explicit error, never a zero result.
func TestDeltaBurdenUnknownSelectors(t *testing.T) {
	c := testConfig()
	cmp, err := c.CompareModels(fullTable(1000), uniformInput(100, 20, 8), uniformInput(100, 40, 8))
	if err != nil {
		t.Fatal(err)
	}
	var ce ConfigurationError
	if _, err := cmp.DeltaBurden("qaly", DiseaseAll); !errors.As(err, &ce) {
		t.Errorf("unknown burden type: got %v, want ConfigurationError", err)
	}
	if _, err := cmp.DeltaBurden("daly", "rtis"); !errors.As(err, &ce) {
		t.Errorf("unknown disease: got %v, want ConfigurationError", err)
	}
	// Empty selectors take the documented defaults.
	daly, err := cmp.DeltaBurden("", "")
	if err != nil {
		t.Fatal(err)
	}
	want, err := cmp.DeltaBurden("daly", DiseaseAll)
	if err != nil {
		t.Fatal(err)
	}
	if daly != want {
		t.Errorf("default selectors = %g, want %g", daly, want)
	}
}

// A gap in the burden table aborts the comparison before any burden is
// computed.
func TestCompareMissingBurdenData(t *testing.T) {
	c := testConfig()
	table := fullTable(1000)
	missing := gbd.Key{Disease: epi.Diabetes, AgeClass: 2, Sex: Female, Type: gbd.YLL}
	delete(table, missing)

	cmp, err := c.CompareModels(table, uniformInput(100, 20, 8), uniformInput(100, 40, 8))
	var mbe gbd.MissingBurdenDataError
	if !errors.As(err, &mbe) {
		t.Fatalf("got %v, want MissingBurdenDataError", err)
	}
	if mbe.Key != missing {
		t.Errorf("error key = %+v, want %+v", mbe.Key, missing)
	}
	if cmp != nil {
		t.Error("got a result along with the error")
	}
}

// Burden deltas include age class 1: zeroing its baseline burden must
// change the total.
func TestDeltaBurdenIncludesFirstAgeClass(t *testing.T) {
	c := testConfig()
	baseline := uniformInput(100, 20, 8)
	scenario := uniformInput(100, 40, 8)

	full, err := c.CompareModels(fullTable(1000), baseline, scenario)
	if err != nil {
		t.Fatal(err)
	}
	table := fullTable(1000)
	for _, bt := range gbd.BurdenTypes {
		for _, sex := range []Sex{Male, Female} {
			table[gbd.Key{Disease: epi.CVD, AgeClass: 1, Sex: sex, Type: bt}] = 0
		}
	}
	zeroed, err := c.CompareModels(table, baseline, scenario)
	if err != nil {
		t.Fatal(err)
	}
	a, err := full.DeltaBurden("daly", "cvd")
	if err != nil {
		t.Fatal(err)
	}
	b, err := zeroed.DeltaBurden("daly", "cvd")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("age class 1 does not contribute to the total")
	}
}
