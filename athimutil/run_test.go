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

package athimutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/athim"
	"github.com/spatialmodel/athim/epi"
	"github.com/spatialmodel/athim/gbd"
)

func testComparison(t *testing.T) *athim.Comparison {
	t.Helper()
	c := athim.DefaultConfig()
	c.SampleSize = 5000

	uniform := func(v float64) *sparse.DenseArray {
		a := sparse.ZerosDense(athim.NAgeClasses, athim.NSexes)
		for i := range a.Elements {
			a.Elements[i] = v
		}
		return a
	}
	input := func(walk, cycle float64) *athim.ScenarioInput {
		return &athim.ScenarioInput{
			WalkWeight:       uniform(1),
			CycleWeight:      uniform(1),
			PopShare:         uniform(1 / float64(athim.NAgeClasses*athim.NSexes)),
			MeanWalkTime:     walk,
			MeanCycleTime:    cycle,
			MeanNonTravelMET: 8,
		}
	}
	table := make(gbd.Table)
	for _, d := range epi.Diseases {
		for age := 1; age <= athim.NAgeClasses; age++ {
			for _, sex := range []epi.Sex{epi.Male, epi.Female} {
				for _, bt := range gbd.BurdenTypes {
					table[gbd.Key{Disease: d, AgeClass: age, Sex: sex, Type: bt}] = 1000
				}
			}
		}
	}

	cmp, err := c.CompareModels(table, input(100, 20), input(100, 40))
	if err != nil {
		t.Fatal(err)
	}
	return cmp
}

func TestWriteComparison(t *testing.T) {
	cmp := testComparison(t)
	var buf bytes.Buffer
	if err := WriteComparison(&buf, cmp); err != nil {
		t.Fatal(err)
	}
	lines, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header, one row per burden type × disease × stratum, and one
	// total row per burden type.
	want := 1 + len(gbd.BurdenTypes)*(len(epi.Diseases)*athim.NAgeClasses*athim.NSexes+1)
	if len(lines) != want {
		t.Fatalf("got %d rows, want %d", len(lines), want)
	}
	header := strings.Join(lines[0], ",")
	if header != "burdentype,disease,ageclass,sex,delta" {
		t.Errorf("unexpected header %q", header)
	}
	// Every total row matches the corresponding DeltaBurden query.
	for _, line := range lines[1:] {
		if line[1] != athim.DiseaseAll {
			continue
		}
		total, err := cmp.DeltaBurden(line[0], athim.DiseaseAll)
		if err != nil {
			t.Fatal(err)
		}
		if got := fmt.Sprintf("%g", total); got != line[4] {
			t.Errorf("%s total = %s, want %s", line[0], line[4], got)
		}
	}
}
