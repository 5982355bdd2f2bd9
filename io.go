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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/athim/epi"
)

// Travel modes accepted in active-travel input.
const (
	ModeWalking = "walking"
	ModeCycling = "cycling"
)

// ActiveTravel holds per-stratum active travel times parsed from
// survey data: the population-wide mean time for each mode and the
// per-stratum relative weights describing how that time is distributed
// across strata.
type ActiveTravel struct {
	// WalkWeight and CycleWeight are relative weights with shape
	// [NAgeClasses, NSexes], scaled so their unweighted average
	// across strata is 1.
	WalkWeight, CycleWeight *sparse.DenseArray

	// MeanWalkTime and MeanCycleTime are the unweighted mean travel
	// times across strata, in minutes/week.
	MeanWalkTime, MeanCycleTime float64
}

// ReadActiveTravel reads active-travel survey records from CSV data
// with the columns mode, ageclass, sex, value (and a header row),
// where mode is "walking" or "cycling", ageclass is a 1-based integer,
// sex is "M" or "F", and value is minutes/week.
//
// Each (mode, sex) series must list exactly NAgeClasses age classes in
// strictly increasing order, and walking and cycling must cover the
// same strata; any violation is an InputFormatError and nothing is
// computed.
func ReadActiveTravel(r io.Reader) (*ActiveTravel, error) {
	lines, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, InputFormatError{Reason: fmt.Sprintf("reading active travel records: %v", err)}
	}
	if len(lines) < 2 {
		return nil, InputFormatError{Reason: "active travel input has no data rows"}
	}

	values := map[string]*sparse.DenseArray{
		ModeWalking: sparse.ZerosDense(NAgeClasses, NSexes),
		ModeCycling: sparse.ZerosDense(NAgeClasses, NSexes),
	}
	// lastAge tracks the previously seen age class per (mode, sex)
	// series to enforce strictly increasing order.
	lastAge := make(map[string]int)
	counts := make(map[string]int)

	for i, line := range lines[1:] { // Skip the header.
		rowNum := i + 2
		if len(line) != 4 {
			return nil, InputFormatError{Reason: fmt.Sprintf(
				"active travel row %d has %d columns; want 4", rowNum, len(line))}
		}
		mode := strings.ToLower(strings.TrimSpace(line[0]))
		vals, ok := values[mode]
		if !ok {
			return nil, InputFormatError{Reason: fmt.Sprintf(
				"active travel row %d: unknown mode %q", rowNum, line[0])}
		}
		age, err := strconv.Atoi(strings.TrimSpace(line[1]))
		if err != nil || age < 1 || age > NAgeClasses {
			return nil, InputFormatError{Reason: fmt.Sprintf(
				"active travel row %d: invalid age class %q", rowNum, line[1])}
		}
		sex, ok := epi.ParseSex(strings.TrimSpace(line[2]))
		if !ok {
			return nil, InputFormatError{Reason: fmt.Sprintf(
				"active travel row %d: unknown sex %q", rowNum, line[2])}
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line[3]), 64)
		if err != nil || v < 0 {
			return nil, InputFormatError{Reason: fmt.Sprintf(
				"active travel row %d: invalid travel time %q", rowNum, line[3])}
		}

		series := mode + "/" + sex.String()
		if prev, ok := lastAge[series]; ok && age <= prev {
			return nil, InputFormatError{Reason: fmt.Sprintf(
				"active travel row %d: age class %d out of order after %d in %s series",
				rowNum, age, prev, series)}
		}
		lastAge[series] = age
		counts[series]++
		vals.Set(v, age-1, int(sex))
	}

	for _, mode := range []string{ModeWalking, ModeCycling} {
		for _, sex := range []Sex{Male, Female} {
			series := mode + "/" + sex.String()
			if counts[series] != NAgeClasses {
				return nil, InputFormatError{Reason: fmt.Sprintf(
					"%s series has %d age classes; want %d", series, counts[series], NAgeClasses)}
			}
		}
	}

	at := &ActiveTravel{}
	at.WalkWeight, at.MeanWalkTime = weightsFromValues(values[ModeWalking])
	at.CycleWeight, at.MeanCycleTime = weightsFromValues(values[ModeCycling])
	return at, nil
}

// weightsFromValues converts per-stratum travel times into relative
// weights (unweighted average 1) and the unweighted mean time.
func weightsFromValues(vals *sparse.DenseArray) (*sparse.DenseArray, float64) {
	mean := vals.Sum() / float64(len(vals.Elements))
	w := vals.Copy()
	if mean > 0 {
		w.Scale(1 / mean)
	}
	return w, mean
}

// Scenario combines the parsed travel times with population shares and
// a population-wide non-travel activity level into a scenario ready
// for comparison. popShare may be nil, in which case the population is
// assumed to be evenly split across strata.
func (at *ActiveTravel) Scenario(popShare *sparse.DenseArray, nonTravelMET float64) *ScenarioInput {
	if popShare == nil {
		popShare = sparse.ZerosDense(NAgeClasses, NSexes)
		for i := range popShare.Elements {
			popShare.Elements[i] = 1 / float64(NAgeClasses*NSexes)
		}
	}
	return &ScenarioInput{
		WalkWeight:       at.WalkWeight,
		CycleWeight:      at.CycleWeight,
		PopShare:         popShare,
		MeanWalkTime:     at.MeanWalkTime,
		MeanCycleTime:    at.MeanCycleTime,
		MeanNonTravelMET: nonTravelMET,
	}
}
