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
	"github.com/ctessum/sparse"
)

// ScenarioInput holds the travel behavior of one scenario: per-stratum
// relative travel-time weights and population-wide means. Weight
// matrices have shape [NAgeClasses, NSexes].
type ScenarioInput struct {
	// WalkWeight and CycleWeight are per-stratum relative weights
	// describing the shape of travel time across strata.
	WalkWeight, CycleWeight *sparse.DenseArray

	// NonTravelWeight optionally gives per-stratum relative weights
	// for non-travel physical activity. If nil, non-travel activity
	// is uniform across strata.
	NonTravelWeight *sparse.DenseArray

	// PopShare is each stratum's share of the total population.
	// Shares should sum to 1.
	PopShare *sparse.DenseArray

	// MeanWalkTime and MeanCycleTime are population-wide mean travel
	// times in minutes/week.
	MeanWalkTime, MeanCycleTime float64

	// MeanNonTravelMET is the population-wide mean non-travel
	// physical activity in MET-hours/week.
	MeanNonTravelMET float64
}

func (in *ScenarioInput) check() error {
	if err := checkStratified("walking weight", in.WalkWeight); err != nil {
		return err
	}
	if err := checkStratified("cycling weight", in.CycleWeight); err != nil {
		return err
	}
	if in.NonTravelWeight != nil {
		if err := checkStratified("non-travel weight", in.NonTravelWeight); err != nil {
			return err
		}
	}
	if err := checkStratified("population share", in.PopShare); err != nil {
		return err
	}
	if in.MeanWalkTime < 0 || in.MeanCycleTime < 0 || in.MeanNonTravelMET < 0 {
		return InputFormatError{Reason: "population mean activity levels must be non-negative"}
	}
	return nil
}

// ExposureMeans holds per-stratum exposure distribution parameters
// derived from a ScenarioInput. All arrays have shape
// [NAgeClasses, NSexes].
type ExposureMeans struct {
	// WalkTime and CycleTime are mean travel times in minutes/week.
	WalkTime, CycleTime *sparse.DenseArray

	// NonTravelMET is mean non-travel activity in MET-hours/week.
	NonTravelMET *sparse.DenseArray

	// ActiveTime is the mean total active-transport time
	// (walking plus cycling) in minutes/week, and ActiveTimeSD its
	// standard deviation, derived as CV × mean.
	ActiveTime, ActiveTimeSD *sparse.DenseArray

	// PropCycle is the proportion of active-transport time spent
	// cycling, and PropWalk its complement.
	PropCycle, PropWalk *sparse.DenseArray
}

// ExposureMeans converts a scenario's relative weights and population
// means into per-stratum exposure means under the configured
// normalization mode.
func (c *Config) ExposureMeans(in *ScenarioInput) (*ExposureMeans, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := in.check(); err != nil {
		return nil, err
	}

	nonTravelWeight := in.NonTravelWeight
	if nonTravelWeight == nil {
		nonTravelWeight = sparse.ZerosDense(NAgeClasses, NSexes)
		for i := range nonTravelWeight.Elements {
			nonTravelWeight.Elements[i] = 1
		}
	}

	walk, err := c.stratumMeans(in.MeanWalkTime, in.WalkWeight, in.PopShare)
	if err != nil {
		return nil, err
	}
	cycle, err := c.stratumMeans(in.MeanCycleTime, in.CycleWeight, in.PopShare)
	if err != nil {
		return nil, err
	}
	nonTravel, err := c.stratumMeans(in.MeanNonTravelMET, nonTravelWeight, in.PopShare)
	if err != nil {
		return nil, err
	}

	m := &ExposureMeans{
		WalkTime:     walk,
		CycleTime:    cycle,
		NonTravelMET: nonTravel,
		ActiveTime:   sparse.ZerosDense(NAgeClasses, NSexes),
		ActiveTimeSD: sparse.ZerosDense(NAgeClasses, NSexes),
		PropCycle:    sparse.ZerosDense(NAgeClasses, NSexes),
		PropWalk:     sparse.ZerosDense(NAgeClasses, NSexes),
	}
	for a := 0; a < NAgeClasses; a++ {
		for s := 0; s < NSexes; s++ {
			w := walk.Get(a, s)
			cy := cycle.Get(a, s)
			active := w + cy
			m.ActiveTime.Set(active, a, s)
			m.ActiveTimeSD.Set(c.CV*active, a, s)
			propCycle := 0.0
			if active > 0 {
				propCycle = cy / active
			}
			m.PropCycle.Set(propCycle, a, s)
			m.PropWalk.Set(1-propCycle, a, s)
		}
	}
	return m, nil
}

// stratumMeans scales the population mean into per-stratum means
// according to the configured normalization mode.
func (c *Config) stratumMeans(popMean float64, weight, popShare *sparse.DenseArray) (*sparse.DenseArray, error) {
	out := sparse.ZerosDense(NAgeClasses, NSexes)
	switch c.Normalization {
	case NormalizationReferent:
		for i, w := range weight.Elements {
			out.Elements[i] = popMean * w
		}
	case NormalizationOverall:
		// The population-share weighted average weight; dividing by
		// it makes the population-wide mean of the result equal
		// popMean.
		var avgWeight float64
		for i, w := range weight.Elements {
			avgWeight += popShare.Elements[i] * w
		}
		if avgWeight == 0 {
			return nil, InputFormatError{Reason: "population-weighted average of stratum weights is zero"}
		}
		for i, w := range weight.Elements {
			out.Elements[i] = popMean * w / avgWeight
		}
	default:
		return nil, ConfigurationError{Reason: "unknown normalization mode " + c.Normalization}
	}
	return out, nil
}
