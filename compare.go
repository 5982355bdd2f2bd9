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
	"fmt"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/athim/epi"
	"github.com/spatialmodel/athim/gbd"
	"gonum.org/v1/gonum/floats"
)

// Comparison is the full report of a baseline-versus-scenario
// comparative risk assessment.
type Comparison struct {
	// BaselineTimes and ScenarioTimes are the per-stratum walking,
	// cycling, and total active-transport time quantile matrices of
	// the two compared inputs.
	BaselineTimes, ScenarioTimes *TimeQuantiles

	// BaselineRR and ScenarioRR are the relative risk tables for the
	// two compared inputs.
	BaselineRR, ScenarioRR RelativeRiskTables

	// RiskRatio is the elementwise baseline/scenario relative risk
	// ratio, kept for diagnostics.
	RiskRatio map[epi.Disease]*sparse.DenseArray

	// AF is the attributable fraction of each disease's burden
	// explained by the exposure shift.
	AF AttributableFraction

	// BaselineShape and ScenarioShape are the first-quantile
	// normalized relative risk shapes used to redistribute burden
	// across exposure quantiles.
	BaselineShape, ScenarioShape map[epi.Disease]*sparse.DenseArray

	// Deltas holds the per-stratum scenario-minus-baseline burden
	// change for each burden measure and disease.
	Deltas BurdenDeltas

	// DeltaQuantiles holds the per-quantile allocation of each delta,
	// shape [NAgeClasses, NSexes, nQuantiles].
	DeltaQuantiles map[gbd.BurdenType]map[epi.Disease]*sparse.DenseArray
}

// CompareModels runs the comparative risk assessment pipeline for a
// pair of travel scenarios against the supplied burden table: exposure
// means, exposure quantiles, simulated total MET exposure, relative
// risks, attributable fractions, and burden deltas for all four burden
// measures across all modeled diseases.
//
// The burden table must hold a value for every modeled disease,
// stratum, and burden measure; a gap anywhere aborts the comparison
// with a MissingBurdenDataError before any burden is computed.
func (c *Config) CompareModels(table gbd.Table, baseline, scenario *ScenarioInput) (*Comparison, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := table.Validate(epi.Diseases, NAgeClasses); err != nil {
		return nil, err
	}

	baseMeans, err := c.ExposureMeans(baseline)
	if err != nil {
		return nil, err
	}
	scenMeans, err := c.ExposureMeans(scenario)
	if err != nil {
		return nil, err
	}

	baseTimes, err := c.TimeQuantiles(baseMeans)
	if err != nil {
		return nil, err
	}
	scenTimes, err := c.TimeQuantiles(scenMeans)
	if err != nil {
		return nil, err
	}

	baseMET, err := c.TotalMET(baseMeans)
	if err != nil {
		return nil, err
	}
	scenMET, err := c.TotalMET(scenMeans)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		BaselineTimes: baseTimes,
		ScenarioTimes: scenTimes,
		BaselineRR:    c.RelativeRisks(baseMET),
		ScenarioRR:    c.RelativeRisks(scenMET),
	}
	cmp.RiskRatio = RiskRatios(cmp.BaselineRR, cmp.ScenarioRR)
	cmp.AF = AttributableFractions(cmp.BaselineRR, cmp.ScenarioRR)
	cmp.BaselineShape = NormalizeDiseaseBurden(cmp.BaselineRR)
	cmp.ScenarioShape = NormalizeDiseaseBurden(cmp.ScenarioRR)

	cmp.Deltas = make(BurdenDeltas, len(gbd.BurdenTypes))
	cmp.DeltaQuantiles = make(map[gbd.BurdenType]map[epi.Disease]*sparse.DenseArray, len(gbd.BurdenTypes))
	for _, bt := range gbd.BurdenTypes {
		deltas, deltaQ, err := burdenDeltas(table, bt, cmp.AF, cmp.BaselineShape, cmp.ScenarioShape)
		if err != nil {
			return nil, err
		}
		cmp.Deltas[bt] = deltas
		cmp.DeltaQuantiles[bt] = deltaQ
	}
	return cmp, nil
}

// DiseaseAll selects all modeled diseases in DeltaBurden.
const DiseaseAll = "all"

// DeltaBurden returns the total scenario-minus-baseline burden change,
// summed over all strata and sexes (age class 1 included).
//
// burdenType selects the burden measure; the empty string defaults to
// "daly". disease restricts the total to one disease by name; the
// empty string or "all" sums across all modeled diseases. An
// unrecognized burden type or disease is a ConfigurationError, never a
// zero result.
func (cmp *Comparison) DeltaBurden(burdenType, disease string) (float64, error) {
	bt := gbd.DALY
	if burdenType != "" {
		var ok bool
		bt, ok = gbd.ParseBurdenType(burdenType)
		if !ok {
			return 0, ConfigurationError{Reason: fmt.Sprintf("unknown burden type %q", burdenType)}
		}
	}
	set := cmp.Deltas[bt]

	if disease == "" || disease == DiseaseAll {
		var total float64
		for _, d := range epi.Diseases {
			total += floats.Sum(set[d].Elements)
		}
		return total, nil
	}
	d, ok := epi.ParseDisease(disease)
	if !ok {
		return 0, ConfigurationError{Reason: fmt.Sprintf("unknown disease %q", disease)}
	}
	return floats.Sum(set[d].Elements), nil
}
