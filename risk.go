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
	"github.com/spatialmodel/athim/epi"
)

// RelativeRiskTables maps each disease to its stratum × quantile
// relative risk array, shape [NAgeClasses, NSexes, nQuantiles].
type RelativeRiskTables map[epi.Disease]*sparse.DenseArray

// RelativeRisks evaluates each disease's dose-response curve at the
// given total MET exposure quantiles (as produced by TotalMET).
func (c *Config) RelativeRisks(met *sparse.DenseArray) RelativeRiskTables {
	nq := len(c.Quantiles)
	rr := make(RelativeRiskTables, len(epi.Diseases))
	for _, d := range epi.Diseases {
		arr := sparse.ZerosDense(NAgeClasses, NSexes, nq)
		for a := 0; a < NAgeClasses; a++ {
			for s := 0; s < NSexes; s++ {
				curve := epi.Curve(d, Sex(s), a+1, c.Exponent)
				for k := 0; k < nq; k++ {
					arr.Set(curve.RR(met.Get(a, s, k)), a, s, k)
				}
			}
		}
		rr[d] = arr
	}
	return rr
}

// AttributableFraction maps each disease to a per-stratum attributable
// fraction array, shape [NAgeClasses, NSexes]: the fraction of the
// disease burden attributable to the exposure difference between
// scenario and baseline.
type AttributableFraction map[epi.Disease]*sparse.DenseArray

// AttributableFractions computes, for each disease and stratum,
//
//	AF = 1 − Σq RRscenario / Σq RRbaseline
//
// where the sums run over the quantile axis. Summing equally-weighted
// quantiles approximates integrating the relative risk over the
// exposure distribution.
func AttributableFractions(baseline, scenario RelativeRiskTables) AttributableFraction {
	af := make(AttributableFraction, len(baseline))
	for d, base := range baseline {
		scen := scenario[d]
		nq := base.Shape[2]
		out := sparse.ZerosDense(NAgeClasses, NSexes)
		for a := 0; a < NAgeClasses; a++ {
			for s := 0; s < NSexes; s++ {
				var sumBase, sumScen float64
				for k := 0; k < nq; k++ {
					sumBase += base.Get(a, s, k)
					sumScen += scen.Get(a, s, k)
				}
				out.Set(1-sumScen/sumBase, a, s)
			}
		}
		af[d] = out
	}
	return af
}

// RiskRatios returns the elementwise baseline/scenario relative risk
// ratio for each disease. The ratio supports diagnostic inspection and
// an alternative attributable-fraction formulation; it does not drive
// burden scaling.
func RiskRatios(baseline, scenario RelativeRiskTables) map[epi.Disease]*sparse.DenseArray {
	out := make(map[epi.Disease]*sparse.DenseArray, len(baseline))
	for d, base := range baseline {
		scen := scenario[d]
		ratio := base.Copy()
		for i, v := range scen.Elements {
			ratio.Elements[i] /= v
		}
		out[d] = ratio
	}
	return out
}

// NormalizeDiseaseBurden divides each quantile's relative risk by the
// relative risk at the first (lowest-exposure) quantile, so the first
// quantile of every stratum equals exactly 1. The result is the shape
// used to redistribute a stratum's aggregate disease burden across
// exposure quantiles proportionally to relative risk.
func NormalizeDiseaseBurden(rr RelativeRiskTables) map[epi.Disease]*sparse.DenseArray {
	out := make(map[epi.Disease]*sparse.DenseArray, len(rr))
	for d, arr := range rr {
		nq := arr.Shape[2]
		norm := arr.Copy()
		for a := 0; a < NAgeClasses; a++ {
			for s := 0; s < NSexes; s++ {
				ref := arr.Get(a, s, 0)
				for k := 0; k < nq; k++ {
					norm.Set(arr.Get(a, s, k)/ref, a, s, k)
				}
			}
		}
		out[d] = norm
	}
	return out
}
