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
	"github.com/spatialmodel/athim/gbd"
)

// BurdenDeltas maps each burden measure and disease to a per-stratum
// scenario-minus-baseline burden change, shape [NAgeClasses, NSexes].
// Negative values are health benefits.
type BurdenDeltas map[gbd.BurdenType]map[epi.Disease]*sparse.DenseArray

// burdenDeltas computes, for one burden measure, the per-stratum
// burden change of every disease:
//
//  1. Look up the baseline burden from the supplied table.
//  2. Scale by (1−AF) on the scenario path; the baseline path is
//     unscaled, as the baseline's attributable fraction relative to
//     itself is zero.
//  3. Redistribute each path's aggregate value across exposure
//     quantiles in proportion to its normalized relative-risk shape
//     (divide by the shape sum for a per-quantile allocation factor,
//     multiply back through the shape), then recombine.
//  4. Difference the recombined paths.
//
// The per-quantile scenario-minus-baseline allocation is also
// returned, shape [NAgeClasses, NSexes, nQuantiles] per disease.
func burdenDeltas(table gbd.Table, bt gbd.BurdenType, af AttributableFraction,
	baseShape, scenShape map[epi.Disease]*sparse.DenseArray) (
	map[epi.Disease]*sparse.DenseArray, map[epi.Disease]*sparse.DenseArray, error) {

	deltas := make(map[epi.Disease]*sparse.DenseArray, len(af))
	deltaQ := make(map[epi.Disease]*sparse.DenseArray, len(af))
	for _, d := range epi.Diseases {
		bShape, sShape := baseShape[d], scenShape[d]
		nq := bShape.Shape[2]
		delta := sparse.ZerosDense(NAgeClasses, NSexes)
		dq := sparse.ZerosDense(NAgeClasses, NSexes, nq)
		for a := 0; a < NAgeClasses; a++ {
			for s := 0; s < NSexes; s++ {
				burden, err := table.Value(d, a+1, Sex(s), bt)
				if err != nil {
					return nil, nil, err
				}
				scenBurden := burden * (1 - af[d].Get(a, s))

				var bSum, sSum float64
				for k := 0; k < nq; k++ {
					bSum += bShape.Get(a, s, k)
					sSum += sShape.Get(a, s, k)
				}

				var total float64
				for k := 0; k < nq; k++ {
					basePart := burden / bSum * bShape.Get(a, s, k)
					scenPart := scenBurden / sSum * sShape.Get(a, s, k)
					dq.Set(scenPart-basePart, a, s, k)
					total += scenPart - basePart
				}
				delta.Set(total, a, s)
			}
		}
		deltas[d] = delta
		deltaQ[d] = dq
	}
	return deltas, deltaQ, nil
}
