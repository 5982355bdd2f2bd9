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
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/stat/distuv"
)

// lognormalFromMoments returns the lognormal distribution whose mean
// and standard deviation match the given moments:
//
//	Mu    = ln(mean) − 0.5·ln(1+(sd/mean)²)
//	Sigma = √ln(1+(sd/mean)²)
//
// A mean below floor is raised to it before the log transform; see
// Config.MeanFloor for the policy.
func lognormalFromMoments(mean, sd, floor float64) distuv.LogNormal {
	if mean < floor {
		mean = floor
	}
	r := sd / mean
	v := math.Log(1 + r*r)
	return distuv.LogNormal{
		Mu:    math.Log(mean) - 0.5*v,
		Sigma: math.Sqrt(v),
	}
}

// Quantiles fits a lognormal distribution to the given mean and
// standard deviation by moment matching and evaluates its inverse CDF
// at each probability in probs. A mean below floor is raised to it
// before the log transform. Each probability must lie strictly between
// 0 and 1.
func Quantiles(mean, sd, floor float64, probs []float64) ([]float64, error) {
	for _, p := range probs {
		if p <= 0 || p >= 1 || math.IsNaN(p) {
			return nil, NumericDomainError{Reason: fmt.Sprintf(
				"quantile probability %g is outside (0,1)", p)}
		}
	}
	dist := lognormalFromMoments(mean, sd, floor)
	out := make([]float64, len(probs))
	for i, p := range probs {
		out[i] = dist.Quantile(p)
	}
	return out, nil
}

// TimeQuantiles holds per-stratum exposure-time quantile matrices,
// each with shape [NAgeClasses, NSexes, len(Config.Quantiles)].
type TimeQuantiles struct {
	// Walk, Cycle, and Active are walking, cycling, and total
	// active-transport time quantiles in minutes/week.
	Walk, Cycle, Active *sparse.DenseArray
}

// TimeQuantiles computes the exposure-time quantile matrices for the
// given exposure means. Each per-stratum distribution is a
// moment-matched lognormal with SD = CV × mean, except total
// active-transport time, which uses the ActiveTimeSD matrix.
func (c *Config) TimeQuantiles(m *ExposureMeans) (*TimeQuantiles, error) {
	walk, err := c.quantileMatrix(m.WalkTime, nil)
	if err != nil {
		return nil, err
	}
	cycle, err := c.quantileMatrix(m.CycleTime, nil)
	if err != nil {
		return nil, err
	}
	active, err := c.quantileMatrix(m.ActiveTime, m.ActiveTimeSD)
	if err != nil {
		return nil, err
	}
	return &TimeQuantiles{Walk: walk, Cycle: cycle, Active: active}, nil
}

// quantileMatrix computes the per-stratum lognormal quantiles of the
// given means. If sds is nil, each standard deviation is CV × mean.
func (c *Config) quantileMatrix(means, sds *sparse.DenseArray) (*sparse.DenseArray, error) {
	out := sparse.ZerosDense(NAgeClasses, NSexes, len(c.Quantiles))
	for a := 0; a < NAgeClasses; a++ {
		for s := 0; s < NSexes; s++ {
			mean := means.Get(a, s)
			sd := c.CV * mean
			if sds != nil {
				sd = sds.Get(a, s)
			}
			q, err := Quantiles(mean, sd, c.MeanFloor, c.Quantiles)
			if err != nil {
				return nil, err
			}
			for k, v := range q {
				out.Set(v, a, s, k)
			}
		}
	}
	return out, nil
}
