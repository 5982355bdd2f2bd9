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
	"runtime"
	"sort"
	"sync"

	"github.com/ctessum/sparse"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

// TotalMET simulates the total MET exposure distribution for each
// stratum and returns its quantiles as a
// [NAgeClasses, NSexes, len(Config.Quantiles)] array in MET-hours/week.
//
// Total exposure is the sum of active-transport MET and non-travel MET.
// Both addends are lognormal, but their sum has no closed form, so the
// sum is simulated: Config.SampleSize independent draws are taken from
// each per-stratum distribution, paired draws are summed, and empirical
// sample quantiles are taken at the configured probabilities. The
// active-transport draw is a travel time in minutes/week, converted to
// MET-hours/week through the stratum's walking/cycling time split and
// the walking and cycling MET intensities.
//
// Stratum i draws from a source seeded with Config.Seed+i, so results
// for a given seed and sample size do not depend on scheduling and are
// reproducible. Quantiles below Config.ExposureFloor are raised to it.
//
// Strata are simulated in parallel by a worker pool; the sampling here
// dominates the cost of a comparison.
func (c *Config) TotalMET(m *ExposureMeans) (*sparse.DenseArray, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := sparse.ZerosDense(NAgeClasses, NSexes, len(c.Quantiles))

	nprocs := runtime.GOMAXPROCS(-1)
	jobChan := make(chan int, NAgeClasses*NSexes)
	var wg sync.WaitGroup
	for p := 0; p < nprocs; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				a, s := job/NSexes, job%NSexes
				q := c.simulateStratum(m, a, s, c.Seed+uint64(job))
				for k, v := range q {
					out.Set(v, a, s, k)
				}
			}
		}()
	}
	for job := 0; job < NAgeClasses*NSexes; job++ {
		jobChan <- job
	}
	close(jobChan)
	wg.Wait()
	return out, nil
}

// simulateStratum draws the total MET exposure sample for one stratum
// and returns its quantiles.
func (c *Config) simulateStratum(m *ExposureMeans, a, s int, seed uint64) []float64 {
	src := rand.NewSource(seed)

	activeMean := m.ActiveTime.Get(a, s)
	activeDist := lognormalFromMoments(activeMean, m.ActiveTimeSD.Get(a, s), c.MeanFloor)
	activeDist.Src = src

	ntMean := m.NonTravelMET.Get(a, s)
	ntDist := lognormalFromMoments(ntMean, c.CV*ntMean, c.MeanFloor)
	ntDist.Src = src

	// MET-hours per minute of active transport, given the stratum's
	// time split between walking and cycling.
	pWalk := m.PropWalk.Get(a, s)
	metPerMin := (pWalk*c.WalkMET + (1-pWalk)*c.CycleMET) / 60

	total := make([]float64, c.SampleSize)
	for i := range total {
		total[i] = activeDist.Rand()*metPerMin + ntDist.Rand()
	}
	sort.Float64s(total)

	q := make([]float64, len(c.Quantiles))
	for k, p := range c.Quantiles {
		v := stat.Quantile(p, stat.Empirical, total, nil)
		if v < c.ExposureFloor {
			v = c.ExposureFloor
		}
		q[k] = v
	}
	return q
}
