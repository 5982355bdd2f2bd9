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

// Package athim implements a comparative risk assessment of the health
// effects of changes in active travel (walking and cycling).
//
// The model converts per-stratum travel times into physical activity
// exposure distributions, maps them through disease-specific
// dose-response relative risk curves, and combines the result with
// baseline Global Burden of Disease statistics to estimate changes in
// deaths, years of life lost (YLL), years lived with disability (YLD),
// and disability-adjusted life years (DALYs) between a baseline and an
// alternative travel scenario.
//
// The pipeline runs strictly forward: travel parameters → exposure
// means → exposure quantiles → simulated total MET exposure → relative
// risks → attributable fractions → burden deltas. Each stage returns a
// new value; nothing is mutated in place, and nothing persists between
// comparisons.
package athim
