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
)

// Normalization modes for converting per-stratum relative travel-time
// weights into per-stratum means.
const (
	// NormalizationOverall scales the population mean by each
	// stratum's weight divided by the population-share-weighted
	// average weight, so the population-wide mean is preserved.
	NormalizationOverall = "overall"

	// NormalizationReferent multiplies the population mean directly
	// by each stratum's weight, with no renormalization.
	NormalizationReferent = "referent"
)

// Config holds the model constants for a comparative risk assessment.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	// CV is the coefficient of variation relating each exposure
	// standard deviation to its mean (SD = CV × mean). Standard
	// deviations are always derived this way, never supplied.
	CV float64

	// Quantiles is the ordered set of probability points at which
	// exposure distributions are evaluated. Every quantile matrix
	// in the pipeline shares this cardinality and ordering. Each
	// value must lie strictly between 0 and 1.
	Quantiles []float64

	// SampleSize is the number of Monte-Carlo draws per stratum
	// used to combine travel and non-travel activity into a total
	// MET exposure distribution.
	SampleSize int

	// Seed seeds the Monte-Carlo random sources. Comparisons with
	// equal Seed and SampleSize are reproducible.
	Seed uint64

	// WalkMET and CycleMET are the activity intensities of walking
	// and cycling in metabolic equivalents of task (METs). These
	// are policy constants from the physical activity compendium,
	// not calibrated values.
	WalkMET, CycleMET float64

	// Exponent is the dose-response extrapolation exponent k: a
	// literature relative risk RRlit observed at exposure Elit is
	// converted to the per-unit-exposure constant
	// RR₁ = RRlit^((1/Elit)^k) and evaluated at exposure x as
	// RR(x) = RR₁^(x^k).
	Exponent float64

	// Normalization selects how per-stratum relative weights are
	// converted to per-stratum means; either NormalizationOverall
	// or NormalizationReferent.
	Normalization string

	// ExposureFloor is the minimum total MET exposure in
	// MET-hours/week. Simulated exposure quantiles below this value
	// are raised to it so that dose-response inputs are always
	// positive.
	ExposureFloor float64

	// MeanFloor is the minimum exposure mean. A zero mean cannot be
	// log-transformed, so means below this floor are raised to it
	// before lognormal moment matching. This flooring is policy:
	// a zero mean is a valid input describing an (almost) inactive
	// stratum, not an error.
	MeanFloor float64
}

// DefaultConfig returns the model constants used by the published
// model runs.
func DefaultConfig() *Config {
	return &Config{
		CV:            1.0,
		Quantiles:     []float64{0.1, 0.3, 0.5, 0.7, 0.9},
		SampleSize:    100000,
		Seed:          1,
		WalkMET:       4.5,
		CycleMET:      6.0,
		Exponent:      0.5,
		Normalization: NormalizationOverall,
		ExposureFloor: 0.1,
		MeanFloor:     1e-6,
	}
}

// Validate checks the configuration, returning a ConfigurationError or
// NumericDomainError describing the first problem found.
func (c *Config) Validate() error {
	switch c.Normalization {
	case NormalizationOverall, NormalizationReferent:
	default:
		return ConfigurationError{Reason: fmt.Sprintf(
			"unknown normalization mode %q; want %q or %q",
			c.Normalization, NormalizationOverall, NormalizationReferent)}
	}
	if len(c.Quantiles) == 0 {
		return ConfigurationError{Reason: "no quantiles specified"}
	}
	for i, p := range c.Quantiles {
		if p <= 0 || p >= 1 || math.IsNaN(p) {
			return NumericDomainError{Reason: fmt.Sprintf(
				"quantile probability %g is outside (0,1)", p)}
		}
		if i > 0 && p <= c.Quantiles[i-1] {
			return ConfigurationError{Reason: "quantile probabilities must be strictly increasing"}
		}
	}
	if c.SampleSize < 1 {
		return ConfigurationError{Reason: fmt.Sprintf("sample size %d is less than 1", c.SampleSize)}
	}
	if c.CV <= 0 {
		return NumericDomainError{Reason: fmt.Sprintf("coefficient of variation %g must be positive", c.CV)}
	}
	if c.Exponent <= 0 {
		return NumericDomainError{Reason: fmt.Sprintf("extrapolation exponent %g must be positive", c.Exponent)}
	}
	if c.ExposureFloor <= 0 || c.MeanFloor <= 0 {
		return NumericDomainError{Reason: "exposure and mean floors must be positive"}
	}
	return nil
}
