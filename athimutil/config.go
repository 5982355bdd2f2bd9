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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/sparse"
	"github.com/spatialmodel/athim"
	"github.com/spatialmodel/athim/epi"
)

// CompareConfig describes one baseline-versus-scenario comparison. It
// is decoded from a TOML file.
type CompareConfig struct {
	// BaselineTravelFile and ScenarioTravelFile are paths to
	// active-travel CSV files with the columns mode, ageclass, sex,
	// value.
	BaselineTravelFile, ScenarioTravelFile string

	// GBDFile is the path to the baseline burden table, either a
	// .csv file or a .xlsx workbook. GBDSheet optionally names the
	// workbook sheet to read.
	GBDFile, GBDSheet string

	// PopShareFile is an optional path to a CSV file with the
	// columns ageclass, sex, share giving each stratum's share of
	// the population. If empty, the population is assumed to be
	// evenly split across strata.
	PopShareFile string

	// BaselineNonTravelMET and ScenarioNonTravelMET are the
	// population-wide mean non-travel physical activity levels in
	// MET-hours/week.
	BaselineNonTravelMET, ScenarioNonTravelMET float64

	// OutputFile is the path the burden delta table is written to.
	// If empty, results are written to standard output.
	OutputFile string

	// Model constant overrides. Zero values take the model defaults,
	// except Seed, where 0 is a valid seed: it is a pointer so an
	// unset seed is distinguishable from a configured zero.
	CV            float64
	Quantiles     []float64
	SampleSize    int
	Seed          *uint64
	Normalization string
}

// ReadCompareConfig reads a comparison configuration from a TOML file.
func ReadCompareConfig(filename string) (*CompareConfig, error) {
	cc := new(CompareConfig)
	if _, err := toml.DecodeFile(filename, cc); err != nil {
		return nil, fmt.Errorf("athim: reading comparison configuration: %v", err)
	}
	if cc.BaselineTravelFile == "" || cc.ScenarioTravelFile == "" {
		return nil, fmt.Errorf("athim: comparison configuration must name BaselineTravelFile and ScenarioTravelFile")
	}
	if cc.GBDFile == "" {
		return nil, fmt.Errorf("athim: comparison configuration must name GBDFile")
	}
	return cc, nil
}

// ModelConfig builds the model constants for this comparison: the
// defaults with any configured overrides applied.
func (cc *CompareConfig) ModelConfig() *athim.Config {
	c := athim.DefaultConfig()
	if cc.CV != 0 {
		c.CV = cc.CV
	}
	if len(cc.Quantiles) != 0 {
		c.Quantiles = cc.Quantiles
	}
	if cc.SampleSize != 0 {
		c.SampleSize = cc.SampleSize
	}
	if cc.Seed != nil {
		c.Seed = *cc.Seed
	}
	if cc.Normalization != "" {
		c.Normalization = cc.Normalization
	}
	return c
}

// readPopShare reads per-stratum population shares from a CSV file
// with the columns ageclass, sex, share and a header row.
func readPopShare(filename string) (*sparse.DenseArray, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("athim: opening population share file: %v", err)
	}
	defer f.Close()
	lines, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("athim: reading population share file: %v", err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("athim: population share file %s has no data rows", filename)
	}
	share := sparse.ZerosDense(athim.NAgeClasses, athim.NSexes)
	for i, line := range lines[1:] { // Skip the header.
		rowNum := i + 2
		if len(line) != 3 {
			return nil, fmt.Errorf("athim: population share row %d has %d columns; want 3", rowNum, len(line))
		}
		age, err := strconv.Atoi(strings.TrimSpace(line[0]))
		if err != nil || age < 1 || age > athim.NAgeClasses {
			return nil, fmt.Errorf("athim: population share row %d: invalid age class %q", rowNum, line[0])
		}
		sex, ok := epi.ParseSex(strings.TrimSpace(line[1]))
		if !ok {
			return nil, fmt.Errorf("athim: population share row %d: unknown sex %q", rowNum, line[1])
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(line[2]), 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("athim: population share row %d: invalid share %q", rowNum, line[2])
		}
		share.Set(v, age-1, int(sex))
	}
	return share, nil
}
