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
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/athim"
	"github.com/spatialmodel/athim/epi"
	"github.com/spatialmodel/athim/gbd"
	"github.com/spf13/cast"
)

// RunCompare runs the comparison described by the named configuration
// file and writes the burden delta table.
func RunCompare(cfgFile string) error {
	cc, err := ReadCompareConfig(cfgFile)
	if err != nil {
		return err
	}
	c := cc.ModelConfig()
	// Command-line flags take precedence over the configuration file.
	if compareCmd.Flags().Changed("seed") {
		c.Seed = cast.ToUint64(Cfg.Get("seed"))
	}
	if compareCmd.Flags().Changed("samplesize") {
		c.SampleSize = cast.ToInt(Cfg.Get("samplesize"))
	}

	log.WithField("config", cfgFile).Info("loading comparison inputs")

	baseline, err := readTravel(cc.BaselineTravelFile)
	if err != nil {
		return err
	}
	scenario, err := readTravel(cc.ScenarioTravelFile)
	if err != nil {
		return err
	}

	var popShare *sparse.DenseArray
	if cc.PopShareFile != "" {
		popShare, err = readPopShare(cc.PopShareFile)
		if err != nil {
			return err
		}
	}

	table, err := readBurdenTable(cc.GBDFile, cc.GBDSheet)
	if err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"samplesize": c.SampleSize,
		"seed":       c.Seed,
		"diseases":   len(epi.Diseases),
	}).Info("running comparative risk assessment")

	cmp, err := c.CompareModels(table,
		baseline.Scenario(popShare, cc.BaselineNonTravelMET),
		scenario.Scenario(popShare, cc.ScenarioNonTravelMET))
	if err != nil {
		return err
	}

	out := cc.OutputFile
	if o := Cfg.GetString("output"); o != "" {
		out = o
	}
	w := io.Writer(os.Stdout)
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("athim: creating output file: %v", err)
		}
		defer f.Close()
		w = f
	}
	if err := WriteComparison(w, cmp); err != nil {
		return err
	}

	daly, err := cmp.DeltaBurden("", "")
	if err != nil {
		return err
	}
	log.WithField("dalyDelta", daly).Info("comparison finished")
	return nil
}

func readTravel(filename string) (*athim.ActiveTravel, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("athim: opening active travel file: %v", err)
	}
	defer f.Close()
	return athim.ReadActiveTravel(f)
}

func readBurdenTable(filename, sheet string) (gbd.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		return gbd.ReadXLSX(filename, sheet)
	case ".csv":
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("athim: opening burden table: %v", err)
		}
		defer f.Close()
		return gbd.ReadCSV(f)
	default:
		return nil, fmt.Errorf("athim: burden table %s has unsupported extension %q", filename, ext)
	}
}

// WriteComparison writes the per-stratum burden delta table as CSV
// with the columns burdentype, disease, ageclass, sex, delta, followed
// by one total row per burden type.
func WriteComparison(w io.Writer, cmp *athim.Comparison) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"burdentype", "disease", "ageclass", "sex", "delta"}); err != nil {
		return err
	}
	for _, bt := range gbd.BurdenTypes {
		for _, d := range epi.Diseases {
			arr := cmp.Deltas[bt][d]
			for a := 0; a < athim.NAgeClasses; a++ {
				for s := 0; s < athim.NSexes; s++ {
					rec := []string{
						string(bt),
						d.String(),
						strconv.Itoa(a + 1),
						athim.Sex(s).String(),
						strconv.FormatFloat(arr.Get(a, s), 'g', -1, 64),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
			}
		}
		total, err := cmp.DeltaBurden(string(bt), athim.DiseaseAll)
		if err != nil {
			return err
		}
		rec := []string{string(bt), athim.DiseaseAll, "", "",
			strconv.FormatFloat(total, 'g', -1, 64)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
