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
	"os"
	"path/filepath"
	"testing"
)

func TestReadCompareConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "compare.toml")
	cfg := `
BaselineTravelFile = "baseline.csv"
ScenarioTravelFile = "scenario.csv"
GBDFile = "burden.csv"
BaselineNonTravelMET = 8.0
ScenarioNonTravelMET = 8.0
SampleSize = 5000
Seed = 7
Normalization = "referent"
`
	if err := os.WriteFile(cfgFile, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	cc, err := ReadCompareConfig(cfgFile)
	if err != nil {
		t.Fatal(err)
	}
	if cc.BaselineTravelFile != "baseline.csv" || cc.GBDFile != "burden.csv" {
		t.Errorf("unexpected file paths: %+v", cc)
	}

	c := cc.ModelConfig()
	if c.SampleSize != 5000 {
		t.Errorf("sample size = %d, want 5000", c.SampleSize)
	}
	if c.Seed != 7 {
		t.Errorf("seed = %d, want 7", c.Seed)
	}
	if c.Normalization != "referent" {
		t.Errorf("normalization = %q, want referent", c.Normalization)
	}
	// Unset values keep the model defaults.
	if c.CV != 1.0 {
		t.Errorf("CV = %g, want the default 1.0", c.CV)
	}
	if len(c.Quantiles) != 5 {
		t.Errorf("got %d quantiles, want the default 5", len(c.Quantiles))
	}
}

func TestSeedOverride(t *testing.T) {
	base := `
BaselineTravelFile = "baseline.csv"
ScenarioTravelFile = "scenario.csv"
GBDFile = "burden.csv"
`
	var tests = []struct {
		name, extra string
		want        uint64
	}{
		{"unset keeps the default", "", 1},
		{"zero is a valid seed", "Seed = 0\n", 0},
		{"nonzero override", "Seed = 42\n", 42},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfgFile := filepath.Join(t.TempDir(), "compare.toml")
			if err := os.WriteFile(cfgFile, []byte(base+test.extra), 0o644); err != nil {
				t.Fatal(err)
			}
			cc, err := ReadCompareConfig(cfgFile)
			if err != nil {
				t.Fatal(err)
			}
			if got := cc.ModelConfig().Seed; got != test.want {
				t.Errorf("seed = %d, want %d", got, test.want)
			}
		})
	}
}

func TestReadCompareConfigMissingFields(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "compare.toml")
	if err := os.WriteFile(cfgFile, []byte(`GBDFile = "burden.csv"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCompareConfig(cfgFile); err == nil {
		t.Error("expected an error for missing travel files")
	}
}

func TestReadPopShare(t *testing.T) {
	dir := t.TempDir()
	shareFile := filepath.Join(dir, "popshare.csv")
	data := "ageclass,sex,share\n1,M,0.5\n1,F,0.5\n"
	if err := os.WriteFile(shareFile, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	share, err := readPopShare(shareFile)
	if err != nil {
		t.Fatal(err)
	}
	if got := share.Get(0, 0); got != 0.5 {
		t.Errorf("share(1,M) = %g, want 0.5", got)
	}
	if got := share.Get(1, 0); got != 0 {
		t.Errorf("share(2,M) = %g, want 0", got)
	}
}
