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

// Package gbd provides access to baseline disease burden statistics
// from the Global Burden of Disease study. The burden table is an
// external input to the model: it is supplied, never computed.
package gbd

import (
	"fmt"

	"github.com/spatialmodel/athim/epi"
)

// BurdenType identifies a burden-of-disease measure.
type BurdenType string

// The four burden measures reported by the Global Burden of Disease
// study.
const (
	Deaths BurdenType = "deaths"
	YLL    BurdenType = "yll"
	YLD    BurdenType = "yld"
	DALY   BurdenType = "daly"
)

// BurdenTypes lists all burden measures in a fixed order.
var BurdenTypes = []BurdenType{Deaths, YLL, YLD, DALY}

// ParseBurdenType converts a string to a BurdenType.
func ParseBurdenType(s string) (BurdenType, bool) {
	for _, b := range BurdenTypes {
		if s == string(b) {
			return b, true
		}
	}
	return "", false
}

// Key identifies one burden value: a disease, a population stratum,
// and a burden measure. AgeClass is 1-based.
type Key struct {
	Disease  epi.Disease
	AgeClass int
	Sex      epi.Sex
	Type     BurdenType
}

// Table holds baseline burden values by disease, stratum, and burden
// measure.
type Table map[Key]float64

// MissingBurdenDataError reports a disease/stratum/burden-type
// combination absent from the supplied burden table.
type MissingBurdenDataError struct {
	Key Key
}

func (e MissingBurdenDataError) Error() string {
	return fmt.Sprintf("gbd: no burden data for disease %s, age class %d, sex %s, burden type %s",
		e.Key.Disease, e.Key.AgeClass, e.Key.Sex, e.Key.Type)
}

// Value returns the baseline burden for the given disease, 1-based age
// class, sex, and burden measure, or a MissingBurdenDataError if the
// table holds no such entry.
func (t Table) Value(d epi.Disease, ageClass int, sex epi.Sex, bt BurdenType) (float64, error) {
	k := Key{Disease: d, AgeClass: ageClass, Sex: sex, Type: bt}
	v, ok := t[k]
	if !ok {
		return 0, MissingBurdenDataError{Key: k}
	}
	return v, nil
}

// Validate checks that the table holds a value for every combination
// of the given diseases, age classes 1..nAgeClasses, both sexes, and
// all burden measures, returning a MissingBurdenDataError for the
// first missing combination.
func (t Table) Validate(diseases []epi.Disease, nAgeClasses int) error {
	for _, d := range diseases {
		for age := 1; age <= nAgeClasses; age++ {
			for _, sex := range []epi.Sex{epi.Male, epi.Female} {
				for _, bt := range BurdenTypes {
					if _, err := t.Value(d, age, sex, bt); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
