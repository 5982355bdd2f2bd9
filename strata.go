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

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/athim/epi"
)

// Sex indexes the sex dimension of stratified arrays.
type Sex = epi.Sex

// Sex dimension values.
const (
	Male   = epi.Male
	Female = epi.Female
)

// NAgeClasses is the number of age classes in the population
// stratification. Age classes are numbered 1 through NAgeClasses and
// index the leading dimension of stratified arrays as ageClass-1.
const NAgeClasses = 8

// NSexes is the size of the sex dimension of stratified arrays.
const NSexes = 2

// checkStratified returns an error if arr is not a stratified array
// with the given trailing dimensions.
func checkStratified(name string, arr *sparse.DenseArray, trailing ...int) error {
	if arr == nil {
		return InputFormatError{Reason: name + " matrix is missing"}
	}
	want := append([]int{NAgeClasses, NSexes}, trailing...)
	if len(arr.Shape) != len(want) {
		return InputFormatError{Reason: fmt.Sprintf("%s matrix has %d dimensions; want %d",
			name, len(arr.Shape), len(want))}
	}
	for i, n := range want {
		if arr.Shape[i] != n {
			return InputFormatError{Reason: fmt.Sprintf("%s matrix has shape %v; want %v",
				name, arr.Shape, want)}
		}
	}
	return nil
}
