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

// All input validation happens at construction time, before the numeric
// pipeline starts; the pipeline itself assumes validated inputs. An
// invalid input aborts the entire comparison. There is no partial or
// degraded result, and no error is ever converted to a numeric default.

// InputFormatError indicates malformed travel activity input: a
// stratum or age-class count mismatch, age classes out of order, or an
// unrecognized travel mode or sex.
type InputFormatError struct {
	Reason string
}

func (e InputFormatError) Error() string {
	return "athim: invalid input format: " + e.Reason
}

// ConfigurationError indicates an unrecognized configuration selector,
// such as a normalization mode, burden type, or disease filter.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "athim: invalid configuration: " + e.Reason
}

// NumericDomainError indicates a numeric parameter outside its valid
// domain, such as a quantile probability outside (0,1).
type NumericDomainError struct {
	Reason string
}

func (e NumericDomainError) Error() string {
	return "athim: numeric domain error: " + e.Reason
}
