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

package gbd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spatialmodel/athim/epi"
	"github.com/tealeg/xlsx"
)

// burden tables use the columns disease, ageclass, sex, burdentype,
// value, in that order, with a header row.
const nColumns = 5

// ReadCSV reads a burden table from CSV data.
func ReadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	lines, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("gbd: reading burden table: %v", err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("gbd: burden table has no data rows")
	}
	t := make(Table)
	for i, line := range lines[1:] { // Skip the header.
		if err := t.addRow(line, i+2); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadXLSX reads a burden table from the named sheet of an Excel
// workbook. If sheet is empty, the first sheet in the workbook is
// used.
func ReadXLSX(fileName, sheet string) (Table, error) {
	f, err := xlsx.OpenFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("gbd: opening burden workbook: %v", err)
	}
	var s *xlsx.Sheet
	if sheet == "" {
		if len(f.Sheets) == 0 {
			return nil, fmt.Errorf("gbd: burden workbook %s has no sheets", fileName)
		}
		s = f.Sheets[0]
	} else {
		var ok bool
		s, ok = f.Sheet[sheet]
		if !ok {
			return nil, fmt.Errorf("gbd: burden workbook %s has no sheet %s", fileName, sheet)
		}
	}
	t := make(Table)
	for j := 1; j < s.MaxRow; j++ { // Skip the header.
		line := make([]string, nColumns)
		empty := true
		for i := 0; i < nColumns; i++ {
			line[i] = strings.TrimSpace(s.Cell(j, i).Value)
			if line[i] != "" {
				empty = false
			}
		}
		if empty {
			// Exported spreadsheets often carry blank trailing rows.
			continue
		}
		if err := t.addRow(line, j+1); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t Table) addRow(line []string, rowNum int) error {
	if len(line) != nColumns {
		return fmt.Errorf("gbd: burden table row %d has %d columns; want %d", rowNum, len(line), nColumns)
	}
	d, ok := epi.ParseDisease(strings.TrimSpace(line[0]))
	if !ok {
		return fmt.Errorf("gbd: burden table row %d: unknown disease %q", rowNum, line[0])
	}
	age, err := strconv.Atoi(strings.TrimSpace(line[1]))
	if err != nil {
		return fmt.Errorf("gbd: burden table row %d: invalid age class %q", rowNum, line[1])
	}
	sex, ok := epi.ParseSex(strings.TrimSpace(line[2]))
	if !ok {
		return fmt.Errorf("gbd: burden table row %d: unknown sex %q", rowNum, line[2])
	}
	bt, ok := ParseBurdenType(strings.TrimSpace(line[3]))
	if !ok {
		return fmt.Errorf("gbd: burden table row %d: unknown burden type %q", rowNum, line[3])
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(line[4]), 64)
	if err != nil {
		return fmt.Errorf("gbd: burden table row %d: invalid value %q", rowNum, line[4])
	}
	t[Key{Disease: d, AgeClass: age, Sex: sex, Type: bt}] = v
	return nil
}
