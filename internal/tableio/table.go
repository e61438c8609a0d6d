// Package tableio converts salary tables to and from the file formats a
// compensation analyst works with: CSV, Excel workbooks, HTML tables and
// JSON records.
package tableio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fr4nk3nst1ner/paygrade/internal/models"
	"github.com/fr4nk3nst1ner/paygrade/internal/utils"
)

// headerAliases maps normalized header text to columns
var headerAliases = make(map[string]models.Column)

func init() {
	for _, c := range models.AllColumns {
		headerAliases[utils.NormalizeHeader(string(c))] = c
	}
	extra := map[string]models.Column{
		"Grade":                  models.ColGrade,
		"Grade Name":             models.ColGrade,
		"Spread":                 models.ColSpread,
		"Range Spread %":         models.ColSpread,
		"Midpoint Differential":  models.ColDifferential,
		"Midpoint Progression %": models.ColDifferential,
		"Overlap":                models.ColOverlap,
		"Market":                 models.ColMarketRate,
	}
	for h, c := range extra {
		headerAliases[utils.NormalizeHeader(h)] = c
	}
}

// LookupColumn maps a header cell to a known column
func LookupColumn(header string) (models.Column, bool) {
	c, ok := headerAliases[utils.NormalizeHeader(header)]
	return c, ok
}

// FromRecords builds a table from a header row and data rows. Unknown
// headers are ignored, blank rows are skipped and a missing grade column
// produces "Grade N" names.
func FromRecords(header []string, records [][]string) (models.SalaryTable, error) {
	index := make(map[models.Column]int)
	for i, h := range header {
		c, ok := LookupColumn(h)
		if !ok {
			continue
		}
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}
	if len(index) == 0 {
		return models.SalaryTable{}, fmt.Errorf("no recognised columns in header %q", strings.Join(header, ","))
	}

	cols := []models.Column{models.ColGrade}
	for _, c := range models.AllColumns {
		if _, ok := index[c]; ok && c != models.ColGrade {
			cols = append(cols, c)
		}
	}

	var rows []models.GradeRow
	for n, rec := range records {
		if blank(rec) {
			continue
		}
		var row models.GradeRow
		if i, ok := index[models.ColGrade]; ok {
			row.Grade = strings.TrimSpace(cell(rec, i))
		}
		if row.Grade == "" {
			row.Grade = fmt.Sprintf("Grade %d", len(rows)+1)
		}
		for _, c := range cols[1:] {
			v, err := utils.ParseAmount(cell(rec, index[c]))
			if err != nil {
				return models.SalaryTable{}, fmt.Errorf("row %d, column %q: %w", n+1, c, err)
			}
			row.SetValue(c, v)
		}
		rows = append(rows, row)
	}

	return models.SalaryTable{Columns: cols, Rows: rows}, nil
}

// ToRecords renders a table as a header row and raw numeric cells, NaN as
// an empty cell
func ToRecords(t models.SalaryTable) ([]string, [][]string) {
	cols := t.OrderedColumns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}

	records := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rec := make([]string, len(cols))
		for i, c := range cols {
			if c == models.ColGrade {
				rec[i] = row.Grade
				continue
			}
			rec[i] = formatNumber(row.Value(c))
		}
		records[r] = rec
	}
	return header, records
}

func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
