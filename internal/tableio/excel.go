package tableio

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

const (
	ResultSheet   = "Salary Structure"
	InputSheet    = "Input Data"
	TemplateSheet = "Template"
)

// ReadExcel parses the first worksheet of an xlsx workbook
func ReadExcel(r io.Reader) (models.SalaryTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.SalaryTable{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.SalaryTable{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return models.SalaryTable{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return models.SalaryTable{}, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return FromRecords(rows[0], rows[1:])
}

// WriteExcel writes result to a "Salary Structure" sheet and, when input is
// not nil, the original input to an "Input Data" sheet
func WriteExcel(w io.Writer, result models.SalaryTable, input *models.SalaryTable) error {
	return WriteExcelSheet(w, ResultSheet, result, input)
}

// WriteExcelSheet is WriteExcel with a caller-chosen name for the first sheet
func WriteExcelSheet(w io.Writer, sheet string, result models.SalaryTable, input *models.SalaryTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := writeSheet(f, sheet, result); err != nil {
		return err
	}

	if input != nil {
		if _, err := f.NewSheet(InputSheet); err != nil {
			return err
		}
		if err := writeSheet(f, InputSheet, *input); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, t models.SalaryTable) error {
	cols := t.OrderedColumns()

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = string(c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range t.Rows {
		values := make([]interface{}, len(cols))
		for i, c := range cols {
			if c == models.ColGrade {
				values[i] = row.Grade
				continue
			}
			v := row.Value(c)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				values[i] = nil
				continue
			}
			values[i] = v
		}
		cellName, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			return err
		}
	}
	return nil
}
