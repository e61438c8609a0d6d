package tableio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

// ReadCSV parses a CSV document whose first record is the header
func ReadCSV(r io.Reader) (models.SalaryTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return models.SalaryTable{}, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return models.SalaryTable{}, fmt.Errorf("failed to read CSV rows: %w", err)
	}
	return FromRecords(header, records)
}

// WriteCSV writes the table's present columns as CSV
func WriteCSV(w io.Writer, t models.SalaryTable) error {
	header, records := ToRecords(t)

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return writer.Error()
}
