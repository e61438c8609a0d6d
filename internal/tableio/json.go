package tableio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

// Meta describes the calculation a result table came from
type Meta struct {
	Scenario engine.Scenario
	Params   engine.Params
}

// Export is the JSON document written for a result table
type Export struct {
	RunID        string        `json:"run_id"`
	Scenario     int           `json:"scenario"`
	ScenarioName string        `json:"scenario_name"`
	Params       engine.Params `json:"params"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Rows         []Record      `json:"rows"`
}

// Record is one row keyed by column name in display order. NaN values
// encode as null.
type Record struct {
	Columns []models.Column
	Row     models.GradeRow
}

// MarshalJSON keeps the column order of the table
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		if c == models.ColGrade {
			val, err := json.Marshal(r.Row.Grade)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
			continue
		}
		v := r.Row.Value(c)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewExport wraps a result table with a fresh run id
func NewExport(t models.SalaryTable, meta Meta) Export {
	cols := t.OrderedColumns()
	rows := make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = Record{Columns: cols, Row: r}
	}
	return Export{
		RunID:        uuid.NewString(),
		Scenario:     int(meta.Scenario),
		ScenarioName: meta.Scenario.String(),
		Params:       meta.Params,
		GeneratedAt:  time.Now().UTC(),
		Rows:         rows,
	}
}

// WriteJSON writes the result table as an indented JSON export
func WriteJSON(w io.Writer, t models.SalaryTable, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewExport(t, meta))
}

// ReadJSON accepts either a bare array of row objects or an export
// document with a "rows" array
func ReadJSON(r io.Reader) (models.SalaryTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.SalaryTable{}, err
	}

	var objects []map[string]interface{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &objects)
	} else {
		var doc struct {
			Rows []map[string]interface{} `json:"rows"`
		}
		err = json.Unmarshal(trimmed, &doc)
		objects = doc.Rows
	}
	if err != nil {
		return models.SalaryTable{}, fmt.Errorf("failed to decode JSON: %w", err)
	}

	// header is the union of keys; column order is irrelevant to FromRecords
	var header []string
	seen := make(map[string]int)
	for _, obj := range objects {
		for k := range obj {
			if _, ok := seen[k]; !ok {
				seen[k] = len(header)
				header = append(header, k)
			}
		}
	}

	records := make([][]string, len(objects))
	for i, obj := range objects {
		rec := make([]string, len(header))
		for k, v := range obj {
			rec[seen[k]] = jsonCell(v)
		}
		records[i] = rec
	}
	return FromRecords(header, records)
}

func jsonCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return fmt.Sprint(v)
}
