package tableio

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

// ReadHTML extracts the first table of an HTML document that has at least
// one recognised column. The first row supplies the header cells.
func ReadHTML(r io.Reader) (models.SalaryTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return models.SalaryTable{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return models.SalaryTable{}, fmt.Errorf("no <table> element found")
	}

	var lastErr error
	for i := 0; i < tables.Length(); i++ {
		header, records := tableCells(tables.Eq(i))
		if len(header) == 0 {
			continue
		}
		t, err := FromRecords(header, records)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no table with a header row found")
	}
	return models.SalaryTable{}, lastErr
}

func tableCells(table *goquery.Selection) ([]string, [][]string) {
	var header []string
	var records [][]string

	// nested tables are ignored
	table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(table)
	}).Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Children().Filter("th, td").Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(c.Text()))
		})
		if len(cells) == 0 {
			return
		}
		if header == nil {
			header = cells
			return
		}
		records = append(records, cells)
	})
	return header, records
}
