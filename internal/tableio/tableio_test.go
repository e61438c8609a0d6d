package tableio

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

const scenarioOneCSV = `Salary Grade,Minimum,Maximum,Notes
Analyst,"$50,000",70000,entry
Sr Analyst,60000,85K,

Manager IC,72000,"108,000",
`

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(scenarioOneCSV))
	require.NoError(t, err)

	assert.Equal(t, []models.Column{models.ColGrade, models.ColMinimum, models.ColMaximum}, tbl.Columns)
	assert.Equal(t, []string{"Analyst", "Sr Analyst", "Manager IC"}, tbl.Grades())
	assert.Equal(t, []float64{50000, 60000, 72000}, tbl.Series(models.ColMinimum))
	assert.Equal(t, []float64{70000, 85000, 108000}, tbl.Series(models.ColMaximum))
}

func TestReadCSVHeaderAliases(t *testing.T) {
	in := "grade, mid point differential %,SPREAD %\nA,,30\nB,10,30\n"
	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.True(t, tbl.Has(models.ColDifferential))
	assert.True(t, tbl.Has(models.ColSpread))
	assert.True(t, math.IsNaN(tbl.Rows[0].Differential))
	assert.Equal(t, 10.0, tbl.Rows[1].Differential)
}

func TestReadCSVWithoutGradeColumn(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Midpoint,Spread %\n50000,30\n55000,30\n"))
	require.NoError(t, err)
	assert.True(t, tbl.Has(models.ColGrade))
	assert.Equal(t, []string{"Grade 1", "Grade 2"}, tbl.Grades())
}

func TestReadCSVReportsBadCell(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Salary Grade,Minimum,Maximum\nA,fifty,70000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
	assert.Contains(t, err.Error(), "Minimum")
}

func TestReadCSVNoKnownColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	out, err := engine.FromMinimumsMaximums(mustCSV(t, "Salary Grade,Minimum,Maximum\nA,50000,70000\nB,60000,85000\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, out))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Salary Grade,Minimum,Midpoint,Maximum,Spread %,Range,Midpoint Differential %,Overlap %", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "A,50000,60000,70000,33.33"))
	assert.True(t, strings.HasSuffix(lines[1], ",20000,,0"))
	assert.Contains(t, lines[2], ",25000,20.8333")
	assert.True(t, strings.HasSuffix(lines[2], ",50"))
}

const gradeHTML = `<html><body>
<table id="nav"><tr><td>Home</td><td>About</td></tr></table>
<table>
  <thead><tr><th>Grade</th><th>Market Rate</th><th>Spread %</th></tr></thead>
  <tbody>
    <tr><td>Analyst</td><td>$48,000</td><td>30%</td></tr>
    <tr><td>Sr Analyst</td><td>$52,800</td><td>30%</td></tr>
    <tr><td>Manager <table><tr><td>ignored</td></tr></table></td><td>$58,080</td><td>35%</td></tr>
  </tbody>
</table>
</body></html>`

func TestReadHTML(t *testing.T) {
	tbl, err := ReadHTML(strings.NewReader(gradeHTML))
	require.NoError(t, err)

	require.Equal(t, 3, tbl.Len())
	assert.Equal(t, "Analyst", tbl.Rows[0].Grade)
	assert.Equal(t, []float64{48000, 52800, 58080}, tbl.Series(models.ColMarketRate))
	assert.Equal(t, []float64{30, 30, 35}, tbl.Series(models.ColSpread))
}

func TestReadHTMLWithoutTable(t *testing.T) {
	_, err := ReadHTML(strings.NewReader("<p>nothing here</p>"))
	assert.Error(t, err)
}

func TestExcelRoundTripKeepsBothSheets(t *testing.T) {
	in := mustCSV(t, "Salary Grade,Midpoint,Spread %\nA,50000,40\nB,55000,40\n")
	out, err := engine.FromSalaryMidpoints(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, out, &in))

	back, err := ReadExcel(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, out.Grades(), back.Grades())
	assert.InDeltaSlice(t, out.Series(models.ColMinimum), back.Series(models.ColMinimum), 1e-6)
	assert.InDeltaSlice(t, out.Series(models.ColOverlap), back.Series(models.ColOverlap), 1e-6)
	assert.True(t, math.IsNaN(back.Rows[0].Differential))
}

func TestEncodeExcelSheetName(t *testing.T) {
	tbl := mustCSV(t, "Salary Grade,Minimum,Maximum\nA,50000,70000\n")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatExcel, tbl, SaveOptions{Sheet: TemplateSheet}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{TemplateSheet}, f.GetSheetList())

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatExcel, tbl, SaveOptions{}))
	f2, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f2.Close()
	assert.Equal(t, []string{ResultSheet}, f2.GetSheetList())
}

func TestWriteJSON(t *testing.T) {
	out, err := engine.FromMinimumsMaximums(mustCSV(t, "Salary Grade,Minimum,Maximum\nA,50000,70000\nB,60000,85000\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	meta := Meta{Scenario: engine.MinimumsMaximums}
	require.NoError(t, WriteJSON(&buf, out, meta))

	var doc struct {
		RunID        string                   `json:"run_id"`
		Scenario     int                      `json:"scenario"`
		ScenarioName string                   `json:"scenario_name"`
		Rows         []map[string]interface{} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	_, err = uuid.Parse(doc.RunID)
	assert.NoError(t, err)
	assert.Equal(t, 1, doc.Scenario)
	assert.Equal(t, "Salary Minimums & Maximums", doc.ScenarioName)
	require.Len(t, doc.Rows, 2)
	assert.Nil(t, doc.Rows[0]["Midpoint Differential %"])
	assert.Equal(t, 72500.0, doc.Rows[1]["Midpoint"])

	// key order follows the table
	assert.Less(t, strings.Index(buf.String(), `"Minimum"`), strings.Index(buf.String(), `"Maximum"`))

	back, err := ReadJSON(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(out.Rows, back.Rows, cmpopts.EquateNaNs()))
}

func TestReadJSONArray(t *testing.T) {
	tbl, err := ReadJSON(strings.NewReader(`[{"Salary Grade":"A","Midpoint":50000,"Spread %":"30"},{"Salary Grade":"B","Midpoint":null,"Spread %":30}]`))
	require.NoError(t, err)
	assert.Equal(t, 50000.0, tbl.Rows[0].Midpoint)
	assert.True(t, math.IsNaN(tbl.Rows[1].Midpoint))
	assert.Equal(t, []float64{30, 30}, tbl.Series(models.ColSpread))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": FormatCSV, ".XLSX": FormatExcel, "htm": FormatHTML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xls")
	assert.Error(t, err)

	_, err = FormatFromPath("grades")
	assert.Error(t, err)
}

func TestLoadLocalAndSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(src, []byte(scenarioOneCSV), 0o644))

	in, err := Load(src, nil)
	require.NoError(t, err)
	out, err := engine.Compute(engine.MinimumsMaximums, in, engine.Params{})
	require.NoError(t, err)

	dst := filepath.Join(dir, "out", "result.json")
	require.NoError(t, Save(dst, FormatJSON, out, SaveOptions{Meta: Meta{Scenario: engine.MinimumsMaximums}}))

	back, err := Load(dst, nil)
	require.NoError(t, err)
	assert.Equal(t, out.Grades(), back.Grades())
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/grades.csv":
			_, _ = w.Write([]byte(scenarioOneCSV))
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(gradeHTML))
		}
	}))
	defer srv.Close()

	tbl, err := Load(srv.URL+"/grades.csv", srv.Client())
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())

	tbl, err = Load(srv.URL+"/benchmarks", srv.Client())
	require.NoError(t, err)
	assert.True(t, tbl.Has(models.ColMarketRate))
}

func mustCSV(t *testing.T, s string) models.SalaryTable {
	t.Helper()
	tbl, err := ReadCSV(strings.NewReader(s))
	require.NoError(t, err)
	return tbl
}
