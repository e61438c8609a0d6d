package tableio

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fr4nk3nst1ner/paygrade/internal/client"
	"github.com/fr4nk3nst1ner/paygrade/internal/models"
)

// Format is a table file format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatHTML  Format = "html"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name given on the command line or in config
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "xlsm", "excel":
		return FormatExcel, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q (must be csv, xlsx, html or json)", s)
}

// FormatFromPath infers a format from a file extension
func FormatFromPath(p string) (Format, error) {
	ext := filepath.Ext(p)
	if ext == "" {
		return "", fmt.Errorf("cannot infer format of %q: no file extension", p)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension written for a format
func (f Format) Extension() string {
	return "." + string(f)
}

func formatFromContentType(ct string) (Format, bool) {
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", false
	}
	switch mediaType {
	case "text/csv", "application/csv":
		return FormatCSV, true
	case "text/html", "application/xhtml+xml":
		return FormatHTML, true
	case "application/json":
		return FormatJSON, true
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return FormatExcel, true
	}
	return "", false
}

// Decode reads a table in the given format
func Decode(f Format, r io.Reader) (models.SalaryTable, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r)
	case FormatExcel:
		return ReadExcel(r)
	case FormatHTML:
		return ReadHTML(r)
	case FormatJSON:
		return ReadJSON(r)
	}
	return models.SalaryTable{}, fmt.Errorf("unsupported format %q", f)
}

// IsRemote reports whether src is an http(s) URL
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load reads a table from a local path or an http(s) URL. Remote sources
// take their format from the URL path, falling back to the Content-Type.
func Load(src string, httpClient *http.Client) (models.SalaryTable, error) {
	if !IsRemote(src) {
		f, err := FormatFromPath(src)
		if err != nil {
			return models.SalaryTable{}, err
		}
		file, err := os.Open(src)
		if err != nil {
			return models.SalaryTable{}, err
		}
		defer file.Close()

		t, err := Decode(f, file)
		if err != nil {
			return models.SalaryTable{}, fmt.Errorf("%s: %w", src, err)
		}
		return t, nil
	}

	if httpClient == nil {
		httpClient = client.CreateHTTPClient("")
	}
	doc, err := client.Fetch(httpClient, src)
	if err != nil {
		return models.SalaryTable{}, err
	}

	f, err := remoteFormat(src, doc.ContentType)
	if err != nil {
		return models.SalaryTable{}, err
	}
	t, err := Decode(f, bytes.NewReader(doc.Body))
	if err != nil {
		return models.SalaryTable{}, fmt.Errorf("%s: %w", src, err)
	}
	return t, nil
}

func remoteFormat(rawURL, contentType string) (Format, error) {
	if u, err := url.Parse(rawURL); err == nil {
		if f, err := FormatFromPath(path.Base(u.Path)); err == nil {
			return f, nil
		}
	}
	if f, ok := formatFromContentType(contentType); ok {
		return f, nil
	}
	return "", fmt.Errorf("cannot infer format of %s (content type %q)", rawURL, contentType)
}

// SaveOptions controls what is written alongside a result table
type SaveOptions struct {
	Meta  Meta
	Input *models.SalaryTable // written as a second sheet by the Excel writer
	Sheet string              // first Excel sheet name, ResultSheet when empty
}

// Encode writes a result table in the given format
func Encode(w io.Writer, f Format, result models.SalaryTable, opts SaveOptions) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, result)
	case FormatExcel:
		sheet := opts.Sheet
		if sheet == "" {
			sheet = ResultSheet
		}
		return WriteExcelSheet(w, sheet, result, opts.Input)
	case FormatJSON:
		return WriteJSON(w, result, opts.Meta)
	}
	return fmt.Errorf("cannot write format %q", f)
}

// Save writes a result table to a file, creating parent directories
func Save(p string, f Format, result models.SalaryTable, opts SaveOptions) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	file, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := Encode(file, f, result, opts); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return file.Close()
}
