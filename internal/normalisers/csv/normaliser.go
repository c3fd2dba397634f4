// Package csv renders tabular uploads as a descriptive text summary
// rather than a raw dump, so that retrieval sees schema and statistics.
package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// sampleRows is the number of rows shown in the sample table.
const sampleRows = 5

// Normaliser handles comma-separated tabular files.
type Normaliser struct{}

// New creates a new CSV normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".csv"}
}

// Normalise parses the table and renders its summary.
// Malformed input (no header, ragged rows, bad quoting) fails with domain.ErrExtraction.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	data, err := raw.Bytes()
	if err != nil {
		return nil, err
	}

	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtraction, raw.Filename, err)
	}

	return &driven.NormaliseResult{
		Document: domain.Document{
			Filename: raw.Filename,
			FileType: raw.Extension(),
			Content:  table.Render(),
			Metadata: map[string]string{
				"rows":    fmt.Sprint(len(table.Rows)),
				"columns": fmt.Sprint(len(table.Columns)),
			},
			CreatedAt: time.Now(),
		},
	}, nil
}

// Table is a parsed CSV file with inferred column types.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Parse reads CSV data whose first record is the header.
func Parse(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}

	columns := make([]Column, len(header))
	for i, name := range header {
		cells := make([]string, len(rows))
		for j, row := range rows {
			cells[j] = strings.TrimSpace(row[i])
		}
		columns[i] = newColumn(strings.TrimSpace(name), cells)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

// Render produces the dataset description, sample rows and numeric summary.
func (t *Table) Render() string {
	var b strings.Builder

	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}

	b.WriteString("Dataset Information:\n")
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Shape: %d rows, %d columns\n\n", len(t.Rows), len(t.Columns))

	b.WriteString("Column Descriptions:\n")
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "- %s: %s, %s\n", c.Name, c.Type, c.describe())
	}

	b.WriteString("\nSample Data (first 5 rows):\n")
	b.WriteString(t.sample())

	var numeric []Column
	for _, c := range t.Columns {
		if c.Type.IsNumeric() {
			numeric = append(numeric, c)
		}
	}
	if len(numeric) > 0 {
		b.WriteString("\n\nStatistical Summary:\n")
		b.WriteString(summary(numeric))
	}

	return b.String()
}

func (t *Table) sample() string {
	n := min(sampleRows, len(t.Rows))

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "")
	for _, c := range t.Columns {
		header = append(header, c.Name)
	}

	body := make([][]string, n)
	for i := range n {
		line := make([]string, 0, len(t.Columns)+1)
		line = append(line, fmt.Sprint(i))
		for _, c := range t.Columns {
			line = append(line, c.display(i))
		}
		body[i] = line
	}

	return alignRight(header, body)
}

// alignRight lays out cells in right-aligned columns separated by two spaces.
func alignRight(header []string, body [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, line := range body {
		for i, cell := range line {
			widths[i] = max(widths[i], len([]rune(cell)))
		}
	}

	format := func(line []string) string {
		parts := make([]string, len(line))
		for i, cell := range line {
			parts[i] = strings.Repeat(" ", widths[i]-len([]rune(cell))) + cell
		}
		return strings.Join(parts, "  ")
	}

	lines := make([]string, 0, len(body)+1)
	lines = append(lines, format(header))
	for _, line := range body {
		lines = append(lines, format(line))
	}
	return strings.Join(lines, "\n")
}
