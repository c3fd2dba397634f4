package csv

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnType is the inferred type of a column.
type ColumnType string

const (
	// Int64 columns hold only integers.
	Int64 ColumnType = "int64"

	// Float64 columns hold only numbers, at least one non-integer or missing.
	Float64 ColumnType = "float64"

	// Object columns hold anything else.
	Object ColumnType = "object"
)

// IsNumeric reports whether the column takes part in the statistical summary.
func (t ColumnType) IsNumeric() bool {
	return t == Int64 || t == Float64
}

// Column is one named column with its raw cells and parsed values.
// Empty cells are missing values.
type Column struct {
	Name   string
	Type   ColumnType
	cells  []string
	values []float64
}

func newColumn(name string, cells []string) Column {
	c := Column{Name: name, cells: cells}
	c.Type = inferType(cells)
	if c.Type.IsNumeric() {
		for _, cell := range cells {
			if cell == "" {
				continue
			}
			v, _ := strconv.ParseFloat(cell, 64)
			c.values = append(c.values, v)
		}
	}
	return c
}

// inferType returns int64 when every present cell is an integer, float64 when
// every present cell is a number, and object otherwise. An integer column with
// missing cells is float64. A column with no present cells is object.
func inferType(cells []string) ColumnType {
	present, missing := 0, false
	allInt, allNum := true, true

	for _, cell := range cells {
		if cell == "" {
			missing = true
			continue
		}
		present++
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allNum = false
		}
	}

	switch {
	case present == 0 || !allNum:
		return Object
	case allInt && !missing:
		return Int64
	default:
		return Float64
	}
}

func (c Column) describe() string {
	if !c.Type.IsNumeric() {
		return fmt.Sprintf("%d unique values", c.unique())
	}
	return fmt.Sprintf("range: %s to %s", c.formatValue(floats.Min(c.values)), c.formatValue(floats.Max(c.values)))
}

func (c Column) unique() int {
	seen := make(map[string]struct{})
	for _, cell := range c.cells {
		if cell != "" {
			seen[cell] = struct{}{}
		}
	}
	return len(seen)
}

// display returns the cell at row i as shown in the sample table.
func (c Column) display(i int) string {
	cell := c.cells[i]
	if cell == "" {
		return "NaN"
	}
	if c.Type == Float64 {
		v, _ := strconv.ParseFloat(cell, 64)
		return formatFloat(v)
	}
	return cell
}

func (c Column) formatValue(v float64) string {
	if c.Type == Int64 {
		return strconv.FormatInt(int64(v), 10)
	}
	return formatFloat(v)
}

// formatFloat prints a float with at least one decimal place.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eENI") {
		s += ".0"
	}
	return s
}

// Stats holds the descriptive statistics of a numeric column.
type Stats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe computes count, mean, sample standard deviation, min, quartiles and max.
// Quartiles use linear interpolation between closest ranks.
func Describe(values []float64) Stats {
	s := Stats{Count: len(values)}
	if s.Count == 0 {
		nan := math.NaN()
		return Stats{Mean: nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if s.Count > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean, s.Std = sorted[0], math.NaN()
	}

	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between the closest ranks of sorted, as
// numpy's default method does. stat.Quantile has no equivalent estimator.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// summary renders the statistics of numeric columns as a table with one
// row per statistic and one column per input column.
func summary(columns []Column) string {
	labels := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

	header := make([]string, 0, len(columns)+1)
	header = append(header, "")
	stats := make([]Stats, len(columns))
	for i, c := range columns {
		header = append(header, c.Name)
		stats[i] = Describe(c.values)
	}

	body := make([][]string, len(labels))
	for row, label := range labels {
		line := []string{label}
		for _, s := range stats {
			line = append(line, formatStat(s.field(row)))
		}
		body[row] = line
	}

	return alignRight(header, body)
}

func (s Stats) field(row int) float64 {
	return [...]float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max}[row]
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
