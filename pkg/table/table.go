// Package table builds the two-column metric tables returned by every valuation.
package table

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Column headers shared by every result table.
const (
	ColumnMetric = "Métrica"
	ColumnValue  = "Valor"
)

// DisplayPlaces is the number of decimal places used when a value is rendered.
const DisplayPlaces = 2

// Row is a single metric name and its computed value.
type Row struct {
	Label string
	Value decimal.Decimal
}

// Table is an ordered, immutable sequence of rows under the columns
// ColumnMetric and ColumnValue.
type Table struct {
	rows []Row
}

// New pairs labels with values positionally. Both sequences must have the
// same length.
func New(labels []string, values []decimal.Decimal) (*Table, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("table: %d labels but %d values", len(labels), len(values))
	}
	rows := make([]Row, len(labels))
	for i, label := range labels {
		rows[i] = Row{Label: label, Value: values[i]}
	}
	return &Table{rows: rows}, nil
}

// Columns returns the two column headers.
func (t *Table) Columns() [2]string {
	return [2]string{ColumnMetric, ColumnValue}
}

// Rows returns a copy of the rows in table order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Labels returns the metric column.
func (t *Table) Labels() []string {
	out := make([]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Label
	}
	return out
}

// Values returns the value column.
func (t *Table) Values() []decimal.Decimal {
	out := make([]decimal.Decimal, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Value
	}
	return out
}

type jsonRow struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
}

type jsonTable struct {
	Columns [2]string `json:"columns"`
	Rows    []jsonRow `json:"rows"`
}

// MarshalJSON encodes the table with values fixed to DisplayPlaces.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := jsonTable{Columns: t.Columns(), Rows: make([]jsonRow, len(t.rows))}
	for i, r := range t.rows {
		out.Rows[i] = jsonRow{Metric: r.Label, Value: r.Value.StringFixed(DisplayPlaces)}
	}
	return json.Marshal(out)
}
