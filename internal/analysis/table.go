package analysis

import (
	"time"

	"github.com/newthinker/tickr/internal/indicator"
)

// Indicator column names
const (
	SMA20       = "SMA_20"
	SMA50       = "SMA_50"
	SMA200      = "SMA_200"
	RSI14       = "RSI_14"
	MACD        = "MACD"
	SignalLine  = "Signal_Line"
	BBUpper     = "BB_upper"
	BBMiddle    = "BB_middle"
	BBLower     = "BB_lower"
	VolumeSMA20 = "Volume_SMA_20"
	VolumeRatio = "Volume_Ratio"
)

// columnOrder is the fixed presentation order of the indicator columns.
var columnOrder = []string{
	SMA20, SMA50, SMA200,
	RSI14,
	MACD, SignalLine,
	BBUpper, BBMiddle, BBLower,
	VolumeSMA20, VolumeRatio,
}

// Table holds indicator columns aligned index-for-index with a price history.
// A Table is built once by Compute and never modified afterwards; accessors
// hand out copies.
type Table struct {
	times   []time.Time
	columns map[string][]float64
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.times)
}

// Names returns the indicator names in presentation order.
func (t *Table) Names() []string {
	names := make([]string, len(columnOrder))
	copy(names, columnOrder)
	return names
}

// Times returns the row timestamps.
func (t *Table) Times() []time.Time {
	out := make([]time.Time, len(t.times))
	copy(out, t.times)
	return out
}

// Column returns a copy of the named column. Undefined positions hold
// indicator.Undefined.
func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, true
}

// At returns the value of an indicator at row i. ok is false when the name is
// unknown, i is out of range, or the value is undefined.
func (t *Table) At(name string, i int) (float64, bool) {
	col, ok := t.columns[name]
	if !ok || i < 0 || i >= len(col) {
		return 0, false
	}
	v := col[i]
	if !indicator.IsDefined(v) {
		return 0, false
	}
	return v, true
}

// Row returns a snapshot of every indicator at row i.
func (t *Table) Row(i int) Row {
	values := make(map[string]float64, len(t.columns))
	for name, col := range t.columns {
		if i >= 0 && i < len(col) && indicator.IsDefined(col[i]) {
			values[name] = col[i]
		}
	}
	row := Row{Index: i, values: values}
	if i >= 0 && i < len(t.times) {
		row.Time = t.times[i]
	}
	return row
}

// Latest returns the snapshot at the most recent row.
func (t *Table) Latest() Row {
	return t.Row(t.Len() - 1)
}

// Row is the set of defined indicator values at one index.
type Row struct {
	Index  int
	Time   time.Time
	values map[string]float64
}

// NewRow builds a row from explicit values; names absent from values are
// treated as undefined.
func NewRow(values map[string]float64) Row {
	copied := make(map[string]float64, len(values))
	for k, v := range values {
		if indicator.IsDefined(v) {
			copied[k] = v
		}
	}
	return Row{values: copied}
}

// Get returns the named value and whether it is defined.
func (r Row) Get(name string) (float64, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Nullable returns every indicator in presentation order with nil for
// undefined values, ready for JSON encoding.
func (r Row) Nullable() map[string]*float64 {
	out := make(map[string]*float64, len(columnOrder))
	for _, name := range columnOrder {
		if v, ok := r.values[name]; ok {
			out[name] = &v
		} else {
			out[name] = nil
		}
	}
	return out
}
