package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akashkendre1298/vastureports/model"
)

// InvalidDate is the cell text for a date value that cannot be parsed
const InvalidDate = "Invalid Date"

var dateLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", false},
}

// DateFormatter renders record dates as calendar dates in a single display locale
type DateFormatter struct {
	loc    *time.Location
	layout string
}

func NewDateFormatter(timezone, layout string) (*DateFormatter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	if layout == "" {
		layout = "1/2/2006"
	}
	return &DateFormatter{loc: loc, layout: layout}, nil
}

// DefaultDateFormatter formats M/D/YYYY in UTC
func DefaultDateFormatter() *DateFormatter {
	return &DateFormatter{loc: time.UTC, layout: "1/2/2006"}
}

// Format returns nil for a missing value, InvalidDate for an unparseable one
func (f *DateFormatter) Format(v any) any {
	var t time.Time

	switch val := v.(type) {
	case nil:
		return nil
	case string:
		parsed, ok := f.parse(strings.TrimSpace(val))
		if !ok {
			return InvalidDate
		}
		t = parsed
	case float64:
		t = time.UnixMilli(int64(val))
	case int64:
		t = time.UnixMilli(val)
	case int:
		t = time.UnixMilli(int64(val))
	case time.Time:
		t = val
	default:
		return InvalidDate
	}

	return t.In(f.loc).Format(f.layout)
}

func (f *DateFormatter) parse(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		var (
			t   time.Time
			err error
		)
		if l.zoned {
			t, err = time.Parse(l.layout, s)
		} else {
			t, err = time.ParseInLocation(l.layout, s, f.loc)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Project maps sanitized records onto the column schema of kind.
// Missing fields become nil cells; the row count always equals len(records).
func Project(kind model.ReportKind, records []model.SanitizedRecord, dates *DateFormatter) (model.Table, error) {
	cols, ok := Schema(kind)
	if !ok {
		return model.Table{}, ErrNoReportTypeSelected
	}
	if dates == nil {
		dates = DefaultDateFormatter()
	}

	table := model.Table{
		Kind:    kind,
		Headers: Headers(kind),
		Rows:    make([]model.Row, len(records)),
	}

	for i, rec := range records {
		row := make(model.Row, len(cols))
		for j, col := range cols {
			if col.Date {
				row[j] = dates.Format(rec[col.Field])
				continue
			}
			row[j] = cellValue(rec[col.Field])
		}
		table.Rows[i] = row
	}

	return table, nil
}

// cellValue keeps JSON scalars as they are and flattens composites for display
func cellValue(v any) any {
	switch val := v.(type) {
	case nil, string, bool, float64, float32, int, int32, int64:
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = DisplayString(cellValue(item))
		}
		return strings.Join(parts, ",")
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// DisplayString renders a cell as text; nil is the empty string
func DisplayString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
