package model

import (
	"fmt"
	"strings"
)

// ReportKind selects the upstream endpoint and the column schema of a report
type ReportKind string

const (
	KindClients    ReportKind = "clients"
	KindCases      ReportKind = "cases"
	KindExecutives ReportKind = "executives"
)

// ReportKinds lists the kinds in the order the report form shows them
var ReportKinds = []ReportKind{KindClients, KindCases, KindExecutives}

// ParseReportKind parses a kind name; the empty string yields an empty kind and no error
func ParseReportKind(s string) (ReportKind, error) {
	kind := ReportKind(strings.ToLower(strings.TrimSpace(s)))
	if kind == "" || kind.Valid() {
		return kind, nil
	}
	return "", fmt.Errorf("unknown report kind %q", s)
}

func (k ReportKind) Valid() bool {
	switch k {
	case KindClients, KindCases, KindExecutives:
		return true
	}
	return false
}

// Title returns the capitalized kind, used as the workbook sheet name
func (k ReportKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

func (k ReportKind) String() string {
	return string(k)
}

// OutputFormat is the encoding of the downloaded artifact
type OutputFormat string

const (
	FormatPDF  OutputFormat = "pdf"
	FormatXLSX OutputFormat = "xlsx"
)

// Formats lists the formats in the order the report form shows them
var Formats = []OutputFormat{FormatPDF, FormatXLSX}

// ParseOutputFormat parses a format name, defaulting to pdf when empty
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatXLSX:
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

func (f OutputFormat) String() string {
	return string(f)
}

func (f OutputFormat) Extension() string {
	return string(f)
}

func (f OutputFormat) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// MonthRange is the inclusive month filter sent to the upstream API.
// Start > End is passed through untouched.
type MonthRange struct {
	Start int `json:"start_month" validate:"required,min=1,max=12"`
	End   int `json:"end_month" validate:"required,min=1,max=12"`
}

// Selection is the resolved form state handed to a single report run
type Selection struct {
	Kind   ReportKind   `json:"report_kind" validate:"required,oneof=clients cases executives"`
	Months MonthRange   `json:"months"`
	Format OutputFormat `json:"format" validate:"required,oneof=pdf xlsx"`
}

// Filename returns the artifact name, e.g. clients_report.xlsx
func (s Selection) Filename() string {
	return ReportFilename(s.Kind, s.Format)
}

func ReportFilename(kind ReportKind, format OutputFormat) string {
	return fmt.Sprintf("%s_report.%s", kind, format.Extension())
}

// RawRecord is one object from the upstream "data" array
type RawRecord map[string]any

// SanitizedRecord is a RawRecord with the internal fields removed
type SanitizedRecord map[string]any

// Row holds one display value per column, in schema order.
// A nil value is an empty cell.
type Row []any

// Table is the encoder-independent form of a report
type Table struct {
	Kind    ReportKind
	Headers []string
	Rows    []Row
}

// Artifact is an encoded report ready for download
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}
