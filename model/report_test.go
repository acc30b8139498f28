package model

import (
	"testing"
)

func TestParseReportKind(t *testing.T) {
	tests := []struct {
		input   string
		want    ReportKind
		wantErr bool
	}{
		{"clients", KindClients, false},
		{" Cases ", KindCases, false},
		{"EXECUTIVES", KindExecutives, false},
		{"", "", false},
		{"vendors", "", true},
	}

	for _, tt := range tests {
		got, err := ParseReportKind(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseReportKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseReportKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestReportKindTitle(t *testing.T) {
	expected := map[ReportKind]string{
		KindClients:    "Clients",
		KindCases:      "Cases",
		KindExecutives: "Executives",
		"":             "",
	}
	for kind, want := range expected {
		if got := kind.Title(); got != want {
			t.Errorf("Expected title '%s' for %q, got '%s'", want, kind, got)
		}
	}
}

func TestParseOutputFormat(t *testing.T) {
	if f, err := ParseOutputFormat(""); err != nil || f != FormatPDF {
		t.Errorf("Expected empty format to default to pdf, got %q (%v)", f, err)
	}
	if f, err := ParseOutputFormat("XLSX"); err != nil || f != FormatXLSX {
		t.Errorf("Expected xlsx, got %q (%v)", f, err)
	}
	if _, err := ParseOutputFormat("csv"); err == nil {
		t.Error("Expected error for csv")
	}
}

func TestSelectionFilename(t *testing.T) {
	sel := Selection{Kind: KindClients, Months: MonthRange{Start: 1, End: 3}, Format: FormatXLSX}
	if sel.Filename() != "clients_report.xlsx" {
		t.Errorf("Expected clients_report.xlsx, got %s", sel.Filename())
	}
	if ReportFilename(KindCases, FormatPDF) != "cases_report.pdf" {
		t.Errorf("Expected cases_report.pdf, got %s", ReportFilename(KindCases, FormatPDF))
	}
}

func TestOutputFormatContentType(t *testing.T) {
	if FormatPDF.ContentType() != "application/pdf" {
		t.Errorf("Unexpected pdf content type %s", FormatPDF.ContentType())
	}
	if FormatXLSX.ContentType() != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Unexpected xlsx content type %s", FormatXLSX.ContentType())
	}
}
