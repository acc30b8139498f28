package service

import (
	"fmt"
	"strings"

	"github.com/akashkendre1298/vastureports/model"
)

// Target is a fully-qualified upstream request for one report run
type Target struct {
	Kind   model.ReportKind
	Months model.MonthRange
	URL    string
}

// BuildTarget resolves {base}/api/{kind}/bymonth/{start}/{end}.
// An empty or unknown kind returns ErrNoReportTypeSelected.
func BuildTarget(baseURL string, kind model.ReportKind, months model.MonthRange) (Target, error) {
	if !kind.Valid() {
		return Target{}, ErrNoReportTypeSelected
	}

	url := fmt.Sprintf("%s/api/%s/bymonth/%d/%d",
		strings.TrimRight(baseURL, "/"), kind, months.Start, months.End)

	return Target{Kind: kind, Months: months, URL: url}, nil
}
