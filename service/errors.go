package service

import "errors"

var (
	// ErrNoReportTypeSelected is returned before any network call when a run has no report kind
	ErrNoReportTypeSelected = errors.New("no report type selected")
	// ErrMalformedResponse means the upstream body is missing or has no "data" array
	ErrMalformedResponse = errors.New("malformed response")
	// ErrNetworkFailure covers transport errors and bodies that are not JSON
	ErrNetworkFailure = errors.New("network failure")
	// ErrInvalidSelection wraps validation failures of a run selection
	ErrInvalidSelection = errors.New("invalid report selection")
	// ErrUnsupportedFormat is returned by Export for an unknown output format
	ErrUnsupportedFormat = errors.New("unsupported output format")
)
