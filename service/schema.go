package service

import "github.com/akashkendre1298/vastureports/model"

// Column binds a header label to the record field it is read from.
// Date columns are formatted rather than copied.
type Column struct {
	Header string
	Field  string
	Date   bool
}

var schemas = map[model.ReportKind][]Column{
	model.KindClients: {
		{Header: "First Name", Field: "firstName"},
		{Header: "Last Name", Field: "lastName"},
		{Header: "Email", Field: "email"},
		{Header: "Address", Field: "address"},
		{Header: "City", Field: "city"},
		{Header: "Phone Number", Field: "phoneNumber"},
		// upstream spelling, keep in sync with the records API
		{Header: "Reference", Field: "refrance"},
		{Header: "Date", Field: "date", Date: true},
	},
	model.KindCases: {
		{Header: "Case Label", Field: "caseLabel"},
		{Header: "Client", Field: "client"},
		{Header: "Executive", Field: "executive"},
		{Header: "Issues", Field: "issues"},
		{Header: "Payment", Field: "payment"},
		{Header: "Contact Number", Field: "contactNumber"},
		{Header: "Date", Field: "date", Date: true},
		{Header: "Status", Field: "status"},
	},
	model.KindExecutives: {
		{Header: "First Name", Field: "firstName"},
		{Header: "Last Name", Field: "lastName"},
		{Header: "Email", Field: "email"},
		{Header: "Phone Number", Field: "phoneNumber"},
		{Header: "Address", Field: "address"},
		{Header: "City", Field: "city"},
		{Header: "Date", Field: "date", Date: true},
	},
}

// Schema returns the ordered columns of kind
func Schema(kind model.ReportKind) ([]Column, bool) {
	cols, ok := schemas[kind]
	if !ok {
		return nil, false
	}
	out := make([]Column, len(cols))
	copy(out, cols)
	return out, true
}

// Headers returns the column labels of kind, nil for an unknown kind
func Headers(kind model.ReportKind) []string {
	cols := schemas[kind]
	if cols == nil {
		return nil
	}
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	return headers
}
