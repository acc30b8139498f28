package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/akashkendre1298/vastureports/config"
	"github.com/akashkendre1298/vastureports/model"
)

type fakeFetcher struct {
	records []model.RawRecord
	err     error
	calls   int
	targets []Target
}

func (f *fakeFetcher) BaseURL() string { return "https://records.test" }

func (f *fakeFetcher) FetchRecords(_ context.Context, target Target) ([]model.RawRecord, error) {
	f.calls++
	f.targets = append(f.targets, target)
	return f.records, f.err
}

func selection(kind model.ReportKind, format model.OutputFormat) model.Selection {
	return model.Selection{
		Kind:   kind,
		Months: model.MonthRange{Start: 1, End: 3},
		Format: format,
	}
}

func TestReportServiceRunWithoutKind(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := NewReportService(fetcher, nil, nil)

	artifact, err := svc.Run(context.Background(), selection("", model.FormatPDF))
	assert.ErrorIs(t, err, ErrNoReportTypeSelected)
	assert.Nil(t, artifact)
	assert.Zero(t, fetcher.calls, "no request should be issued without a report kind")
}

func TestReportServiceRunInvalidMonths(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := NewReportService(fetcher, nil, nil)

	sel := selection(model.KindClients, model.FormatXLSX)
	sel.Months = model.MonthRange{Start: 0, End: 13}

	_, err := svc.Run(context.Background(), sel)
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Zero(t, fetcher.calls)
}

func TestReportServiceRunInvertedRange(t *testing.T) {
	fetcher := &fakeFetcher{records: []model.RawRecord{}}
	svc := NewReportService(fetcher, nil, nil)

	sel := selection(model.KindCases, model.FormatPDF)
	sel.Months = model.MonthRange{Start: 11, End: 2}

	_, err := svc.Run(context.Background(), sel)
	require.NoError(t, err)
	require.Len(t, fetcher.targets, 1)
	assert.Equal(t, "https://records.test/api/cases/bymonth/11/2", fetcher.targets[0].URL)
}

func TestReportServiceRunDefaultsToPDF(t *testing.T) {
	fetcher := &fakeFetcher{records: []model.RawRecord{{"firstName": "Ravi"}}}
	svc := NewReportService(fetcher, nil, nil)

	artifact, err := svc.Run(context.Background(), selection(model.KindExecutives, ""))
	require.NoError(t, err)
	assert.Equal(t, "executives_report.pdf", artifact.Filename)
	assert.True(t, bytes.HasPrefix(artifact.Data, []byte("%PDF")))
}

func TestReportServiceRunUpstreamFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: ErrMalformedResponse}
	svc := NewReportService(fetcher, nil, nil)

	artifact, err := svc.Run(context.Background(), selection(model.KindClients, model.FormatXLSX))
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Nil(t, artifact)
	assert.Equal(t, 1, fetcher.calls)
}

func TestReportServiceRunEndToEnd(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":[
			{"_id":"1","password":"x","otp":"1","__v":0,"firstName":"Asha","city":"Pune","date":"2024-03-15T00:00:00Z"},
			{"_id":"2","firstName":"Ravi","refrance":"Friend"}
		]}`))
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	svc := NewReportService(NewRecordsClient(&config.UpstreamConfig{BaseURL: server.URL}), nil, metrics)

	artifact, err := svc.Run(context.Background(), selection(model.KindClients, model.FormatXLSX))
	require.NoError(t, err)

	assert.Equal(t, "/api/clients/bymonth/1/3", gotPath)
	assert.Equal(t, "clients_report.xlsx", artifact.Filename)
	assert.Equal(t, model.FormatXLSX.ContentType(), artifact.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Clients")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers(model.KindClients), rows[0])
	assert.Equal(t, []string{"Asha", "", "", "", "Pune", "", "", "3/15/2024"}, rows[1])
	assert.Equal(t, []string{"Ravi", "", "", "", "", "", "Friend"}, rows[2])

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("clients", "xlsx", OutcomeSuccess)))
}

func TestReportServiceRunMetricsOutcomes(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	svc := NewReportService(&fakeFetcher{err: errors.Join(ErrNetworkFailure, errors.New("dial tcp"))}, nil, metrics)
	_, err := svc.Run(context.Background(), selection(model.KindCases, model.FormatPDF))
	assert.ErrorIs(t, err, ErrNetworkFailure)

	_, err = svc.Run(context.Background(), selection("", model.FormatPDF))
	assert.ErrorIs(t, err, ErrNoReportTypeSelected)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("cases", "pdf", OutcomeUpstreamError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("", "pdf", OutcomeNoReportType)))
}

func TestReportServiceValidate(t *testing.T) {
	svc := NewReportService(&fakeFetcher{}, nil, nil)

	assert.NoError(t, svc.Validate(selection(model.KindClients, model.FormatPDF)))
	assert.ErrorIs(t, svc.Validate(selection("unknown", model.FormatPDF)), ErrNoReportTypeSelected)
	assert.ErrorIs(t, svc.Validate(selection(model.KindClients, "docx")), ErrInvalidSelection)
}
