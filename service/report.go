package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/akashkendre1298/vastureports/model"
	"github.com/akashkendre1298/vastureports/pkg/logger"
)

// RecordsFetcher is the upstream side of a report run
type RecordsFetcher interface {
	BaseURL() string
	FetchRecords(ctx context.Context, target Target) ([]model.RawRecord, error)
}

// ReportService runs the fetch, sanitize, project and export pipeline for one selection
type ReportService struct {
	records  RecordsFetcher
	dates    *DateFormatter
	metrics  *Metrics
	validate *validator.Validate
}

func NewReportService(records RecordsFetcher, dates *DateFormatter, metrics *Metrics) *ReportService {
	if dates == nil {
		dates = DefaultDateFormatter()
	}
	return &ReportService{
		records:  records,
		dates:    dates,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// Validate checks sel before any network call. A missing or unknown kind is
// ErrNoReportTypeSelected; other problems wrap ErrInvalidSelection.
func (s *ReportService) Validate(sel model.Selection) error {
	if !sel.Kind.Valid() {
		return ErrNoReportTypeSelected
	}
	if err := s.validate.Struct(sel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return nil
}

// Run generates the artifact for sel. Every failure is terminal for the run and
// no partial artifact is returned.
func (s *ReportService) Run(ctx context.Context, sel model.Selection) (*model.Artifact, error) {
	if sel.Format == "" {
		sel.Format = model.FormatPDF
	}

	ctx = logger.WithRun(ctx, uuid.New().String(), sel.Kind.String())
	kind, format := sel.Kind.String(), sel.Format.String()

	if err := s.Validate(sel); err != nil {
		if errors.Is(err, ErrNoReportTypeSelected) {
			s.metrics.observeRun(kind, format, OutcomeNoReportType)
		} else {
			s.metrics.observeRun(kind, format, OutcomeInvalid)
		}
		logger.Warn(ctx, "report run rejected", "error", err)
		return nil, err
	}

	target, err := BuildTarget(s.records.BaseURL(), sel.Kind, sel.Months)
	if err != nil {
		s.metrics.observeRun(kind, format, OutcomeNoReportType)
		return nil, err
	}

	raw, err := s.records.FetchRecords(ctx, target)
	if err != nil {
		s.metrics.observeRun(kind, format, OutcomeUpstreamError)
		logger.Error(ctx, "error fetching report data", "error", err)
		return nil, fmt.Errorf("failed to fetch %s records: %w", sel.Kind, err)
	}

	table, err := Project(sel.Kind, Sanitize(raw), s.dates)
	if err != nil {
		s.metrics.observeRun(kind, format, OutcomeNoReportType)
		return nil, err
	}

	artifact, err := Export(sel.Format, table)
	if err != nil {
		s.metrics.observeRun(kind, format, OutcomeEncodeError)
		logger.Error(ctx, "error encoding report", "error", err)
		return nil, err
	}

	s.metrics.observeRun(kind, format, OutcomeSuccess)
	s.metrics.observeRows(kind, len(table.Rows))
	logger.Info(ctx, "report generated",
		"filename", artifact.Filename,
		"rows", len(table.Rows),
		"bytes", len(artifact.Data),
		"start_month", sel.Months.Start,
		"end_month", sel.Months.End,
	)

	return artifact, nil
}
