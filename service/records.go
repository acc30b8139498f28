package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/akashkendre1298/vastureports/config"
	"github.com/akashkendre1298/vastureports/model"
	"github.com/akashkendre1298/vastureports/pkg/logger"
)

// RecordsClient fetches report records from the upstream records API
type RecordsClient struct {
	config     *config.UpstreamConfig
	httpClient *http.Client
}

func NewRecordsClient(cfg *config.UpstreamConfig) *RecordsClient {
	return &RecordsClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// BaseURL returns the configured upstream root
func (c *RecordsClient) BaseURL() string {
	return c.config.BaseURL
}

// FetchRecords performs a single GET against target and returns the "data" array.
// It never retries.
func (c *RecordsClient) FetchRecords(ctx context.Context, target Target) ([]model.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error(ctx, "upstream request failed", "url", target.URL, "error", err)
		return nil, fmt.Errorf("%w: failed to send request: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error(ctx, "failed to read upstream response", "url", target.URL, "error", err)
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrNetworkFailure, err)
	}

	records, err := decodeEnvelope(body)
	if err != nil {
		logger.Error(ctx, "invalid upstream response",
			"url", target.URL,
			"status", resp.StatusCode,
			"error", err,
		)
		return nil, err
	}

	logger.Debug(ctx, "upstream records fetched", "url", target.URL, "count", len(records))
	return records, nil
}

// decodeEnvelope extracts the records of a {"data": [...]} body
func decodeEnvelope(body []byte) ([]model.RawRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	var payload any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", ErrNetworkFailure, err)
	}

	envelope, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: body is not an object", ErrMalformedResponse)
	}

	data, ok := envelope["data"]
	if !ok || data == nil {
		return nil, fmt.Errorf("%w: missing data field", ErrMalformedResponse)
	}

	items, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: data is not an array", ErrMalformedResponse)
	}

	records := make([]model.RawRecord, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: data[%d] is not an object", ErrMalformedResponse, i)
		}
		records = append(records, model.RawRecord(obj))
	}

	return records, nil
}
