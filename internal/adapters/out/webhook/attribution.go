package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// conversionPayload is the wire format of the attribution endpoint.
type conversionPayload struct {
	LandingPageID string `json:"landingPageId"`
	TotalCents    int64  `json:"totalCents"`
}

// HTTPAttributionService implements AttributionService by POSTing conversion
// records to the marketing attribution endpoint.
type HTTPAttributionService struct {
	client   *http.Client
	endpoint string
}

// NewHTTPAttributionService creates an attribution client posting to the
// given endpoint. A nil client falls back to a default with a 10 second
// timeout.
func NewHTTPAttributionService(client *http.Client, endpoint string) *HTTPAttributionService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPAttributionService{client: client, endpoint: endpoint}
}

// RecordConversion credits a paid order's total to the landing page it came
// from. Any non-2xx response is an error.
func (s *HTTPAttributionService) RecordConversion(ctx context.Context, landingPageID string, orderTotalCents int64) error {
	body, err := json.Marshal(conversionPayload{
		LandingPageID: landingPageID,
		TotalCents:    orderTotalCents,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("attribution service returned %d", resp.StatusCode)
	}

	return nil
}
