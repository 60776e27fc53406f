// Package webhook delivers outbound HTTP calls to external collaborators: the
// vendor order intake endpoint and the marketing attribution service. Both are
// best-effort channels; callers log failures and move on.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendor"
	"fulfillment/internal/core/ports"
)

// vendorDispatchPayload is the wire format of the vendor intake endpoint.
type vendorDispatchPayload struct {
	OrderID            string           `json:"orderId"`
	OrderNumber        string           `json:"orderNumber"`
	VendorID           string           `json:"vendorId"`
	VendorName         string           `json:"vendorName"`
	VendorEmail        string           `json:"vendorEmail"`
	CustomerName       string           `json:"customerName"`
	CustomerEmail      string           `json:"customerEmail"`
	TotalCents         int64            `json:"totalCents"`
	Currency           string           `json:"currency"`
	Items              []order.LineItem `json:"items"`
	ProductionDeadline time.Time        `json:"productionDeadline"`
	Notes              string           `json:"notes,omitempty"`
}

// HTTPVendorGateway implements VendorGateway by POSTing dispatch payloads to
// the vendor intake endpoint.
type HTTPVendorGateway struct {
	client   *http.Client
	endpoint string
}

// NewHTTPVendorGateway creates a gateway posting to the given endpoint.
// A nil client falls back to a default with a 10 second timeout.
func NewHTTPVendorGateway(client *http.Client, endpoint string) *HTTPVendorGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPVendorGateway{client: client, endpoint: endpoint}
}

// DispatchOrder sends the production dispatch for one order to the vendor
// intake endpoint. Any non-2xx response is an error.
func (g *HTTPVendorGateway) DispatchOrder(ctx context.Context, v *vendor.Vendor, dispatch ports.VendorDispatch) error {
	body, err := json.Marshal(vendorDispatchPayload{
		OrderID:            dispatch.OrderID,
		OrderNumber:        dispatch.OrderNumber,
		VendorID:           dispatch.VendorID,
		VendorName:         v.Name(),
		VendorEmail:        dispatch.VendorEmail,
		CustomerName:       dispatch.CustomerName,
		CustomerEmail:      dispatch.CustomerEmail,
		TotalCents:         dispatch.TotalCents,
		Currency:           dispatch.Currency,
		Items:              dispatch.Items,
		ProductionDeadline: dispatch.ProductionDeadline,
		Notes:              dispatch.Notes,
	})
	if err != nil {
		return err
	}

	return g.post(ctx, body)
}

func (g *HTTPVendorGateway) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("vendor intake returned %d", resp.StatusCode)
	}

	return nil
}
