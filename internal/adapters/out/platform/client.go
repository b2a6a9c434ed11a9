// Package platform talks to the marketplace's internal platform services:
// stock release in the catalog, address geocoding and the live shipper
// roster. All three are plain JSON-over-HTTP endpoints behind one base URL.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/model/kernel"
	"github.com/TienDattttt/shoppi-sub004/internal/core/domain/services"
	"github.com/TienDattttt/shoppi-sub004/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client implements the StockReleaser, GeoResolver and ShipperRoster ports
// over the platform HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a platform client. baseURL is required.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// ReleaseStock returns reserved stock for the order to the catalog.
func (c *Client) ReleaseStock(ctx context.Context, orderID kernel.UUID) error {
	endpoint := c.baseURL + "/api/v1/orders/" + orderID.String() + "/release-stock"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewRetryableError("release stock", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errs.NewRetryableError("release stock", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return nil
}

// Resolve geocodes a postal address.
func (c *Client) Resolve(ctx context.Context, address string) (kernel.GeoPoint, error) {
	if address == "" {
		return kernel.GeoPoint{}, errs.NewValueIsRequiredError("address")
	}

	endpoint := c.baseURL + "/api/v1/geo/resolve?address=" + url.QueryEscape(address)

	var body struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(body.Latitude, body.Longitude)
}

// AvailableShippers lists the shippers currently accepting shipments near
// the pickup point.
func (c *Client) AvailableShippers(
	ctx context.Context,
	near kernel.GeoPoint,
) ([]services.ShipperCandidate, error) {
	endpoint := c.baseURL + "/api/v1/shippers/available" +
		"?latitude=" + strconv.FormatFloat(near.Latitude(), 'f', -1, 64) +
		"&longitude=" + strconv.FormatFloat(near.Longitude(), 'f', -1, 64)

	var body []struct {
		ID              string  `json:"id"`
		Latitude        float64 `json:"latitude"`
		Longitude       float64 `json:"longitude"`
		ActiveShipments int     `json:"active_shipments"`
		MaxShipments    int     `json:"max_shipments"`
	}
	if err := c.getJSON(ctx, endpoint, &body); err != nil {
		return nil, err
	}

	candidates := make([]services.ShipperCandidate, 0, len(body))
	for _, item := range body {
		id, err := kernel.UUIDFromString(item.ID)
		if err != nil {
			return nil, fmt.Errorf("shipper %q: %w", item.ID, err)
		}
		location, err := kernel.NewGeoPoint(item.Latitude, item.Longitude)
		if err != nil {
			return nil, fmt.Errorf("shipper %q: %w", item.ID, err)
		}

		candidates = append(candidates, services.ShipperCandidate{
			ID:              id,
			Location:        location,
			ActiveShipments: item.ActiveShipments,
			MaxShipments:    item.MaxShipments,
		})
	}

	return candidates, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewRetryableError("platform request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errs.NewRetryableError("platform request", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
