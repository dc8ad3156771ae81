package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/minhvo/profile-atlas/internal/config"
	"github.com/minhvo/profile-atlas/internal/domain/geocode"
	"github.com/minhvo/profile-atlas/internal/domain/profile"
	"github.com/minhvo/profile-atlas/pkg/logger"
)

const geocodePath = "/maps/api/geocode/json"

type googleGeocoder struct {
	client  *http.Client
	baseURL string
	apiKey  string
	log     logger.Logger
}

// NewGoogleGeocoder builds the adapter for the Google Geocoding REST API.
// Construction never fails: a missing API key surfaces per-lookup as
// ErrServiceUnavailable so the rest of the application stays interactive.
func NewGoogleGeocoder(cfg config.Config, log logger.Logger) geocode.Geocoder {
	timeout := cfg.Geocoder.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cfg.Geocoder.APIKey == "" {
		log.Warn("Geocoder API key is not configured, lookups will fail until it is set")
	}
	return &googleGeocoder{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.Geocoder.BaseURL,
		apiKey:  cfg.Geocoder.APIKey,
		log:     log,
	}
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *googleGeocoder) Geocode(ctx context.Context, address string) (*geocode.Result, error) {
	if g.apiKey == "" {
		return nil, geocode.ErrServiceUnavailable
	}

	endpoint := fmt.Sprintf("%s%s?address=%s&key=%s",
		g.baseURL, geocodePath, url.QueryEscape(address), url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("Geocode request failed", zap.String("address", address), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", geocode.ErrAddressNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned HTTP %d", geocode.ErrAddressNotFound, resp.StatusCode)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", geocode.ErrAddressNotFound, err)
	}

	// Only the first candidate is used, there is no disambiguation step.
	if payload.Status != "OK" || len(payload.Results) == 0 {
		g.log.Info("Geocode produced no candidates", zap.String("status", payload.Status))
		return nil, geocode.ErrAddressNotFound
	}

	first := payload.Results[0]
	return &geocode.Result{
		Address: first.FormattedAddress,
		Location: profile.LatLng{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
	}, nil
}
