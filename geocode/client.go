// Package geocode resolves birth place names to coordinates using
// Nominatim, with a direct "lat,lon" passthrough for users who already
// know their coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sahadev/jyotish/config"
	"github.com/sahadev/jyotish/errors"
	"github.com/sahadev/jyotish/internal/httpclient"
	"github.com/sahadev/jyotish/logger"
)

// Location is a resolved place.
type Location struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name,omitempty"`
}

// Client talks to a Nominatim-compatible geocoding endpoint. Requests
// are rate limited to one per second per the Nominatim usage policy.
type Client struct {
	baseURL   string
	userAgent string
	http      *httpclient.SaferClient
	limiter   *rate.Limiter
}

// NewClient builds a geocoding client from configuration.
func NewClient(cfg config.GeocoderConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      httpclient.NewSaferClient(timeout),
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// newClientWithHTTP is the test seam for injecting an httptest server
func newClientWithHTTP(baseURL, userAgent string, hc *httpclient.SaferClient) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      hc,
		limiter:   rate.NewLimiter(rate.Inf, 1),
	}
}

// ParseLatLon recognizes direct "lat,lon" input. Returns false when the
// string is not a coordinate pair.
func ParseLatLon(place string) (*Location, bool) {
	parts := strings.Split(place, ",")
	if len(parts) < 2 {
		return nil, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, false
	}
	return &Location{Lat: lat, Lon: lon}, true
}

// nominatimResult mirrors the fields we need from a Nominatim search
// response. Coordinates arrive as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve turns a place string into coordinates. Coordinate pairs pass
// through without a network call.
func (c *Client) Resolve(ctx context.Context, place string) (*Location, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return nil, errors.Wrap(errors.ErrInvalidRequest, "place is empty")
	}

	if loc, ok := ParseLatLon(place); ok {
		return loc, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "geocoder rate limit wait")
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1",
		c.baseURL, url.QueryEscape(place))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create geocoder request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrGeocode, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Wrapf(errors.ErrGeocode, "geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.Wrapf(errors.ErrGeocode, "failed to decode response: %v", err)
	}
	if len(results) == 0 {
		return nil, errors.Wrapf(errors.ErrGeocode, "no results for %q", place)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrGeocode, "bad latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrGeocode, "bad longitude %q", results[0].Lon)
	}

	logger.Infow("Place resolved",
		"place", place,
		"duration_ms", time.Since(start).Milliseconds())

	return &Location{
		Lat:         lat,
		Lon:         lon,
		DisplayName: results[0].DisplayName,
	}, nil
}
