// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package places

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/idk/internal/geo"
	"github.com/tomtom215/idk/internal/logging"
	"github.com/tomtom215/idk/internal/metrics"
)

const (
	// DefaultBaseURL is the legacy Places web service root.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

	// DefaultSearchRadiusMeters is used by text search and autocomplete.
	DefaultSearchRadiusMeters = 5000

	// RestaurantType restricts searches to restaurants.
	RestaurantType = "restaurant"

	breakerName = "places-api"
)

// detailsFields is the field mask requested from the details endpoint.
var detailsFields = strings.Join([]string{
	"name",
	"formatted_address",
	"geometry",
	"price_level",
	"rating",
	"user_ratings_total",
	"opening_hours",
	"website",
	"formatted_phone_number",
	"types",
	"delivery",
	"dine_in",
	"takeout",
}, ",")

// Searcher is the subset of the places API the picker depends on.
type Searcher interface {
	Nearby(ctx context.Context, q NearbyQuery) ([]Place, error)
	Details(ctx context.Context, placeID string) (*Place, error)
	TextSearch(ctx context.Context, query string, location geo.Point) ([]Place, error)
	Autocomplete(ctx context.Context, input string, location geo.Point) ([]Prediction, error)
}

// NearbyQuery describes a nearby restaurant search.
type NearbyQuery struct {
	Location     geo.Point
	RadiusMeters int
	MinPrice     *int
	MaxPrice     *int
}

// NewNearbyQuery builds a query from a radius in miles and a price level list.
// An empty price list leaves the price filter off.
func NewNearbyQuery(location geo.Point, radiusMiles float64, priceRange []int) NearbyQuery {
	q := NearbyQuery{
		Location:     location,
		RadiusMeters: geo.MilesToMeters(radiusMiles),
	}
	if len(priceRange) > 0 {
		lo, hi := priceRange[0], priceRange[0]
		for _, p := range priceRange[1:] {
			lo = min(lo, p)
			hi = max(hi, p)
		}
		q.MinPrice, q.MaxPrice = &lo, &hi
	}
	return q
}

// Config configures the client.
type Config struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	Breaker       BreakerConfig

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client calls the places web service through a rate limiter and circuit breaker.
// It does not retry.
type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	breaker *breaker
}

// NewClient creates a places client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	breakerCfg := cfg.Breaker
	if breakerCfg.MaxRequests == 0 {
		breakerCfg = DefaultBreakerConfig()
	}

	return &Client{
		http:    httpClient,
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		limiter: rate.NewLimiter(limit, burst),
		breaker: newBreaker(breakerName, breakerCfg),
	}, nil
}

// BreakerState reports the circuit breaker state for health checks.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// apiResponse is the envelope shared by every endpoint.
type apiResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Results      []Place      `json:"results,omitempty"`
	Result       *Place       `json:"result,omitempty"`
	Predictions  []Prediction `json:"predictions,omitempty"`
}

// Nearby runs a nearby search for restaurants.
func (c *Client) Nearby(ctx context.Context, q NearbyQuery) ([]Place, error) {
	params := url.Values{}
	params.Set("location", formatLatLng(q.Location))
	params.Set("radius", strconv.Itoa(q.RadiusMeters))
	params.Set("type", RestaurantType)
	if q.MinPrice != nil && q.MaxPrice != nil {
		params.Set("minprice", strconv.Itoa(*q.MinPrice))
		params.Set("maxprice", strconv.Itoa(*q.MaxPrice))
	}

	resp, err := c.call(ctx, "nearbysearch", params, StatusOK, StatusZeroResults)
	if err != nil {
		return nil, err
	}
	metrics.PlacesResults.Observe(float64(len(resp.Results)))
	return resp.Results, nil
}

// Details fetches the full record for one place.
func (c *Client) Details(ctx context.Context, placeID string) (*Place, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)

	resp, err := c.call(ctx, "details", params, StatusOK)
	if err != nil {
		return nil, err
	}
	if resp.Result == nil {
		return nil, &StatusError{Endpoint: "details", Status: StatusNotFound, Message: "empty result"}
	}
	if resp.Result.PlaceID == "" {
		resp.Result.PlaceID = placeID
	}
	return resp.Result, nil
}

// TextSearch finds restaurants matching a free-text query near location.
func (c *Client) TextSearch(ctx context.Context, query string, location geo.Point) ([]Place, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", formatLatLng(location))
	params.Set("radius", strconv.Itoa(DefaultSearchRadiusMeters))
	params.Set("type", RestaurantType)

	resp, err := c.call(ctx, "textsearch", params, StatusOK, StatusZeroResults)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Autocomplete returns establishment suggestions strictly within the default radius.
func (c *Client) Autocomplete(ctx context.Context, input string, location geo.Point) ([]Prediction, error) {
	params := url.Values{}
	params.Set("input", input)
	params.Set("location", formatLatLng(location))
	params.Set("radius", strconv.Itoa(DefaultSearchRadiusMeters))
	params.Set("types", "establishment")
	params.Set("strictbounds", "true")

	resp, err := c.call(ctx, "autocomplete", params, StatusOK, StatusZeroResults)
	if err != nil {
		return nil, err
	}
	return resp.Predictions, nil
}

// call waits on the limiter, then performs one GET through the breaker.
func (c *Client) call(ctx context.Context, endpoint string, params url.Values, accept ...string) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("places rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := castResult[apiResponse](c.breaker.execute(func() (interface{}, error) {
		return c.do(ctx, endpoint, params, accept)
	}))
	metrics.RecordPlacesRequest(endpoint, time.Since(start), err)

	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("endpoint", endpoint).Msg("Places API request failed")
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values, accept []string) (*apiResponse, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s/json?%s", c.baseURL, endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		// The error text embeds the URL, which carries the key.
		return nil, fmt.Errorf("places API %s request failed: %w", endpoint, redact(err, c.apiKey))
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, &StatusError{Endpoint: endpoint, HTTPStatus: httpResp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var result apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode places %s response: %w", endpoint, err)
	}

	if err := checkStatus(endpoint, &result, accept); err != nil {
		return nil, err
	}
	return &result, nil
}

func checkStatus(endpoint string, resp *apiResponse, accept []string) error {
	for _, s := range accept {
		if resp.Status == s {
			return nil
		}
	}
	return &StatusError{
		Endpoint:   endpoint,
		Status:     resp.Status,
		Message:    resp.ErrorMessage,
		HTTPStatus: http.StatusOK,
	}
}

func formatLatLng(p geo.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// redactedError hides the API key in transport errors.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}
