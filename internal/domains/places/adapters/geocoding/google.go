// Package geocoding resolves addresses to coordinates.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Apurer/go-gin-places-api/internal/domains/places/ports"
)

// DefaultBaseURL is the Google Maps Platform host.
const DefaultBaseURL = "https://maps.googleapis.com"

const geocodePath = "/maps/api/geocode/json"

var _ ports.AddressResolver = (*GoogleResolver)(nil)

// GoogleResolver calls the Google Geocoding API.
type GoogleResolver struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
}

// NewGoogleResolver builds a resolver. An empty baseURL selects DefaultBaseURL;
// a nil httpClient gets a 5s timeout and an instrumented transport.
func NewGoogleResolver(baseURL, apiKey string, httpClient *http.Client) (*GoogleResolver, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("geocoding API key is required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse geocoding base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &GoogleResolver{baseURL: parsed, apiKey: apiKey, client: httpClient}, nil
}

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Resolve returns the first result's location. ZERO_RESULTS maps to
// ports.ErrAddressNotFound; other non-OK statuses are plain errors.
func (g *GoogleResolver) Resolve(ctx context.Context, address string) (ports.Coordinates, error) {
	req, err := g.newRequest(ctx, address)
	if err != nil {
		return ports.Coordinates{}, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return ports.Coordinates{}, fmt.Errorf("call geocoding API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ports.Coordinates{}, fmt.Errorf("geocoding API unexpected status: %s", resp.Status)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Coordinates{}, fmt.Errorf("decode geocoding response: %w", err)
	}
	switch body.Status {
	case "OK":
		if len(body.Results) == 0 {
			return ports.Coordinates{}, ports.ErrAddressNotFound
		}
		location := body.Results[0].Geometry.Location
		return ports.Coordinates{Lat: location.Lat, Lng: location.Lng}, nil
	case "ZERO_RESULTS":
		return ports.Coordinates{}, ports.ErrAddressNotFound
	default:
		if body.ErrorMessage != "" {
			return ports.Coordinates{}, fmt.Errorf("geocoding API error %s: %s", body.Status, body.ErrorMessage)
		}
		return ports.Coordinates{}, fmt.Errorf("geocoding API error %s", body.Status)
	}
}

func (g *GoogleResolver) newRequest(ctx context.Context, address string) (*http.Request, error) {
	queryURL := g.baseURL.JoinPath(geocodePath)
	queryValues := queryURL.Query()
	for name, value := range map[string]string{"address": address, "key": g.apiKey} {
		queryFrag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
		if err != nil {
			return nil, err
		}
		parsed, err := url.ParseQuery(queryFrag)
		if err != nil {
			return nil, err
		}
		for k, v := range parsed {
			for _, v2 := range v {
				queryValues.Add(k, v2)
			}
		}
	}
	queryURL.RawQuery = queryValues.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
