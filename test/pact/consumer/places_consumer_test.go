//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-places-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type placePayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Creator     string `json:"creator"`
	Location    struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

type placeEnvelope struct {
	Message string       `json:"message"`
	Place   placePayload `json:"place"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type problemDetail struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

type apiError struct {
	status  int
	message string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.message, e.status)
}

func TestPlacesFrontendContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	title, description, address := pacttest.ExamplePlace()
	placeMatcher := matchers.Map{
		"id":          matchers.Like(pacttest.ExistingPlaceID),
		"title":       matchers.Like(title),
		"description": matchers.Like(description),
		"address":     matchers.Like(address),
		"image":       matchers.Like("https://example.pact/place.png"),
		"creator":     matchers.Like(pacttest.ExistingUserID),
		"location": matchers.Map{
			"lat": matchers.Like(40.7484474),
			"lng": matchers.Like(-73.9871516),
		},
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateUserExists).
		UponReceiving("a request to create a place").
		WithRequest("POST", "/api/places", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleCreatePlacePayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"message": matchers.S("Place added successfully"),
				"place":   placeMatcher,
			})
		})

	pact.AddInteraction().
		Given(pacttest.StatePlaceExists).
		UponReceiving("a request to fetch an existing place").
		WithRequest("GET", "/api/places/"+pacttest.ExistingPlaceID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"place": placeMatcher})
		})

	pact.AddInteraction().
		Given(pacttest.StatePlaceMissing).
		UponReceiving("a request for a missing place").
		WithRequest("GET", "/api/places/"+pacttest.MissingPlaceID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":    matchers.S("/problems/not-found"),
				"status":  matchers.Like(http.StatusNotFound),
				"message": matchers.S("Could not find a place for the provided id."),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateUserExists).
		UponReceiving("a login with valid credentials").
		WithRequest("POST", "/api/users/login", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{"email": pacttest.UserEmail, "password": pacttest.UserPassword})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"message": matchers.S("Logged in!")})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newPlacesClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var created placeEnvelope
		if err := client.do(ctx, http.MethodPost, "/api/places", pacttest.ExampleCreatePlacePayload(), &created); err != nil {
			return fmt.Errorf("create place: %w", err)
		}
		if created.Place.ID == "" {
			return fmt.Errorf("expected created place id to be set")
		}

		var fetched placeEnvelope
		if err := client.do(ctx, http.MethodGet, "/api/places/"+pacttest.ExistingPlaceID, nil, &fetched); err != nil {
			return fmt.Errorf("get place: %w", err)
		}
		if fetched.Place.ID != pacttest.ExistingPlaceID {
			return fmt.Errorf("expected place %s, got %+v", pacttest.ExistingPlaceID, fetched.Place)
		}

		err := client.do(ctx, http.MethodGet, "/api/places/"+pacttest.MissingPlaceID, nil, &fetched)
		if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for place %s, got %v", pacttest.MissingPlaceID, err)
		}

		var login messageEnvelope
		body := map[string]any{"email": pacttest.UserEmail, "password": pacttest.UserPassword}
		if err := client.do(ctx, http.MethodPost, "/api/users/login", body, &login); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		return nil
	})
	require.NoError(t, err)
}

type placesClient struct {
	baseURL    string
	httpClient *http.Client
}

func newPlacesClient(config pactconsumer.MockServerConfig) *placesClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &placesClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *placesClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var problem problemDetail
		_ = json.NewDecoder(res.Body).Decode(&problem)
		return apiError{status: res.StatusCode, message: problem.Message}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
