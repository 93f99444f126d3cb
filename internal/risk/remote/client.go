// Package remote implements the HTTP client for the external prediction service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/downtime-prediction/internal/risk"
)

var (
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// Client talks to the external prediction service. Each call makes exactly one
// attempt through a circuit breaker; recovery from failures is the caller's
// concern (the orchestrator falls back locally).
type Client struct {
	name    string
	baseURL string
	token   string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client for the service at baseURL, authenticating with
// the given bearer token.
func NewClient(client *http.Client, baseURL, token string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "prediction-api",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		name:    "prediction-api",
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		circuit: cb,
	}
}

func (c *Client) Name() string {
	return c.name
}

// predictionPayload is the service's success shape for single predictions.
type predictionPayload struct {
	Probability         float64       `json:"probability"`
	Threshold           float64       `json:"threshold"`
	AlertTriggered      bool          `json:"alert_triggered"`
	ContributingFactors []risk.Factor `json:"contributing_factors"`
	Recommendation      string        `json:"recommendation"`
}

func (p predictionPayload) toResult() risk.PredictionResult {
	return risk.PredictionResult{
		DowntimeProbability: p.Probability,
		Threshold:           p.Threshold,
		AlertTriggered:      p.AlertTriggered,
		ContributingFactors: p.ContributingFactors,
		Recommendation:      p.Recommendation,
		Source:              risk.SourceRemote,
	}
}

// Predict requests a prediction for a full set of readings.
func (c *Client) Predict(ctx context.Context, in risk.PredictionInput) (risk.PredictionResult, error) {
	var payload predictionPayload
	if err := c.postJSON(ctx, "/predict", in, &payload); err != nil {
		return risk.PredictionResult{}, err
	}
	return payload.toResult(), nil
}

// PredictRegion requests a prediction from region name alone; the service
// derives the readings on its side.
func (c *Client) PredictRegion(ctx context.Context, region string) (risk.PredictionResult, error) {
	body := struct {
		Region string `json:"region"`
	}{Region: region}

	var payload predictionPayload
	if err := c.postJSON(ctx, "/predict/region", body, &payload); err != nil {
		return risk.PredictionResult{}, err
	}
	return payload.toResult(), nil
}

// CityPredictions requests the per-city probability set for a country.
func (c *Client) CityPredictions(ctx context.Context, country string) (risk.CityProbabilities, error) {
	values := url.Values{}
	values.Set("country", country)

	var payload struct {
		Predictions risk.CityProbabilities `json:"predictions"`
	}
	if err := c.getJSON(ctx, "/predict/cities?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Predictions == nil {
		payload.Predictions = risk.CityProbabilities{}
	}
	return payload.Predictions, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	return c.doJSON(ctx, buildRequest, out)
}

func (c *Client) getJSON(ctx context.Context, pathAndQuery string, out interface{}) error {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, c.baseURL+pathAndQuery, nil)
	}

	return c.doJSON(ctx, buildRequest, out)
}

// doJSON executes a single breaker-guarded request and decodes the response
// body into out. A body that fails to decode is a failure like any other.
func (c *Client) doJSON(ctx context.Context, buildRequest func() (*http.Request, error), out interface{}) error {
	if c.client == nil {
		return errNoHTTPClient
	}

	req, err := buildRequest()
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
