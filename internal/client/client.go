package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/gymlog/internal/telemetry/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const maxResponseBytes = 4 << 20

// APIError is a non 2xx response of the workouts API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client with a traced transport and the given overall request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   timeout,
	})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) Stats(ctx context.Context) (_ *StatsSnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "client.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot := &StatsSnapshot{}
	if err := c.getJSON(ctx, "/api/stats", snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (c *Client) Workouts(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "client.workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var list []Workout
	if err := c.getJSON(ctx, "/api/workouts", &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Workout{}
	}
	span.SetAttributes(attribute.Int("workouts.count", len(list)))
	return list, nil
}

func (c *Client) CreateWorkout(ctx context.Context, w NewWorkout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "client.createWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	body, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal workout: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/workouts", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return &APIError{
			Status:  resp.StatusCode,
			Message: ErrorMessage(respBytes),
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if !isSuccess(resp.StatusCode) {
		return &APIError{
			Status:  resp.StatusCode,
			Message: ErrorMessage(respBytes),
		}
	}

	if err := json.Unmarshal(respBytes, target); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// ErrorMessage extracts the user facing message from an error response body.
// A JSON body yields its "error" string, or "Error" when that is missing or empty.
// Any other body, JSON null included, is returned verbatim. An empty body yields "Error".
func ErrorMessage(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return "Error"
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil || parsed == nil {
		return string(body)
	}

	if envelope, ok := parsed.(map[string]any); ok {
		if msg, ok := envelope["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return "Error"
}
