// Package backend calls the serverless functions of the hosted backend that
// owns payment sessions and trial provisioning.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nikolayk812/streamstick/internal/config"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	FunctionCreateCheckout = "create-checkout"
	FunctionFreeTrial      = "free-trial"

	maxErrorBody = 4 << 10
)

// ErrUnavailable is returned while the circuit breaker rejects calls.
var ErrUnavailable = errors.New("backend is unavailable")

type FunctionError struct {
	Function   string
	StatusCode int
	Message    string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("function[%s] status[%d]: %s", e.Function, e.StatusCode, e.Message)
}

type FunctionClient struct {
	functionsURL string
	anonKey      string
	httpClient   *http.Client
	breaker      *gobreaker.CircuitBreaker[[]byte]
	logger       *zap.Logger
}

func NewFunctionClient(cfg config.BackendConfig, logger *zap.Logger) *FunctionClient {
	settings := gobreaker.Settings{
		Name:        "backend-functions",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// caller errors do not count against the backend
		IsSuccessful: func(err error) bool {
			var fnErr *FunctionError
			if errors.As(err, &fnErr) {
				return fnErr.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
	}

	return &FunctionClient{
		functionsURL: strings.TrimRight(cfg.URL, "/") + "/functions/v1",
		anonKey:      cfg.AnonKey,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
	}
}

// Invoke posts req as JSON to the named function and decodes the JSON reply
// into resp. A nil resp discards the reply.
func (c *FunctionClient) Invoke(ctx context.Context, name string, req, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.post(ctx, name, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("function[%s]: %w", name, ErrUnavailable)
	}
	if err != nil {
		return err
	}

	if resp == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, resp); err != nil {
		return fmt.Errorf("function[%s] json.Unmarshal: %w", name, err)
	}

	return nil
}

func (c *FunctionClient) post(ctx context.Context, name string, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.functionsURL+"/"+name, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.anonKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.anonKey)
		httpReq.Header.Set("apikey", c.anonKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("function[%s] httpClient.Do: %w", name, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("function[%s] io.ReadAll: %w", name, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		c.logger.Warn("backend function failed",
			zap.String("function", name),
			zap.Int("status", httpResp.StatusCode))

		return nil, &FunctionError{
			Function:   name,
			StatusCode: httpResp.StatusCode,
			Message:    errorMessage(data),
		}
	}

	return data, nil
}

// errorMessage extracts {"error": "..."} from a failed reply, falling back
// to the raw body.
func errorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}

	if len(data) > maxErrorBody {
		data = data[:maxErrorBody]
	}
	return strings.TrimSpace(string(data))
}
