package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/models"
	"github.com/Conceptual-Machines/prompt-orchestrator-ui/internal/observability"
	"github.com/getsentry/sentry-go"
)

const (
	generatePath = "/generate"

	// Upper bound on response bodies read from the service
	maxResponseBytes = 1 << 20
)

// GenerationClient posts generation requests to the external service.
// It never retries and sets no timeout; a request runs until the service
// answers or the transport fails.
type GenerationClient struct {
	endpoint   string
	httpClient *http.Client
	langfuse   *observability.LangfuseClient
}

// Option customizes a GenerationClient
type Option func(*GenerationClient)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GenerationClient) { c.httpClient = hc }
}

// WithLangfuse traces every call in Langfuse
func WithLangfuse(lf *observability.LangfuseClient) Option {
	return func(c *GenerationClient) { c.langfuse = lf }
}

// NewGenerationClient creates a client for the service at baseURL
func NewGenerationClient(baseURL string, opts ...Option) *GenerationClient {
	c := &GenerationClient{
		endpoint:   baseURL + generatePath,
		httpClient: &http.Client{},
		langfuse:   observability.Disabled(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to
func (c *GenerationClient) Endpoint() string {
	return c.endpoint
}

// Generate sends req and returns the service's messages.
// A non-2xx answer yields *ServiceError; anything else that goes wrong wraps ErrUnexpected.
func (c *GenerationClient) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResponse, error) {
	span := sentry.StartSpan(ctx, "http.client")
	span.Description = "POST " + generatePath
	span.SetData("channel", req.Channel)
	span.SetData("count", req.Count)
	defer span.Finish()

	trace := c.langfuse.StartTrace(ctx, "generate-messages", map[string]interface{}{
		"brand_context_path": req.BrandContextPath,
		"channel":            req.Channel,
		"language":           req.Language,
	})
	defer trace.Finish()
	gen := trace.Generation("generation-service", req, map[string]interface{}{
		"label":  req.LabelReason.Label,
		"reason": req.LabelReason.Reason,
		"count":  req.Count,
	})

	resp, err := c.do(span.Context(), req)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		gen.Fail(err, nil)
		return nil, err
	}

	span.Status = sentry.SpanStatusOK
	gen.Succeed(resp.Messages, map[string]interface{}{
		"messages":         len(resp.Messages),
		"invalid_messages": resp.InvalidCount(),
	})
	return resp, nil
}

func (c *GenerationClient) do(ctx context.Context, req models.GenerationRequest) (*models.GenerationResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrUnexpected, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnexpected, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	defer httpResp.Body.Close()

	// One byte past the limit tells an oversized body apart from one that fits exactly
	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnexpected, err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("%w: response too large (status %d, over %d bytes)", ErrUnexpected, httpResp.StatusCode, maxResponseBytes)
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, parseServiceError(httpResp.StatusCode, body)
	}

	var out models.GenerationResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnexpected, err)
	}
	return &out, nil
}

// parseServiceError keeps the detail only when it is a non-empty string
func parseServiceError(status int, body []byte) error {
	se := &ServiceError{StatusCode: status}

	var errBody models.ErrorResponse
	if err := json.Unmarshal(body, &errBody); err == nil {
		if detail, ok := errBody.DetailString(); ok {
			se.Detail = detail
		}
	}
	return se
}
