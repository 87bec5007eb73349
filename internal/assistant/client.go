package assistant

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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/appointment-chat/pkg/logging"
)

const (
	chatPath         = "/api/chat"
	defaultUserAgent = "appointment-chat/0.1"

	// maxResponseBytes caps how much of an assistant reply we will read.
	maxResponseBytes = 1 << 20
)

// Config controls how the assistant client behaves.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
	UserAgent  string
}

// Client talks to the assistant service's chat endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
	userAgent  string
	tracer     trace.Tracer
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("assistant: base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
		tracer:     otel.Tracer("appointment-chat.internal.assistant"),
	}, nil
}

// Send performs one chat exchange. Any transport failure, non-2xx status, or
// undecodable body comes back as an error; the caller treats them uniformly.
func (c *Client) Send(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, errors.New("assistant: message is required")
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, errors.New("assistant: session_id is required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("assistant: marshal chat request: %w", err)
	}

	ctx, span := c.tracer.Start(ctx, "assistant.chat.send")
	defer span.End()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("assistant: build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("assistant: chat request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("assistant: read chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("assistant: non-success status",
			"status", resp.StatusCode,
			"session_id", req.SessionID,
			"elapsed_ms", time.Since(started).Milliseconds(),
		)
		return nil, fmt.Errorf("assistant: chat returned status %d", resp.StatusCode)
	}

	var out ChatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("assistant: decode chat response: %w", err)
	}

	c.logger.Debug("assistant: exchange complete",
		"session_id", req.SessionID,
		"has_booking", out.BookingDetails != nil,
		"action", out.ActionPerformed,
		"elapsed_ms", time.Since(started).Milliseconds(),
	)
	return &out, nil
}
