package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/wolfman30/appointment-chat/internal/assistant"
	"github.com/wolfman30/appointment-chat/internal/observability/metrics"
	"github.com/wolfman30/appointment-chat/pkg/logging"
)

// FallbackReply is appended in place of an assistant reply when an exchange
// fails. The underlying error is logged, never shown to the user.
const FallbackReply = "Sorry, I encountered an error. Please try again."

// State is the coordinator's position in the exchange cycle.
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
)

// Sender performs one request/response exchange with the assistant service.
type Sender interface {
	Send(ctx context.Context, req assistant.ChatRequest) (*assistant.ChatResponse, error)
}

// Config wires a Coordinator's collaborators.
type Config struct {
	SessionID  string
	Transcript *Transcript
	Client     Sender
	Sink       BookingSink
	Logger     *logging.Logger
	Metrics    *metrics.ChatMetrics
}

// Coordinator drives the exchange cycle for one conversation: append the
// user's message, call the assistant while marked in flight, then append the
// reply (or the fallback) and hand any detected booking to the sink. At most
// one exchange may be outstanding; submissions while sending are dropped, so
// replies can never interleave out of order.
type Coordinator struct {
	sessionID  string
	transcript *Transcript
	client     Sender
	sink       BookingSink
	logger     *logging.Logger
	metrics    *metrics.ChatMetrics

	mu    sync.Mutex
	state State
}

// NewCoordinator creates a coordinator in the Idle state.
func NewCoordinator(cfg Config) (*Coordinator, error) {
	if strings.TrimSpace(cfg.SessionID) == "" {
		return nil, errors.New("chat: session ID is required")
	}
	if cfg.Transcript == nil {
		return nil, errors.New("chat: transcript is required")
	}
	if cfg.Client == nil {
		return nil, errors.New("chat: assistant client is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{
		sessionID:  cfg.SessionID,
		transcript: cfg.Transcript,
		client:     cfg.Client,
		sink:       cfg.Sink,
		logger:     logger,
		metrics:    cfg.Metrics,
		state:      StateIdle,
	}, nil
}

// SessionID returns the identifier correlating this conversation's exchanges.
func (c *Coordinator) SessionID() string {
	return c.sessionID
}

// State returns the current coordinator state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InFlight reports whether an exchange is currently outstanding.
func (c *Coordinator) InFlight() bool {
	return c.State() == StateSending
}

// Submit runs one full exchange cycle for text and blocks until it completes.
// Empty or whitespace-only text is dropped, as is any submission made while
// another exchange is in flight; both return false without touching the
// transcript. Every accepted submission returns the coordinator to Idle,
// whether the exchange succeeded or failed.
func (c *Coordinator) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		c.metrics.ObserveRejected("empty")
		return false
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		c.metrics.ObserveRejected("in_flight")
		c.logger.Debug("chat: submission dropped while sending", "session_id", c.sessionID)
		return false
	}
	c.state = StateSending
	c.mu.Unlock()

	c.transcript.Append(Message{Role: RoleUser, Content: text})

	started := time.Now()
	resp, err := c.client.Send(ctx, assistant.ChatRequest{
		Message:   text,
		SessionID: c.sessionID,
	})
	elapsed := time.Since(started)

	if err != nil {
		c.logger.Error("chat: exchange failed",
			"session_id", c.sessionID,
			"error", err,
			"elapsed_ms", elapsed.Milliseconds(),
		)
		c.transcript.Append(Message{Role: RoleAssistant, Content: FallbackReply})
		c.metrics.ObserveExchange("failure", elapsed.Seconds())
		c.setIdle()
		return true
	}

	c.transcript.Append(Message{Role: RoleAssistant, Content: resp.Response})

	if booking, ok := DetectBooking(resp); ok {
		c.metrics.ObserveBookingDetected()
		c.logger.Info("chat: booking detected",
			"session_id", c.sessionID,
			"booking_uuid", booking.BookingUUID,
			"slot_time", booking.SlotTime,
		)
		if c.sink != nil {
			c.sink.Present(booking)
		}
	}

	c.metrics.ObserveExchange("success", elapsed.Seconds())
	c.setIdle()
	return true
}

func (c *Coordinator) setIdle() {
	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
}
