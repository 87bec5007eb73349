package chat

import (
	"sync"

	"github.com/wolfman30/appointment-chat/internal/assistant"
)

// BookingSink receives detected bookings from the coordinator. Delivery is
// one-shot: the coordinator never re-derives or refreshes a booking after
// handing it off.
type BookingSink interface {
	Present(booking assistant.Booking)
}

// ConfirmationHolder keeps zero-or-one current booking confirmation for the
// presentation layer. A newly presented booking replaces the current one
// unconditionally; Dismiss clears it.
type ConfirmationHolder struct {
	mu      sync.Mutex
	current *assistant.Booking
}

// NewConfirmationHolder creates an empty holder.
func NewConfirmationHolder() *ConfirmationHolder {
	return &ConfirmationHolder{}
}

// Present replaces the current confirmation with booking.
func (h *ConfirmationHolder) Present(booking assistant.Booking) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = &booking
}

// Dismiss discards the current confirmation, if any.
func (h *ConfirmationHolder) Dismiss() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
}

// Current returns the confirmation on display, if one exists.
func (h *ConfirmationHolder) Current() (assistant.Booking, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return assistant.Booking{}, false
	}
	return *h.current, true
}
