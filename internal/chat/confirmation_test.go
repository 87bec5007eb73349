package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/appointment-chat/internal/assistant"
)

func TestConfirmationHolder_EmptyByDefault(t *testing.T) {
	h := NewConfirmationHolder()
	_, ok := h.Current()
	assert.False(t, ok)
}

func TestConfirmationHolder_PresentReplaces(t *testing.T) {
	h := NewConfirmationHolder()
	h.Present(assistant.Booking{BookingUUID: "first"})
	h.Present(assistant.Booking{BookingUUID: "second"})

	current, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, "second", current.BookingUUID)
}

func TestConfirmationHolder_Dismiss(t *testing.T) {
	h := NewConfirmationHolder()
	h.Present(assistant.Booking{BookingUUID: "abc-123"})
	h.Dismiss()

	_, ok := h.Current()
	assert.False(t, ok)

	// Dismissing an empty holder is a no-op.
	h.Dismiss()
	_, ok = h.Current()
	assert.False(t, ok)
}
