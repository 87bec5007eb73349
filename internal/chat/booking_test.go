package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/appointment-chat/internal/assistant"
)

func completeBooking() *assistant.Booking {
	return &assistant.Booking{
		PatientName:  "Jane Doe",
		PatientEmail: "jane@x.com",
		SlotTime:     "Fri 2pm",
		BookingUUID:  "abc-123",
	}
}

func TestDetectBooking_Present(t *testing.T) {
	resp := &assistant.ChatResponse{Response: "Booked!", BookingDetails: completeBooking()}

	booking, ok := DetectBooking(resp)
	require.True(t, ok)
	assert.Equal(t, *resp.BookingDetails, booking)
}

func TestDetectBooking_OptionalURLsPassThrough(t *testing.T) {
	b := completeBooking()
	b.RescheduleURL = "https://cal.example.com/r/abc-123"
	b.CancelURL = "https://cal.example.com/c/abc-123"
	resp := &assistant.ChatResponse{Response: "Booked!", BookingDetails: b}

	booking, ok := DetectBooking(resp)
	require.True(t, ok)
	assert.Equal(t, b.RescheduleURL, booking.RescheduleURL)
	assert.Equal(t, b.CancelURL, booking.CancelURL)
}

func TestDetectBooking_Absent(t *testing.T) {
	_, ok := DetectBooking(&assistant.ChatResponse{Response: "What day works?"})
	assert.False(t, ok)

	_, ok = DetectBooking(nil)
	assert.False(t, ok)
}

func TestDetectBooking_IncompletePayloadIsAbsent(t *testing.T) {
	for _, clear := range []func(*assistant.Booking){
		func(b *assistant.Booking) { b.PatientName = "" },
		func(b *assistant.Booking) { b.PatientEmail = "" },
		func(b *assistant.Booking) { b.SlotTime = "" },
		func(b *assistant.Booking) { b.BookingUUID = "" },
	} {
		b := completeBooking()
		clear(b)
		_, ok := DetectBooking(&assistant.ChatResponse{Response: "Booked!", BookingDetails: b})
		assert.False(t, ok)
	}
}
