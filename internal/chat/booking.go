package chat

import "github.com/wolfman30/appointment-chat/internal/assistant"

// DetectBooking inspects an assistant response for a completed booking. It is
// pure: no side effects, and absent unless the response explicitly carries a
// complete booking payload. A payload missing any required field is treated
// the same as no payload at all; the textual reply is unaffected either way.
func DetectBooking(resp *assistant.ChatResponse) (assistant.Booking, bool) {
	if resp == nil || resp.BookingDetails == nil {
		return assistant.Booking{}, false
	}
	b := *resp.BookingDetails
	if b.PatientName == "" || b.PatientEmail == "" || b.SlotTime == "" || b.BookingUUID == "" {
		return assistant.Booking{}, false
	}
	return b, true
}
