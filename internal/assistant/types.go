package assistant

// ChatRequest is the outbound payload for one exchange with the assistant.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Booking is the structured confirmation the assistant returns when an
// exchange completes an appointment. The reschedule and cancel URLs are
// optional; everything else is required for the booking to count as complete.
type Booking struct {
	PatientName   string `json:"patient_name"`
	PatientEmail  string `json:"patient_email"`
	SlotTime      string `json:"slot_time"`
	BookingUUID   string `json:"booking_uuid"`
	RescheduleURL string `json:"reschedule_url,omitempty"`
	CancelURL     string `json:"cancel_url,omitempty"`
}

// ChatResponse is the assistant's reply to one exchange.
type ChatResponse struct {
	Response        string   `json:"response"`
	BookingDetails  *Booking `json:"booking_details,omitempty"`
	ActionPerformed string   `json:"action_performed,omitempty"`
}
