package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/appointment-chat/internal/assistant"
	"github.com/wolfman30/appointment-chat/internal/chat"
	"github.com/wolfman30/appointment-chat/pkg/logging"
)

type stubSender struct {
	resp *assistant.ChatResponse
}

func (s *stubSender) Send(_ context.Context, _ assistant.ChatRequest) (*assistant.ChatResponse, error) {
	return s.resp, nil
}

func newTestModel(t *testing.T, resp *assistant.ChatResponse) (*Model, *chat.Transcript, *chat.ConfirmationHolder) {
	t.Helper()
	transcript := chat.NewTranscript("")
	holder := chat.NewConfirmationHolder()
	coordinator, err := chat.NewCoordinator(chat.Config{
		SessionID:  chat.NewSessionID(),
		Transcript: transcript,
		Client:     &stubSender{resp: resp},
		Sink:       holder,
		Logger:     logging.Discard(),
	})
	require.NoError(t, err)

	m := New(coordinator, transcript, holder, logging.Discard())
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return model.(*Model), transcript, holder
}

func TestView_ShowsGreeting(t *testing.T) {
	m, _, _ := newTestModel(t, &assistant.ChatResponse{Response: "ok"})

	view := m.View()
	assert.Contains(t, view, "Medical Appointment Scheduling")
	assert.Contains(t, view, "appointment assistant")
}

func TestSubmitCmd_RunsExchange(t *testing.T) {
	m, transcript, _ := newTestModel(t, &assistant.ChatResponse{Response: "Sure, what day works?"})

	msg := m.submitCmd("I need an appointment")()
	done, ok := msg.(exchangeDoneMsg)
	require.True(t, ok)
	assert.True(t, done.accepted)
	assert.Equal(t, 3, transcript.Len())
}

func TestEnter_DispatchesSubmit(t *testing.T) {
	m, _, _ := newTestModel(t, &assistant.ChatResponse{Response: "ok"})
	m.input.SetValue("hello")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*Model)

	assert.NotNil(t, cmd)
	assert.True(t, m.sending)
	assert.Empty(t, m.input.Value(), "input buffer cleared on submit")
}

func TestEnter_IgnoredWhenEmpty(t *testing.T) {
	m, _, _ := newTestModel(t, &assistant.ChatResponse{Response: "ok"})
	m.input.SetValue("   ")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*Model)

	assert.Nil(t, cmd)
	assert.False(t, m.sending)
}

func TestEnter_IgnoredWhileSending(t *testing.T) {
	m, _, _ := newTestModel(t, &assistant.ChatResponse{Response: "ok"})
	m.sending = true
	m.input.SetValue("second message")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "second message", m.input.Value(), "buffer kept when dropped")
}

func TestExchangeDone_ShowsConfirmation(t *testing.T) {
	m, _, holder := newTestModel(t, &assistant.ChatResponse{
		Response: "Booked!",
		BookingDetails: &assistant.Booking{
			PatientName:  "Jane Doe",
			PatientEmail: "jane@x.com",
			SlotTime:     "Fri 2pm",
			BookingUUID:  "abc-123",
		},
	})

	require.IsType(t, exchangeDoneMsg{}, m.submitCmd("book me Friday at 2pm")())

	model, _ := m.Update(exchangeDoneMsg{accepted: true})
	m = model.(*Model)

	assert.True(t, m.showModal)
	_, ok := holder.Current()
	assert.True(t, ok)

	view := m.View()
	assert.Contains(t, view, "Appointment Confirmed")
	assert.Contains(t, view, "Jane Doe")
	assert.Contains(t, view, "abc-123")
}

func TestModal_DismissClearsConfirmation(t *testing.T) {
	m, _, holder := newTestModel(t, &assistant.ChatResponse{Response: "ok"})
	holder.Present(assistant.Booking{
		PatientName:  "Jane Doe",
		PatientEmail: "jane@x.com",
		SlotTime:     "Fri 2pm",
		BookingUUID:  "abc-123",
	})
	m.showModal = true

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(*Model)

	assert.False(t, m.showModal)
	_, ok := holder.Current()
	assert.False(t, ok)
	assert.NotContains(t, m.View(), "Appointment Confirmed")
}

func TestTranscriptChanged_RefreshesView(t *testing.T) {
	m, transcript, _ := newTestModel(t, &assistant.ChatResponse{Response: "ok"})
	transcript.Append(chat.Message{Role: chat.RoleUser, Content: "a fresh line"})

	model, cmd := m.Update(transcriptChangedMsg{})
	m = model.(*Model)

	assert.NotNil(t, cmd, "keeps listening for further changes")
	assert.True(t, strings.Contains(m.View(), "a fresh line"))
}

func TestTypingIndicator_VisibleWhileSending(t *testing.T) {
	m, _, _ := newTestModel(t, &assistant.ChatResponse{Response: "ok"})

	assert.NotContains(t, m.View(), "typing")
	m.sending = true
	assert.Contains(t, m.View(), "typing")
}
