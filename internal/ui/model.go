package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wolfman30/appointment-chat/internal/assistant"
	"github.com/wolfman30/appointment-chat/internal/chat"
	"github.com/wolfman30/appointment-chat/pkg/logging"
)

// transcriptChangedMsg fires whenever the conversation transcript grows.
type transcriptChangedMsg struct{}

// exchangeDoneMsg fires when a submitted exchange has run to completion.
type exchangeDoneMsg struct {
	accepted bool
}

// Model is the terminal chat front-end: transcript view, input line, typing
// indicator while an exchange is in flight, and a confirmation card overlay
// once a booking completes.
type Model struct {
	coordinator   *chat.Coordinator
	transcript    *chat.Transcript
	confirmations *chat.ConfirmationHolder
	logger        *logging.Logger

	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model
	updates  chan struct{}

	width     int
	height    int
	ready     bool
	sending   bool
	showModal bool
}

// New creates the chat UI model. The confirmation holder doubles as the
// coordinator's booking sink; the transcript observer is bridged onto the
// bubbletea message loop through the updates channel.
func New(coordinator *chat.Coordinator, transcript *chat.Transcript, confirmations *chat.ConfirmationHolder, logger *logging.Logger) *Model {
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := &Model{
		coordinator:   coordinator,
		transcript:    transcript,
		confirmations: confirmations,
		logger:        logger,
		input:         ti,
		spin:          sp,
		updates:       make(chan struct{}, 16),
	}

	transcript.Subscribe(func() {
		select {
		case m.updates <- struct{}{}:
		default:
		}
	})

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, waitForUpdate(m.updates))
}

func waitForUpdate(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return transcriptChangedMsg{}
	}
}

// submitCmd runs the blocking exchange off the render loop. The coordinator
// enforces the one-in-flight rule, so a stray second dispatch is harmless.
func (m *Model) submitCmd(text string) tea.Cmd {
	return func() tea.Msg {
		accepted := m.coordinator.Submit(context.Background(), text)
		return exchangeDoneMsg{accepted: accepted}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 7
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - 8
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		if m.showModal {
			switch msg.String() {
			case "enter", "esc", "q":
				m.confirmations.Dismiss()
				m.showModal = false
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.sending {
				return m, nil
			}
			m.input.Reset()
			m.sending = true
			return m, tea.Batch(m.submitCmd(text), m.spin.Tick)
		}

	case transcriptChangedMsg:
		m.refreshTranscript()
		return m, waitForUpdate(m.updates)

	case exchangeDoneMsg:
		m.sending = false
		m.refreshTranscript()
		if _, ok := m.confirmations.Current(); ok {
			m.showModal = true
		}
		m.logger.Debug("ui: exchange finished", "accepted", msg.accepted, "messages", m.transcript.Len())
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.spin, cmd = m.spin.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) renderTranscript() string {
	var b strings.Builder
	for i, msg := range m.transcript.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := assistantLabelStyle.Render("Assistant")
		if msg.Role == chat.RoleUser {
			label = userLabelStyle.Render("You")
		}
		b.WriteString(label)
		b.WriteString("\n")
		width := m.viewport.Width - 4
		if width < 10 {
			width = 10
		}
		b.WriteString(messageStyle.Width(width).Render(msg.Content))
	}
	return b.String()
}

func (m *Model) View() string {
	if !m.ready {
		return "starting..."
	}

	if m.showModal {
		if booking, ok := m.confirmations.Current(); ok {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderConfirmation(booking))
		}
	}

	header := headerStyle.Render("Medical Appointment Scheduling")
	status := ""
	if m.sending {
		status = typingStyle.Render(m.spin.View() + " assistant is typing...")
	}

	help := helpStyle.Render("enter: send • esc: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		status,
		inputBoxStyle.Width(m.width-4).Render(m.input.View()),
		help,
	)
}

func (m *Model) renderConfirmation(booking assistant.Booking) string {
	field := func(key, value string) string {
		return fmt.Sprintf("%s %s", modalKeyStyle.Render(key+":"), modalValueStyle.Render(value))
	}

	lines := []string{
		modalTitleStyle.Render("Appointment Confirmed"),
		"",
		field("Patient Name", booking.PatientName),
		field("Email", booking.PatientEmail),
		field("Appointment Time", booking.SlotTime),
		field("Booking ID", booking.BookingUUID),
	}

	if booking.RescheduleURL != "" {
		lines = append(lines, "", field("Reschedule", modalLinkStyle.Render(booking.RescheduleURL)))
	}
	if booking.CancelURL != "" {
		lines = append(lines, field("Cancel", modalLinkStyle.Render(booking.CancelURL)))
	}

	lines = append(lines,
		"",
		modalNoteStyle.Render("A confirmation email has been sent to "+booking.PatientEmail),
		"",
		helpStyle.Render("enter/esc: close"),
	)

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
