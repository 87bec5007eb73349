package chat

import (
	"sync"
	"time"
)

// Transcript is the append-only message log for one conversation. It never
// shrinks and never reorders: any snapshot is a strict prefix of every later
// snapshot. One transcript belongs to exactly one conversation instance.
type Transcript struct {
	mu        sync.RWMutex
	messages  []Message
	observers []func()
}

// NewTranscript creates a transcript seeded with a single assistant greeting.
// An empty greeting falls back to DefaultGreeting.
func NewTranscript(greeting string) *Transcript {
	if greeting == "" {
		greeting = DefaultGreeting
	}
	return &Transcript{
		messages: []Message{{
			Role:      RoleAssistant,
			Content:   greeting,
			Timestamp: time.Now().UTC(),
		}},
	}
}

// Append places msg after all existing entries and notifies observers.
// Messages with an empty role are dropped.
func (t *Transcript) Append(msg Message) {
	if msg.Role == "" {
		return
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	t.mu.Lock()
	t.messages = append(t.messages, msg)
	observers := t.observers
	t.mu.Unlock()

	for _, notify := range observers {
		notify()
	}
}

// Messages returns a snapshot copy of the transcript, oldest first.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Last returns the most recent message. ok is false only for a zero-value
// transcript that was never seeded.
func (t *Transcript) Last() (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Subscribe registers fn to run after every append. Observers must not
// append to the transcript from inside the callback.
func (t *Transcript) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, fn)
}
