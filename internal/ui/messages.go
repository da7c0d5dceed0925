package ui

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Message represents a status message with timestamp
type Message struct {
	Text      string
	Timestamp time.Time
}

// MessageLogger keeps the last N status messages. The newest one is shown
// in the status line until it is older than the expiry.
type MessageLogger struct {
	messages []Message
	maxSize  int
	expiry   time.Duration
	clock    clockwork.Clock
	mu       sync.Mutex
}

// NewMessageLogger creates a message logger that shows messages for expiry
func NewMessageLogger(maxSize int, expiry time.Duration, clock clockwork.Clock) *MessageLogger {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MessageLogger{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		expiry:   expiry,
		clock:    clock,
	}
}

// AddMessage adds a status message; empty text is ignored
func (ml *MessageLogger) AddMessage(text string) {
	if text == "" {
		return
	}
	ml.mu.Lock()
	defer ml.mu.Unlock()

	ml.messages = append(ml.messages, Message{Text: text, Timestamp: ml.clock.Now()})
	if len(ml.messages) > ml.maxSize {
		ml.messages = ml.messages[len(ml.messages)-ml.maxSize:]
	}
}

// Current returns the newest message while it has not expired
func (ml *MessageLogger) Current() (string, bool) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if len(ml.messages) == 0 {
		return "", false
	}
	last := ml.messages[len(ml.messages)-1]
	if ml.clock.Since(last.Timestamp) > ml.expiry {
		return "", false
	}
	return last.Text, true
}

// GetMessagesReverse returns all messages, newest first
func (ml *MessageLogger) GetMessagesReverse() []Message {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	result := make([]Message, len(ml.messages))
	for i, msg := range ml.messages {
		result[len(ml.messages)-1-i] = msg
	}
	return result
}

// Count returns the number of messages in the logger
func (ml *MessageLogger) Count() int {
	ml.mu.Lock()
	defer ml.mu.Unlock()
	return len(ml.messages)
}
