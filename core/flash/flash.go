// Package flash queues user-facing messages in the session until the next page
// render takes them.
package flash

import (
	"context"
	"slices"

	"github.com/goteo/foundation/core/session"
)

// Level classifies a message.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Message is a queued user-facing message.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Messenger stores messages under session.KeyMessages.
// The zero value is ready to use.
type Messenger struct{}

// New returns a Messenger.
func New() *Messenger {
	return &Messenger{}
}

// Info queues an informational message.
func (m *Messenger) Info(ctx context.Context, sess *session.Session, text string) error {
	return m.push(ctx, sess, Message{Level: LevelInfo, Text: text})
}

// Error queues an error message.
func (m *Messenger) Error(ctx context.Context, sess *session.Session, text string) error {
	return m.push(ctx, sess, Message{Level: LevelError, Text: text})
}

// Peek returns the queued messages without removing them.
func (m *Messenger) Peek(sess *session.Session) []Message {
	var msgs []Message
	sess.Get(session.KeyMessages, &msgs)
	return msgs
}

// Take returns and removes the queued messages.
func (m *Messenger) Take(ctx context.Context, sess *session.Session) ([]Message, error) {
	msgs := m.Peek(sess)
	if len(msgs) == 0 {
		return nil, nil
	}
	if err := sess.Delete(ctx, session.KeyMessages); err != nil {
		return msgs, err
	}
	return msgs, nil
}

// push appends msg unless an identical message is already queued.
func (m *Messenger) push(ctx context.Context, sess *session.Session, msg Message) error {
	if msg.Text == "" {
		return nil
	}
	msgs := m.Peek(sess)
	if slices.Contains(msgs, msg) {
		return nil
	}
	return sess.Store(ctx, session.KeyMessages, append(msgs, msg))
}
