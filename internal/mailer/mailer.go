// Package mailer delivers outbound email messages.
package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Message is a single outbound email.
type Message struct {
	From    string   `json:"from" bson:"from"`
	To      []string `json:"to" bson:"to"`
	Subject string   `json:"subject" bson:"subject"`
	Body    string   `json:"body" bson:"body"`
}

// Mailer sends messages. Implementations must return delivery errors to the caller.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ConsoleMailer writes every message to w instead of delivering it.
type ConsoleMailer struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewConsoleMailer creates a ConsoleMailer writing to w
func NewConsoleMailer(w io.Writer) *ConsoleMailer {
	return &ConsoleMailer{w: w, now: time.Now}
}

func (m *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("message %q has no recipients", msg.Subject)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := fmt.Fprintf(m.w,
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\n\r\n%s\r\n%s\r\n",
		msg.From,
		strings.Join(msg.To, ", "),
		msg.Subject,
		m.now().Format(time.RFC1123Z),
		msg.Body,
		strings.Repeat("-", 79),
	)
	if err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}
