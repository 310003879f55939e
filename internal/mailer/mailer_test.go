package mailer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleMailer(t *testing.T) {
	t.Run("writes headers and body", func(t *testing.T) {
		var buf bytes.Buffer
		m := NewConsoleMailer(&buf)
		m.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

		err := m.Send(context.Background(), Message{
			From:    "from@example.com",
			To:      []string{"a@example.com", "b@example.com"},
			Subject: "New post",
			Body:    "New post http://127.0.0.1:8080/api/v1/blogs/ann/posts/1/",
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "From: from@example.com\r\n")
		assert.Contains(t, out, "To: a@example.com, b@example.com\r\n")
		assert.Contains(t, out, "Subject: New post\r\n")
		assert.Contains(t, out, "Date: Fri, 01 Mar 2024 12:00:00 +0000\r\n")
		assert.Contains(t, out, "\r\n\r\nNew post http://127.0.0.1:8080/api/v1/blogs/ann/posts/1/\r\n")
	})

	t.Run("rejects message without recipients", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewConsoleMailer(&buf).Send(context.Background(), Message{Subject: "x"})
		assert.Error(t, err)
		assert.Zero(t, buf.Len())
	})
}
