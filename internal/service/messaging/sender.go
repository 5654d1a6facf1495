// Package messaging sends outbound mail.
package messaging

import (
	"context"

	"go.uber.org/zap"
)

type Attachment struct {
	FileName string
	MimeType string
	Content  []byte
}

type EmailSender interface {
	SendEmail(ctx context.Context, from, fromName, to, subject, htmlContent string, attachments ...Attachment) error
}

// NullMessageSender drops every message.
type NullMessageSender struct{}

func (NullMessageSender) SendEmail(context.Context, string, string, string, string, string, ...Attachment) error {
	return nil
}

// LogMessageSender writes a line per message instead of sending it.
type LogMessageSender struct{ Log *zap.Logger }

func (s LogMessageSender) SendEmail(_ context.Context, from, _, to, subject, _ string, attachments ...Attachment) error {
	s.Log.Info("email", zap.String("from", from), zap.String("to", to), zap.String("subject", subject), zap.Int("attachments", len(attachments)))
	return nil
}
