// Copyright (c) 2026 YaMDb. All rights reserved.
// Author: serg350.dev@gmail.com

// Package mail delivers transactional email for the signup flow.
//
// # Architecture
//
// The domain layer depends only on the [Sender] interface; the SMTP
// implementation lives here in the Infrastructure layer. Tests substitute an
// in-memory sender.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a plain-text message to a single recipient.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends mail through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender builds a sender targeting host:port, with the given From address.
func NewSMTPSender(host string, port int, from string) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
}

// Send implements [Sender].
//
// The context is honored up front; net/smtp itself does not accept one, so a
// cancellation that arrives mid-dial is not interruptible. Delivery failures
// are returned to the caller, which decides how they surface to the client.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := buildMessage(s.from, to, subject, body)

	if err := smtp.SendMail(s.addr, nil, s.from, []string{to}, message); err != nil {
		return fmt.Errorf("mail: delivery to %s failed: %w", to, err)
	}

	return nil
}

// buildMessage assembles a minimal RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var builder strings.Builder

	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: " + subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	builder.WriteString("\r\n")

	return []byte(builder.String())
}
