// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer delivers confirmation codes.

Two senders exist: [SMTPMailer] for real delivery and [LogMailer], which only
writes the code to the structured log and is used when no SMTP relay is set.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
)

const confirmationSubject = "Your Yamdb confirmation code"

// Message is a plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Bytes renders the message with minimal RFC 5322 headers.
func (message Message) Bytes() []byte {
	var builder strings.Builder
	fmt.Fprintf(&builder, "From: %s\r\n", message.From)
	fmt.Fprintf(&builder, "To: %s\r\n", message.To)
	fmt.Fprintf(&builder, "Subject: %s\r\n", message.Subject)
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	builder.WriteString(message.Body)
	return []byte(builder.String())
}

// ConfirmationMessage builds the signup email for username.
func ConfirmationMessage(from, to, username, code string) Message {
	return Message{
		From:    from,
		To:      to,
		Subject: confirmationSubject,
		Body: fmt.Sprintf("Hello %s,\r\n\r\nYour confirmation code is: %s\r\n\r\n"+
			"Exchange it together with your username at /api/v1/auth/token.\r\n", username, code),
	}
}

// # SMTP

// SendFunc matches [smtp.SendMail].
type SendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
	send SendFunc
}

// NewSMTPMailer creates a mailer for the relay at addr (host:port).
// Credentials are optional.
func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{addr: addr, from: from, auth: auth, send: smtp.SendMail}
}

// WithSendFunc replaces the transport, for tests.
func (mailer *SMTPMailer) WithSendFunc(send SendFunc) *SMTPMailer {
	mailer.send = send
	return mailer
}

// SendConfirmationCode implements auth.CodeSender.
func (mailer *SMTPMailer) SendConfirmationCode(context context.Context, email, username, code string) error {
	if err := context.Err(); err != nil {
		return err
	}

	message := ConfirmationMessage(mailer.from, email, username, code)
	if err := mailer.send(mailer.addr, mailer.auth, mailer.from, []string{email}, message.Bytes()); err != nil {
		return fmt.Errorf("mailer: smtp send failed: %w", err)
	}
	return nil
}

// # Log

// LogMailer writes confirmation codes to the log instead of sending them.
type LogMailer struct {
	from   string
	logger *slog.Logger
}

// NewLogMailer creates a development mailer.
func NewLogMailer(from string, logger *slog.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

// SendConfirmationCode implements auth.CodeSender.
func (mailer *LogMailer) SendConfirmationCode(context context.Context, email, username, code string) error {
	mailer.logger.InfoContext(context, "confirmation_code_issued",
		slog.String("from", mailer.from),
		slog.String("to", email),
		slog.String("username", username),
		slog.String("code", code),
	)
	return nil
}
