// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mailer_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/platform/mailer"
)

func TestSMTPMailer_SendConfirmationCode(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotBody string
	)
	send := func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotBody = addr, to, string(msg)
		return nil
	}

	m := mailer.NewSMTPMailer("smtp.local:25", "noreply@yamdb.local", "", "").WithSendFunc(send)
	require.NoError(t, m.SendConfirmationCode(context.Background(), "bob@x.com", "bob", "c0de"))

	assert.Equal(t, "smtp.local:25", gotAddr)
	assert.Equal(t, []string{"bob@x.com"}, gotTo)
	assert.Contains(t, gotBody, "To: bob@x.com\r\n")
	assert.Contains(t, gotBody, "c0de")
}

func TestSMTPMailer_PropagatesFailure(t *testing.T) {
	send := func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay down") }

	m := mailer.NewSMTPMailer("smtp.local:25", "noreply@yamdb.local", "u", "p").WithSendFunc(send)
	assert.Error(t, m.SendConfirmationCode(context.Background(), "bob@x.com", "bob", "c0de"))
}

func TestLogMailer(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	require.NoError(t, mailer.NewLogMailer("noreply@yamdb.local", logger).
		SendConfirmationCode(context.Background(), "bob@x.com", "bob", "c0de"))
	assert.Contains(t, buf.String(), `"code":"c0de"`)
}
