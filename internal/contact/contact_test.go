package contact

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	Host:     "smtp.example.com",
	Port:     "587",
	User:     "portfolio@example.com",
	Password: "secret",
	To:       "me@example.com",
}

type sent struct {
	addr string
	from string
	to   []string
	msg  []byte
}

func capture(out *[]sent, err error) SendFunc {
	return func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*out = append(*out, sent{addr: addr, from: from, to: to, msg: msg})
		return err
	}
}

func TestSendDeliversComposedMessage(t *testing.T) {
	var got []sent
	m := NewMailer(testConfig, capture(&got, nil), nil)

	err := m.Send(context.Background(), Message{Name: "Ada", Email: "ada@example.com", Body: "Loved the set."})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "smtp.example.com:587", got[0].addr)
	assert.Equal(t, "portfolio@example.com", got[0].from)
	assert.Equal(t, []string{"me@example.com"}, got[0].to)
	body := string(got[0].msg)
	assert.Contains(t, body, "Subject: Portfolio Contact: Ada\r\n")
	assert.Contains(t, body, "Reply-To: ada@example.com\r\n")
	assert.Contains(t, body, "Loved the set.")
}

func TestSendRejectsBlankFields(t *testing.T) {
	var got []sent
	m := NewMailer(testConfig, capture(&got, nil), nil)

	for _, msg := range []Message{
		{Email: "a@example.com", Body: "hi"},
		{Name: "A", Body: "hi"},
		{Name: "A", Email: "a@example.com", Body: "   "},
	} {
		assert.ErrorIs(t, m.Send(context.Background(), msg), ErrInvalidMessage)
	}
	assert.Empty(t, got)
}

func TestSendRejectsHeaderInjection(t *testing.T) {
	var got []sent
	m := NewMailer(testConfig, capture(&got, nil), nil)

	err := m.Send(context.Background(), Message{Name: "A\r\nBcc: x@example.com", Email: "a@example.com", Body: "hi"})
	assert.ErrorIs(t, err, ErrInvalidMessage)
	assert.Empty(t, got)
}

func TestSendRequiresCredentials(t *testing.T) {
	var got []sent
	cfg := testConfig
	cfg.Password = ""
	m := NewMailer(cfg, capture(&got, nil), nil)

	assert.False(t, m.Configured())
	err := m.Send(context.Background(), Message{Name: "A", Email: "a@example.com", Body: "hi"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, got)
}

func TestSendWrapsTransportErrors(t *testing.T) {
	var got []sent
	boom := errors.New("connection refused")
	m := NewMailer(testConfig, capture(&got, boom), nil)

	err := m.Send(context.Background(), Message{Name: "A", Email: "a@example.com", Body: "hi"})
	assert.ErrorIs(t, err, boom)
}
