package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSenderDisabledWithoutHost(t *testing.T) {
	assert.Nil(t, NewSender(MailConfig{}))
	assert.NotNil(t, NewSender(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587"}))
}

func TestSendMailRejectsBadPort(t *testing.T) {
	err := SendMail(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "smtp"}, "a@example.com", "hi", "body")
	assert.ErrorContains(t, err, "invalid SMTP_PORT")
}

func TestWelcomeBodyEscapesName(t *testing.T) {
	body, err := WelcomeBody("<Chef>", "https://recipes.example.com")
	require.NoError(t, err)
	assert.Contains(t, body, "&lt;Chef&gt;")
	assert.Contains(t, body, `href="https://recipes.example.com"`)

	body, err = WelcomeBody("", "")
	require.NoError(t, err)
	assert.Contains(t, body, "Hi there")
	assert.NotContains(t, body, "href")
}
