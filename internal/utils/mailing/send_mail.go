package mailing

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"recipe-catalog/internal/utils"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

// Sender delivers one html mail.
type Sender func(toEmail string, subject string, body string) error

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfigOr("SMTP_PORT", "587"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// Enabled reports whether an SMTP relay is configured.
func (c MailConfig) Enabled() bool {
	return c.SMTPHost != ""
}

// NewSender returns nil when mailing is not configured.
func NewSender(cfg MailConfig) Sender {
	if !cfg.Enabled() {
		return nil
	}
	return func(toEmail string, subject string, body string) error {
		return SendMail(cfg, toEmail, subject, body)
	}
}

func SendMail(cfg MailConfig, toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if cfg.SMTPSender != "" {
		mailer.SetAddressHeader("From", cfg.SMTPEmail, cfg.SMTPSender)
	} else {
		mailer.SetHeader("From", cfg.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		cfg.SMTPHost,
		port,
		cfg.SMTPEmail,
		cfg.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>Your recipe catalog account is ready.{{if .AppURL}} Sign in at <a href="{{.AppURL}}">{{.AppURL}}</a>.{{end}}</p>`,
))

// WelcomeBody renders the registration mail.
func WelcomeBody(name, appURL string) (string, error) {
	var buf bytes.Buffer
	err := welcomeTemplate.Execute(&buf, struct{ Name, AppURL string }{name, appURL})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
