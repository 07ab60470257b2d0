package event

import (
	"context"

	"Lee_Groups/internal/pkg"
)

// WelcomeMailer 只关心 user.registered，其余事件忽略
type WelcomeMailer struct {
	cfg  pkg.SMTPConfig
	send func(cfg pkg.SMTPConfig, to, subject, htmlBody string) error
}

func NewWelcomeMailer(cfg pkg.SMTPConfig) *WelcomeMailer {
	return &WelcomeMailer{cfg: cfg, send: pkg.SendEmail}
}

func (m *WelcomeMailer) Publish(_ context.Context, ev Event) error {
	if ev.Type != UserRegistered {
		return nil
	}
	to, _ := ev.Payload["email"].(string)
	username, _ := ev.Payload["username"].(string)
	if to == "" {
		return nil
	}
	return m.send(m.cfg, to, "Welcome", pkg.WelcomeHTML(username))
}
