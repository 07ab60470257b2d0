package pkg

import (
	"crypto/tls"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.From != "" }

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return d.DialAndSend(m)
}

// WelcomeHTML 注册成功后的欢迎邮件
func WelcomeHTML(username string) string {
	return fmt.Sprintf(`<p>Hi <b>%s</b>,</p><p>Your account is ready. Create a group and start posting.</p>`, html.EscapeString(username))
}
