package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether SMTP is configured; notices are skipped
// entirely when it is not.
func (c SMTPConfig) Enabled() bool { return c.Host != "" }

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// Mailer sends the transactional notices. A zero SMTP config turns
// every send into a silent no-op.
type Mailer struct {
	cfg SMTPConfig
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) SendWelcome(email, name string) error {
	if !m.cfg.Enabled() {
		return nil
	}
	return SendEmail(m.cfg, email, "Welcome to Sclusiv", WelcomeHTML(name))
}

func (m *Mailer) SendBanNotice(email, name string, banned bool) error {
	if !m.cfg.Enabled() {
		return nil
	}
	subject := "Your account has been suspended"
	if !banned {
		subject = "Your account has been reinstated"
	}
	return SendEmail(m.cfg, email, subject, BanNoticeHTML(name, banned))
}

func WelcomeHTML(name string) string {
	return fmt.Sprintf(`<p>Hi %s,</p><p>Your Sclusiv account is ready. You start with <b>1000 credits</b>.</p>`, name)
}

func BanNoticeHTML(name string, banned bool) string {
	if banned {
		return fmt.Sprintf(`<p>Hi %s,</p><p>Your account has been <b>suspended</b> by an administrator.</p>`, name)
	}
	return fmt.Sprintf(`<p>Hi %s,</p><p>Your account has been <b>reinstated</b>. Welcome back.</p>`, name)
}
