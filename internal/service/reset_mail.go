package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers password reset links
type Mailer interface {
	SendPasswordReset(to, link string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type SMTPMailer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Sender, cfg.Password),
	}
}

func (m *SMTPMailer) SendPasswordReset(to, link string) error {
	if to == m.cfg.Sender {
		return errors.New("invalid email address")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/html", fmt.Sprintf("Click <a href='%v'>here</a> to choose a new password.\n\nIf you didn't ask for this you can ignore this email.", link))
	msg.AddAlternative("text/plain", "Open this link to choose a new password: "+link)

	return m.dialer.DialAndSend(msg)
}

// LogMailer only logs the link. Used when mail is disabled.
type LogMailer struct{}

func (LogMailer) SendPasswordReset(to, link string) error {
	zap.L().Debug("Password reset requested, mail is disabled", zap.String("to", to), zap.String("link", link))
	return nil
}
