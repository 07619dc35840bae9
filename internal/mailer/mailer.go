package mailer

import (
	"time"

	"github.com/pkg/errors"
	"github.com/ventaroai/ventaro-server/config"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Sender delivers one message through a single provider
type Sender interface {
	Name() string
	Send(to, subject, htmlBody string) error
}

// SmtpSender is a gomail-backed Sender
type SmtpSender struct {
	name string
	cfg  config.SmtpConfig
}

func NewSmtpSender(name string, cfg config.SmtpConfig) *SmtpSender {
	return &SmtpSender{name: name, cfg: cfg}
}

func (s *SmtpSender) Name() string { return s.name }

func (s *SmtpSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}

// Mailer sends transactional email through a provider fallback chain and
// records every attempt. All sends are best effort: callers never fail a
// request because mail could not be delivered.
type Mailer struct {
	senders   []Sender
	db        *gorm.DB
	adminAddr string
}

func NewMailer(cfg config.MailConfig, db *gorm.DB) *Mailer {
	m := &Mailer{db: db, adminAddr: cfg.AdminAddr}
	if cfg.Primary.Host != "" {
		m.senders = append(m.senders, NewSmtpSender("primary", cfg.Primary))
	}
	if cfg.Secondary.Host != "" {
		m.senders = append(m.senders, NewSmtpSender("secondary", cfg.Secondary))
	}
	return m
}

// NewMailerWithSenders wires an explicit sender chain (used in tests)
func NewMailerWithSenders(db *gorm.DB, adminAddr string, senders ...Sender) *Mailer {
	return &Mailer{senders: senders, db: db, adminAddr: adminAddr}
}

func (m *Mailer) AdminAddr() string { return m.adminAddr }

// Send walks the provider chain until one delivery succeeds
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if len(m.senders) == 0 {
		return errors.New("no mail providers configured")
	}

	var lastErr error
	for _, sender := range m.senders {
		err := sender.Send(to, subject, htmlBody)
		m.logAttempt(to, subject, sender.Name(), err)
		if err == nil {
			return nil
		}
		zap.L().Warn("mail provider failed, trying next",
			zap.String("provider", sender.Name()),
			zap.String("to", to),
			zap.Error(err))
		lastErr = err
	}
	return errors.Wrap(lastErr, "all mail providers failed")
}

// logAttempt records the delivery attempt; the write itself is best effort
func (m *Mailer) logAttempt(to, subject, provider string, sendErr error) {
	if m.db == nil {
		return
	}
	entry := domain.EmailLog{
		To:       to,
		Subject:  subject,
		Provider: provider,
		Status:   "sent",
		SentAt:   time.Now(),
	}
	if sendErr != nil {
		entry.Status = "failed"
		entry.ErrorMsg = sendErr.Error()
	}
	if err := m.db.Create(&entry).Error; err != nil {
		zap.L().Warn("failed to write email log", zap.Error(err))
	}
}
