// Package mailer sends back-office notification emails via SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/onemarketph/backoffice/internal/model"
)

type Config struct {
	Host        string
	Port        int
	User        string
	Pass        string
	FromName    string
	FromAddress string
}

// NewConfigFromAdmin builds mailer config from the SMTP credentials stored on
// the admin record.
func NewConfigFromAdmin(a *model.Admin) *Config {
	return &Config{
		Host:        a.SMTPHost,
		Port:        a.SMTPPort,
		User:        a.SMTPUser,
		Pass:        a.SMTPPass,
		FromName:    "1 Market Philippines",
		FromAddress: a.Email,
	}
}

type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends emails via SMTP. sendFn is swappable in tests.
type Mailer struct {
	cfg    *Config
	sendFn func(Message) error
}

func New(cfg *Config) *Mailer {
	m := &Mailer{cfg: cfg}
	m.sendFn = m.sendSMTP
	return m
}

// Reconfigure updates the mailer with new settings, e.g. after the admin
// changes SMTP credentials.
func (m *Mailer) Reconfigure(cfg *Config) {
	m.cfg = cfg
}

// Configured reports whether enough SMTP settings are present to send.
func (m *Mailer) Configured() bool {
	return m.cfg != nil && m.cfg.Host != "" && m.cfg.FromAddress != ""
}

// Send delivers a plain-text email to the given recipients.
func (m *Mailer) Send(to []string, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer: not configured")
	}
	return m.sendFn(Message{To: to, Subject: subject, Body: body})
}

func (m *Mailer) formatMessage(msg Message) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.FromAddress)
	fmt.Fprintf(&sb, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&sb, "Subject: %s\r\n", msg.Subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(msg.Body)
	return sb.String()
}

func (m *Mailer) sendSMTP(msg Message) error {
	s := m.cfg
	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	return smtp.SendMail(addr, auth, s.FromAddress, msg.To, []byte(m.formatMessage(msg)))
}
