package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/shopspring/decimal"
)

// Mailer dispatches transactional email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendOTP(to, code string) error
	SendOrderConfirmation(to string, orderID uint, total decimal.Decimal) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates a mailer for the given relay. Auth is configured only
// when a username is provided.
func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	m := &SMTPMailer{
		host: host,
		port: port,
		from: from,
	}
	if username != "" {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

// SendOTP sends a one-time verification code.
func (m *SMTPMailer) SendOTP(to, code string) error {
	body := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)
	return m.send(to, "Your verification code", body)
}

// SendOrderConfirmation sends an order receipt.
func (m *SMTPMailer) SendOrderConfirmation(to string, orderID uint, total decimal.Decimal) error {
	body := fmt.Sprintf("Thank you for your order #%d. Total: %s. We will contact you once it ships.",
		orderID, total.StringFixed(2))
	return m.send(to, fmt.Sprintf("Order #%d confirmed", orderID), body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
