package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers mail through a plain SMTP relay (Mailpit in
// development, an authenticated relay in staging).
type SMTPMailer struct {
	host string
	port int
	from string
	user string
	pass string
}

// NewSMTPMailer builds an SMTP-backed mailer.
func NewSMTPMailer(host string, port int, from, user, pass string) *SMTPMailer {
	return &SMTPMailer{
		host: strings.TrimSpace(host),
		port: port,
		from: strings.TrimSpace(from),
		user: strings.TrimSpace(user),
		pass: strings.TrimSpace(pass),
	}
}

// Send delivers a multipart/alternative message. SMTP reports no message
// id, so the first return value is always empty.
func (s *SMTPMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return "", fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	boundary := "mixed-boundary"
	fmt.Fprintf(&buf, "From: %s\r\n", s.from)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", text)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", html)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	// Local relay without auth (Mailpit on 1025).
	if s.user == "" {
		return "", smtp.SendMail(addr, nil, s.from, []string{toEmail}, buf.Bytes())
	}

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	return "", smtp.SendMail(addr, auth, s.from, []string{toEmail}, buf.Bytes())
}

func (s *SMTPMailer) SendRegistrationConfirmation(toEmail, toName, code, link string) error {
	subject, text, html := registrationBodies(toName, code, link)
	_, err := s.Send(toEmail, toName, subject, text, html)
	return err
}

func (s *SMTPMailer) SendLoginConfirmation(toEmail, toName, code, link string) error {
	subject, text, html := loginBodies(toName, code, link)
	_, err := s.Send(toEmail, toName, subject, text, html)
	return err
}
