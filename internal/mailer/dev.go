package mailer

import "log"

// DevMailer logs messages instead of sending them. Used when no mail
// transport is configured.
type DevMailer struct{}

// NewDevMailer builds a logging mailer.
func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) Send(toEmail, toName, subject, text, html string) (string, error) {
	log.Printf("[mailer] to=%s subject=%q\n%s", toEmail, subject, text)
	return "", nil
}

func (d *DevMailer) SendRegistrationConfirmation(toEmail, toName, code, link string) error {
	subject, text, _ := registrationBodies(toName, code, link)
	_, err := d.Send(toEmail, toName, subject, text, "")
	return err
}

func (d *DevMailer) SendLoginConfirmation(toEmail, toName, code, link string) error {
	subject, text, _ := loginBodies(toName, code, link)
	_, err := d.Send(toEmail, toName, subject, text, "")
	return err
}
