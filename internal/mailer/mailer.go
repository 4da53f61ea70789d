package mailer

import "fmt"

// Service delivers confirmation emails. Implementations must be safe for
// concurrent use by request handlers.
type Service interface {
	// Send delivers a message with both plaintext and HTML bodies and
	// returns the provider message id when available.
	Send(toEmail, toName, subject, text, html string) (string, error)
	// SendRegistrationConfirmation emails a new user their confirmation
	// code and link.
	SendRegistrationConfirmation(toEmail, toName, code, link string) error
	// SendLoginConfirmation emails an existing user a login code and link.
	SendLoginConfirmation(toEmail, toName, code, link string) error
}

func registrationBodies(name, code, link string) (subject, text, html string) {
	subject = "Confirm your email to complete registration - Academic Manager"
	text = fmt.Sprintf(
		"Welcome, %s!\n\nConfirm your email to complete registration: %s\n\nOr use this 6-digit code: %s\n\nThe link and code expire in 1 hour. After confirming you will be logged in automatically.",
		name, link, code,
	)
	html = confirmationHTML(name, "To complete your registration, confirm your email by clicking the button below:", code, link)
	return subject, text, html
}

func loginBodies(name, code, link string) (subject, text, html string) {
	subject = "Confirm your email to complete login - Academic Manager"
	text = fmt.Sprintf(
		"Welcome back, %s!\n\nConfirm your login: %s\n\nOr use this 6-digit code: %s\n\nThe link and code expire in 1 hour.",
		name, link, code,
	)
	html = confirmationHTML(name, "To complete your login, confirm your email by clicking the button below:", code, link)
	return subject, text, html
}

func confirmationHTML(name, intro, code, link string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2>Welcome, %s!</h2>
    <p>%s</p>
    <div style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #28a745; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Confirm Email</a>
    </div>
    <p style="color: #666; font-size: 14px;">This link expires in 1 hour. After confirmation you will be logged in automatically.</p>
    <p style="color: #666; font-size: 14px;">If you prefer, use this 6-digit code instead: <code>%s</code></p>
    <p style="color: #999; font-size: 12px;">Or copy and paste this link into your browser:<br><code>%s</code></p>
</div>`, name, intro, link, code, link)
}
