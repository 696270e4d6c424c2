package services

import (
	"crypto/tls"
	"fmt"

	"github.com/campus-connect/campus-backend/internal/config"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(config *config.Config) *EmailService {
	return &EmailService{config: config}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	subject := "Welcome to Campus Connect"
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your Campus Connect account is ready. You can browse the marketplace,
		post to lost &amp; found, and RSVP to campus events right away.</p>
		<p>Happy trading,<br>The Campus Connect Team</p>
	`, name)

	return s.SendEmail(email, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(email, resetToken, baseURL string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", baseURL, resetToken)

	subject := "Password Reset Request"
	body := fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>We received a request to reset the password for <strong>%s</strong>.</p>
		<p><a href="%s">Click here to reset your password</a></p>
		<p>This link expires in 1 hour. If you didn't request this, you can
		safely ignore this email.</p>
	`, email, resetLink)

	return s.SendEmail(email, subject, body)
}
