package notification

import (
	"fmt"
	"net/smtp"
)

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

type EmailService struct {
	config EmailConfig
}

func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

func (s *EmailService) SendWelcomeEmail(to, firstName string) error {
	subject := "Welcome to Onelga Local Services"
	body := fmt.Sprintf(`<html><body>
		<h2>Welcome, %s</h2>
		<p>Your Onelga Local Government citizen-services account has been created.</p>
		<p>You can now apply for identification letters, birth certificates,
		business and vehicle registration, and health appointments online.</p>
	</body></html>`, firstName)
	return s.sendEmail(to, subject, body)
}

func (s *EmailService) SendAccountSuspendedEmail(to string) error {
	subject := "Your Account Has Been Suspended"
	body := `<html><body>
		<h2>Account Suspended</h2>
		<p>Your Onelga Local Services account has been suspended by an administrator.</p>
		<p>If you believe this is a mistake, please contact support.</p>
	</body></html>`
	return s.sendEmail(to, subject, body)
}

func (s *EmailService) SendAccountReactivatedEmail(to string) error {
	subject := "Your Account Has Been Reactivated"
	body := `<html><body>
		<h2>Account Reactivated</h2>
		<p>Your Onelga Local Services account has been reactivated. You can log in again.</p>
	</body></html>`
	return s.sendEmail(to, subject, body)
}

func (s *EmailService) SendAccountUnlockedEmail(to string) error {
	subject := "Your Account Has Been Unlocked"
	body := `<html><body>
		<h2>Account Unlocked</h2>
		<p>The temporary lock on your Onelga Local Services account has been removed.
		You can log in again.</p>
	</body></html>`
	return s.sendEmail(to, subject, body)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	return smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(msg))
}
