package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for outbound mail.
type EmailService interface {
	SendInvitationEmail(toEmail, schoolName, role, token string) error
	SendWelcomeEmail(toEmail, toName, schoolName string) error
}

// SMTPConfig holds configuration for the SMTP server.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string // Base URL for links embedded in mails
}

// EmailServiceImpl implements EmailService over plain SMTP.
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService.
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{config: config, logger: logger}
}

// SendInvitationEmail mails an invitation link. When SMTP credentials are not
// configured the link is logged instead, so local setups keep working.
func (s *EmailServiceImpl) SendInvitationEmail(toEmail, schoolName, role, token string) error {
	inviteURL := fmt.Sprintf("%s/accept-invitation?token=%s", s.config.BaseURL, token)

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("inviteURL", inviteURL).
			Msg("SMTP credentials not configured - invitation email not sent. Use the URL above for testing.")
		return nil
	}

	subject := fmt.Sprintf("You have been invited to join %s", schoolName)
	body := fmt.Sprintf(
		"Hello,\r\n\r\nYou have been invited to join %s as %s.\r\n\r\n"+
			"Accept the invitation here: %s\r\n\r\n"+
			"This link expires in 7 days.\r\n",
		schoolName, role, inviteURL,
	)

	return s.send(toEmail, subject, body)
}

// SendWelcomeEmail mails a short welcome note after an invitation is accepted.
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName, schoolName string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Debug().Str("toEmail", toEmail).Msg("SMTP credentials not configured - welcome email skipped")
		return nil
	}

	subject := fmt.Sprintf("Welcome to %s", schoolName)
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour account at %s is ready.\r\n", toName, schoolName)

	return s.send(toEmail, subject, body)
}

func (s *EmailServiceImpl) send(toEmail, subject, body string) error {
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	msg := []byte(
		"From: " + s.config.FromName + " <" + s.config.FromEmail + ">\r\n" +
			"To: " + toEmail + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" + body,
	)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
