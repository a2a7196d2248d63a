package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/club-roster-api/internal/config"
	"github.com/club-roster-api/internal/models"
	"github.com/club-roster-api/internal/repository"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// WelcomeEmail is an outbound welcome message. CC falls back to the
// configured default when empty.
type WelcomeEmail struct {
	To      string
	CC      string
	Subject string
	Body    string
}

// smtpSettings is the effective SMTP configuration after merging
// environment overrides with the settings table.
type smtpSettings struct {
	Host string
	Port int
	SSL  bool
	User string
	Pass string
}

// emailService sends mail over SMTP. Connection parameters come from
// the environment first, then the settings table.
type emailService struct {
	settings repository.SettingsRepository
	smtp     config.SMTPConfig
	log      zerolog.Logger

	// send is swapped out in tests to avoid a live SMTP connection.
	send func(d *gomail.Dialer, m *gomail.Message) error
}

// NewEmailService creates a new EmailService
func NewEmailService(settings repository.SettingsRepository, smtp config.SMTPConfig, log zerolog.Logger) EmailService {
	return &emailService{
		settings: settings,
		smtp:     smtp,
		log:      log.With().Str("service", "email").Logger(),
		send: func(d *gomail.Dialer, m *gomail.Message) error {
			return d.DialAndSend(m)
		},
	}
}

// SendWelcome delivers a welcome email with sender identity and
// defaults taken from the settings table
func (s *emailService) SendWelcome(ctx context.Context, email WelcomeEmail) error {
	settings, err := s.settings.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	smtp := resolveSMTP(s.smtp, settings)
	if smtp.Host == "" {
		return fmt.Errorf("SMTP host is not configured")
	}

	fromName := settings.Get("email_from_name")
	if fromName == "" {
		fromName = "Club Roster"
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", settings.Get("email_from_address"), fromName)
	m.SetHeader("To", email.To)

	cc := email.CC
	if cc == "" {
		cc = settings.Get("email_cc")
	}
	if cc != "" {
		m.SetHeader("Cc", cc)
	}
	if replyTo := settings.Get("email_reply_to"); replyTo != "" {
		m.SetHeader("Reply-To", replyTo)
	}

	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/html", email.Body)

	dialer := gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Pass)
	dialer.SSL = smtp.SSL

	if err := s.send(dialer, m); err != nil {
		s.log.Error().Err(err).Str("to", email.To).Msg("Failed to send email")
		return err
	}

	s.log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("Email sent")
	return nil
}

// resolveSMTP merges environment overrides with settings-table values.
// Port defaults to 587; SSL defaults to on for port 465.
func resolveSMTP(env config.SMTPConfig, settings models.Settings) smtpSettings {
	portStr := firstNonEmpty(env.Port, settings.Get("smtp_port"), "587")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 587
	}

	secure := firstNonEmpty(env.Secure, settings.Get("smtp_secure"))

	return smtpSettings{
		Host: firstNonEmpty(env.Host, settings.Get("smtp_host")),
		Port: port,
		SSL:  secure == "true" || (secure == "" && port == 465),
		User: firstNonEmpty(env.User, settings.Get("smtp_user")),
		Pass: firstNonEmpty(env.Pass, settings.Get("smtp_pass")),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
