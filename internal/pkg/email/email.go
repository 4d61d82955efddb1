package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/timedesk/timeclock-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends the transactional notifications of the license
// lifecycle and the password reset flow.
type EmailService interface {
	SendLicenseSubmitted(to, adminName, employeeName, typeName, dateStart, dateEnd string) error
	SendLicenseDecision(to, employeeName, typeName string, approved bool, reason string) error
	SendPasswordReset(to, resetLink, expiresAt string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type licenseSubmittedData struct {
	AdminName    string
	EmployeeName string
	TypeName     string
	DateStart    string
	DateEnd      string
}

// SendLicenseSubmitted notifies an approver that a new request is waiting.
func (s *emailServiceImpl) SendLicenseSubmitted(to, adminName, employeeName, typeName, dateStart, dateEnd string) error {
	data := licenseSubmittedData{
		AdminName:    adminName,
		EmployeeName: employeeName,
		TypeName:     typeName,
		DateStart:    dateStart,
		DateEnd:      dateEnd,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "license_submitted.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("New %s request from %s", typeName, employeeName), body.String())
}

type licenseDecisionData struct {
	EmployeeName string
	TypeName     string
	Decision     string
	Reason       string
}

// SendLicenseDecision notifies the owner of an approval or rejection.
func (s *emailServiceImpl) SendLicenseDecision(to, employeeName, typeName string, approved bool, reason string) error {
	decision := "approved"
	if !approved {
		decision = "rejected"
	}
	data := licenseDecisionData{
		EmployeeName: employeeName,
		TypeName:     typeName,
		Decision:     decision,
		Reason:       reason,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "license_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your %s request was %s", typeName, decision), body.String())
}

type passwordResetData struct {
	ResetLink string
	ExpiresAt string
}

func (s *emailServiceImpl) SendPasswordReset(to, resetLink, expiresAt string) error {
	data := passwordResetData{
		ResetLink: resetLink,
		ExpiresAt: expiresAt,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "password_reset.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Reset your password", body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s\r\n", from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s.
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
