package services

import (
	"fmt"
	"net/smtp"
	"regexp"
	"strings"

	"github.com/neeste/neeste-api/models"
)

// EmailInterface defines the interface for outbound mail
type EmailInterface interface {
	Send(settings *models.SiteSettings, to, subject, htmlContent string) error
}

// EmailService sends mail over SMTP using the host configured in SiteSettings
type EmailService struct{}

var emailServiceInstance EmailInterface = &EmailService{}

// GetEmailService returns the email service instance
func GetEmailService() EmailInterface {
	return emailServiceInstance
}

// SetEmailService sets the email service instance (primarily for testing)
func SetEmailService(service EmailInterface) {
	emailServiceInstance = service
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML tags, leaving the text content. Used to derive the
// plain-text alternative for newsletter mail.
func StripTags(html string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(html, ""))
}

// Send delivers one email to a single recipient as multipart/alternative,
// with a plain-text part derived from the HTML content
func (s *EmailService) Send(settings *models.SiteSettings, to, subject, htmlContent string) error {
	if settings.EmailHostUser == "" {
		return fmt.Errorf("email is not configured")
	}

	from := settings.EmailFromEmail
	if from == "" {
		from = settings.EmailHostUser
	}

	const boundary = "neeste-mail-boundary"
	headers := []string{
		fmt.Sprintf("From: %s <%s>", settings.EmailFromName, from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q", boundary),
	}
	parts := []string{
		strings.Join(headers, "\r\n"),
		"",
		"--" + boundary,
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		StripTags(htmlContent),
		"--" + boundary,
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		"<html><body>" + htmlContent + "</body></html>",
		"--" + boundary + "--",
	}
	message := strings.Join(parts, "\r\n")

	addr := fmt.Sprintf("%s:%d", settings.EmailHost, settings.EmailPort)
	auth := smtp.PlainAuth("", settings.EmailHostUser, settings.EmailHostPassword, settings.EmailHost)

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
