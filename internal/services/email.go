package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"legacyestates/internal/config"
	"legacyestates/internal/domain"
)

// EmailService handles sending notification emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsEnabled returns whether email sending is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// SendSubmissionNotification emails the brokerage inbox about a new lead
func (s *EmailService) SendSubmissionNotification(sub *domain.ContactSubmission) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] New inquiry from %s (%s)\n", sub.Name, sub.Email)
		return nil
	}

	subject := fmt.Sprintf("New Inquiry from %s", sub.Name)

	verified := "No"
	if sub.PhoneVerified {
		verified = "Yes"
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #8B6B2E;">New Inquiry</h2>
    <div style="background: #F8FAFC; padding: 20px; border-radius: 8px;">
      <p><strong>Name:</strong> %s</p>
      <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
      <p><strong>Phone:</strong> %s (verified: %s)</p>
      <p><strong>Submitted:</strong> %s</p>
    </div>
    <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #8B6B2E; margin-top: 16px;">
      <p style="white-space: pre-wrap;">%s</p>
    </div>
    <p style="color: #64748B; font-size: 14px;">Inquiry ID: #%d</p>
  </div>
</body>
</html>`, sub.Name, sub.Email, sub.Email, sub.Phone, verified,
		sub.CreatedAt.Format("January 2, 2006 at 3:04 PM"), sub.Message, sub.ID)

	textBody := fmt.Sprintf(`New Inquiry

Name: %s
Email: %s
Phone: %s (verified: %s)
Submitted: %s

%s

Inquiry ID: #%d`, sub.Name, sub.Email, sub.Phone, verified,
		sub.CreatedAt.Format("January 2, 2006 at 3:04 PM"), sub.Message, sub.ID)

	return s.SendHTMLEmail(s.cfg.AdminEmail, subject, htmlBody, textBody)
}

// SendHTMLEmail sends a multipart email with HTML and plain-text parts
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] Would send to %s: %s\n", to, subject)
		return nil
	}

	boundary := "legacy-estates-boundary"

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.FromEmail)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(textBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", boundary)
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
