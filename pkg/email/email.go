package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
	HospitalName string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

func (s *EmailService) hospitalName() string {
	if s.config.HospitalName != "" {
		return s.config.HospitalName
	}
	return "Medicore"
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.render(passwordResetTemplate, map[string]interface{}{
		"Email":        toEmail,
		"ResetURL":     resetURL,
		"HospitalName": s.hospitalName(),
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Reset Your Password - " + s.hospitalName()
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// SendAppointmentConfirmation sends the patient a booking confirmation
func (s *EmailService) SendAppointmentConfirmation(toEmail, patientName, doctorName string, scheduledAt time.Time) error {
	htmlContent, err := s.render(appointmentTemplate, map[string]interface{}{
		"PatientName":  patientName,
		"DoctorName":   doctorName,
		"When":         scheduledAt.Format("Monday, 02 Jan 2006 at 3:04 PM"),
		"HospitalName": s.hospitalName(),
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Appointment Confirmed - " + s.hospitalName()
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// SendPaymentReceiptEmail sends a payment acknowledgement for an invoice
func (s *EmailService) SendPaymentReceiptEmail(toEmail, patientName, invoiceNo, amount, balance string) error {
	htmlContent, err := s.render(paymentReceiptTemplate, map[string]interface{}{
		"PatientName":  patientName,
		"InvoiceNo":    invoiceNo,
		"Amount":       amount,
		"Balance":      balance,
		"HospitalName": s.hospitalName(),
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Payment Received for %s - %s", invoiceNo, s.hospitalName())
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func (s *EmailService) render(tmplText string, data map[string]interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
