package mailer

import (
	"fmt"

	"gym-management-be/internal/config"
	"gym-management-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, fullName string) error
	SendPaymentReceipt(toEmail string, receipt Receipt) error
}

// Receipt is what a completed payment email shows.
type Receipt struct {
	FullName  string
	PaymentId string
	Plan      string
	Amount    string
	Currency  string
	Method    string
}

type emailService struct {
	dialer     *gomail.Dialer
	sender     string
	senderName string
	siteURL    string
	logger     logger.ILogger
}

// NewEmailService returns a no-op sender when SMTP is not configured.
func NewEmailService(cfg config.SMTPConfig, siteURL string, log logger.ILogger) IEmailService {
	if cfg.Host == "" {
		return &noopEmailService{logger: log}
	}
	return &emailService{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password),
		sender:     cfg.Email,
		senderName: cfg.SenderName,
		siteURL:    siteURL,
		logger:     log,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.sender, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send email", map[string]interface{}{
			"to":      toEmail,
			"subject": subject,
			"error":   err.Error(),
		})
		return err
	}

	s.logger.Info("MAILER", "Email sent", map[string]interface{}{"to": toEmail, "subject": subject})
	return nil
}

func (s *emailService) SendWelcome(toEmail, fullName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome to %s, %s!</h2>
			<p>Your account is ready. Browse our membership plans to get started:</p>
			<a href="%s/plans" style="background-color: #E4572E; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">View Plans</a>
		</div>
	`, s.senderName, fullName, s.siteURL)

	return s.send(toEmail, "Welcome to "+s.senderName, body)
}

func (s *emailService) SendPaymentReceipt(toEmail string, r Receipt) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment received</h2>
			<p>Hi %s, thanks for your payment.</p>
			<table>
				<tr><td>Reference</td><td>%s</td></tr>
				<tr><td>Plan</td><td>%s</td></tr>
				<tr><td>Amount</td><td>%s %s</td></tr>
				<tr><td>Method</td><td>%s</td></tr>
			</table>
		</div>
	`, r.FullName, r.PaymentId, r.Plan, r.Amount, r.Currency, r.Method)

	return s.send(toEmail, "Your payment receipt", body)
}

type noopEmailService struct {
	logger logger.ILogger
}

func (s *noopEmailService) SendWelcome(toEmail, fullName string) error {
	s.logger.Debug("MAILER", "SMTP disabled, skipping welcome email", map[string]interface{}{"to": toEmail})
	return nil
}

func (s *noopEmailService) SendPaymentReceipt(toEmail string, r Receipt) error {
	s.logger.Debug("MAILER", "SMTP disabled, skipping receipt", map[string]interface{}{"to": toEmail, "payment_id": r.PaymentId})
	return nil
}
