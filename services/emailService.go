package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// sendTimeout bounds every outbound mail call so a slow relay can never
// stall a background sender.
const sendTimeout = 10 * time.Second

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

// SendPasswordResetEmail sends the reset link carrying the raw one-time token.
// The link is only ever delivered here; the database holds its fingerprint.
func (s *EmailService) SendPasswordResetEmail(toEmail string, resetURL string, username string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Reset your password</h2>

    <p>Hello %s,</p>

    <p>Click the link below to reset your StockRoom password (valid for 1 hour):</p>

    <p><a href="%s" target="_blank">%s</a></p>

    <p>If you did not request this, you can ignore this email. Your password will remain unchanged.</p>

    <p>The StockRoom Team</p>
</body>
</html>
`, username, resetURL, resetURL)

	textBody := fmt.Sprintf(`
Reset your password

Hello %s,

Open the link below to reset your StockRoom password (valid for 1 hour):

%s

If you did not request this, you can ignore this email. Your password will remain unchanged.

The StockRoom Team
`, username, resetURL)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      []string{toEmail},
		Subject: "Reset your password",
		Html:    htmlBody,
		Text:    textBody,
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send password reset email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Successfully sent password reset email to %s. Email ID: %s", toEmail, sent.Id)
	return nil
}

// SendWelcomeEmail sends a welcome email to new users
func (s *EmailService) SendWelcomeEmail(toEmail string, username string) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Welcome to StockRoom, %s!</h2>

    <p>Your account has been created. You can now browse the inventory and submit item requests.</p>

    <p>The StockRoom Team</p>
</body>
</html>
`, username)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_FROM_EMAIL"),
		To:      []string{toEmail},
		Subject: "Welcome to StockRoom!",
		Html:    htmlBody,
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send welcome email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.Printf("Successfully sent welcome email to %s. Email ID: %s", toEmail, sent.Id)
	return nil
}
