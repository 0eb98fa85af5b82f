package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
)

type ResendConfig struct {
	APIKey string
	From   string
}

// NewResendConfig reads the Resend credentials. Delivery is optional: when
// the key is missing the service runs with email disabled instead of failing
// startup.
func NewResendConfig() *ResendConfig {
	return &ResendConfig{
		APIKey: os.Getenv("RESEND_API_KEY"),
		From:   os.Getenv("FROM_EMAIL"),
	}
}

type EmailService struct {
	client *resend.Client
	from   string
}

func NewEmailService(lc fx.Lifecycle, config *ResendConfig) *EmailService {
	service := &EmailService{from: config.From}
	if config.APIKey != "" && config.From != "" {
		service.client = resend.NewClient(config.APIKey)
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if service.Enabled() {
				log.Println("Email Service initialized")
			} else {
				log.Println("Email delivery disabled, RESEND_API_KEY or FROM_EMAIL not set")
			}
			return nil
		},
	})
	return service
}

func (e *EmailService) Enabled() bool {
	return e.client != nil
}

func (e *EmailService) SendEmail(to, subject, body string) error {
	if !e.Enabled() {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    e.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	if _, err := e.client.Emails.Send(params); err != nil {
		return fmt.Errorf("Failed to send Email: %w", err)
	}

	log.Println("Email sent successfully to ", to)
	return nil
}
