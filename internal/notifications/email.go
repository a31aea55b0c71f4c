package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/laksham-labs/assessment-portal/internal/config"
)

// Mailer delivers transactional mail.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error
}

type emailClient struct {
	apiKey     string
	senderName string
	senderMail string
	httpClient *http.Client
	logger     *slog.Logger
}

const sendEndpoint = "https://api.brevo.com/v3/smtp/email"

// NewMailer builds the transactional mail client. Without an API key it
// degrades to logging the mail instead of sending, which keeps local
// development working without credentials.
func NewMailer(cfg *config.Config, logger *slog.Logger) Mailer {
	if cfg.Email.APIKey == "" {
		logger.Warn("Email API key not configured, mail delivery disabled")
		return &disabledMailer{logger: logger}
	}

	return &emailClient{
		apiKey:     cfg.Email.APIKey,
		senderName: cfg.Email.SenderName,
		senderMail: cfg.Email.SenderEmail,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

func (c *emailClient) SendVerificationEmail(ctx context.Context, to, name, verifyURL string) error {
	body := sendRequest{
		Sender:  party{Name: c.senderName, Email: c.senderMail},
		To:      []party{{Name: name, Email: to}},
		Subject: "Verify your email address",
		HTMLContent: fmt.Sprintf(
			"<p>Hi %s,</p><p>Confirm your email address to activate your account:</p><p><a href=%q>Verify email</a></p><p>The link expires in 24 hours.</p>",
			name, verifyURL),
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	c.logger.Info("Verification email sent", "to", to)
	return nil
}

type disabledMailer struct {
	logger *slog.Logger
}

func (m *disabledMailer) SendVerificationEmail(_ context.Context, to, _, verifyURL string) error {
	m.logger.Info("[EMAIL_DISABLED] verification email", "to", to, "verify_url", verifyURL)
	return nil
}
