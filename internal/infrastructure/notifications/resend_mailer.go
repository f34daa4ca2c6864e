package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendMailer implements domain.Mailer over the Resend HTTP API.
type ResendMailer struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NewResendMailer creates a new mailer. With an empty API key the mailer
// logs codes instead of sending, so operators can retrieve them in
// development.
func NewResendMailer(apiKey, from string, logger zerolog.Logger) *ResendMailer {
	return &ResendMailer{
		apiKey:   apiKey,
		from:     from,
		endpoint: resendEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// SendOTP implements domain.Mailer
func (m *ResendMailer) SendOTP(ctx context.Context, to, code, purpose string) error {
	if m.apiKey == "" {
		m.logger.Info().
			Str("to", to).
			Str("purpose", purpose).
			Str("otp", code).
			Msg("mail delivery disabled, logging code")
		return nil
	}

	subject := "Your Verification Code"
	if purpose == domain.MailPurposeReset {
		subject = "Password Reset OTP"
	}

	body, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      to,
		Subject: subject,
		HTML:    otpBody(code, purpose),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach mail provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	m.logger.Info().Str("to", to).Str("purpose", purpose).Msg("otp mail sent")
	return nil
}

func otpBody(code, purpose string) string {
	intro := "Your verification code is:"
	if purpose == domain.MailPurposeReset {
		intro = "You requested to reset your password. Use the following OTP to proceed:"
	}
	return fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <p>%s</p>
  <div style="background: #f5f5f5; padding: 20px; text-align: center; font-size: 32px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">%s</div>
  <p style="color: #666;">This code will expire in 10 minutes.</p>
  <p style="color: #666;">If you didn't request this code, please ignore this email.</p>
</div>`, intro, code)
}
