package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrSendFailed marks delivery failures so callers can present a localized
// message while keeping the submitted form data.
var ErrSendFailed = errors.New("send failed")

// DefaultMailerBase is the public EmailJS endpoint.
const DefaultMailerBase = "https://api.emailjs.com"

var contactEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (m ContactMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required),
		validation.Field(&m.Email, validation.Required, validation.Match(contactEmailRe)),
		validation.Field(&m.Message, validation.Required),
	)
}

// Mailer delivers contact messages through an EmailJS-compatible service.
type Mailer struct {
	base       string
	serviceID  string
	templateID string
	userID     string
	client     *http.Client
	logger     *slog.Logger
}

// NewMailer builds a mailer. Empty base selects the public endpoint; a nil
// http.Client gets a 10s timeout default.
func NewMailer(base, serviceID, templateID, userID string, client *http.Client, logger *slog.Logger) *Mailer {
	if base == "" {
		base = DefaultMailerBase
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Mailer{
		base:       base,
		serviceID:  serviceID,
		templateID: templateID,
		userID:     userID,
		client:     client,
		logger:     logger,
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send validates the message and posts it to the email service. A rejected
// or unreachable service returns an error wrapping ErrSendFailed.
func (m *Mailer) Send(ctx context.Context, msg ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	payload := sendRequest{
		ServiceID:  m.serviceID,
		TemplateID: m.templateID,
		UserID:     m.userID,
		TemplateParams: map[string]string{
			"from_name":  msg.Name,
			"from_email": msg.Email,
			"subject":    msg.Subject,
			"message":    msg.Message,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	url := m.base + "/api/v1.0/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Warn("mailer: delivery failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.logger.Warn("mailer: service rejected message", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: email service status %d", ErrSendFailed, resp.StatusCode)
	}

	m.logger.Info("mailer: message delivered", slog.String("from", msg.Email))
	return nil
}
