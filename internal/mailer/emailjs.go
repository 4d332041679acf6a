package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSConfig holds the identifiers EmailJS needs to route a message.
type EmailJSConfig struct {
	PublicKey  string `env:"PUBLIC_KEY"`
	PrivateKey string `env:"PRIVATE_KEY"`
	ServiceID  string `env:"SERVICE_ID"`
	TemplateID string `env:"TEMPLATE_ID"`
	Endpoint   string `env:"ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
}

// Configured reports whether all three routing values are set.
func (c EmailJSConfig) Configured() bool {
	return c.PublicKey != "" && c.ServiceID != "" && c.TemplateID != ""
}

// EmailJS sends messages through the EmailJS REST API using a template whose
// parameters are to_email, from_name, from_email and message.
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
}

func NewEmailJS(cfg EmailJSConfig, client *http.Client) *EmailJS {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &EmailJS{cfg: cfg, client: client}
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJS) Send(ctx context.Context, msg Message) error {
	if !e.cfg.Configured() {
		return errors.Wrap(ErrNotConfigured, "emailjs: public key, service id and template id are required")
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:   e.cfg.ServiceID,
		TemplateID:  e.cfg.TemplateID,
		UserID:      e.cfg.PublicKey,
		AccessToken: e.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"to_email":   msg.ToEmail,
			"from_name":  msg.FromName,
			"from_email": msg.FromEmail,
			"message":    msg.Body,
		},
	})
	if err != nil {
		return errors.Wrap(err, "emailjs: encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "emailjs: build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "emailjs: send")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("emailjs: status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
