// Package config reads the server settings from the environment. A .env file
// in the working directory is loaded first.
package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"

	"github.com/vathanak/portfolio/internal/content"
	"github.com/vathanak/portfolio/internal/mailer"
)

// Mail transports.
const (
	TransportEmailJS = "emailjs"
	TransportSMTP    = "smtp"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ContentSource  string        `env:"CONTENT_SOURCE" envDefault:"static/data.json"`
	ContentWatch   bool          `env:"CONTENT_WATCH" envDefault:"true"`
	ContentTimeout time.Duration `env:"CONTENT_TIMEOUT" envDefault:"10s"`
	StaticDir      string        `env:"STATIC_DIR" envDefault:"./static"`

	MailTransport string               `env:"MAIL_TRANSPORT" envDefault:"emailjs"`
	EmailJS       mailer.EmailJSConfig `envPrefix:"EMAILJS_"`
	SMTP          mailer.SMTPConfig    `envPrefix:"SMTP_"`
}

// Load parses the environment into a Config. Missing mail credentials are
// not an error here; sends fail at request time instead.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse environment")
	}
	cfg.MailTransport = strings.ToLower(strings.TrimSpace(cfg.MailTransport))
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// Validate checks values that would make the server unusable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ContentSource) == "" {
		return errors.New("CONTENT_SOURCE is required")
	}
	if c.ContentTimeout <= 0 {
		return errors.New("CONTENT_TIMEOUT must be positive")
	}
	switch c.MailTransport {
	case TransportEmailJS, TransportSMTP:
	default:
		return errors.Errorf("MAIL_TRANSPORT must be %q or %q, got %q", TransportEmailJS, TransportSMTP, c.MailTransport)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// IsRemoteContent reports whether the content document is fetched over HTTP.
func (c Config) IsRemoteContent() bool {
	return content.IsRemote(c.ContentSource)
}

// Sender builds the configured mail transport.
func (c Config) Sender() mailer.Sender {
	if c.MailTransport == TransportSMTP {
		return mailer.NewSMTP(c.SMTP)
	}
	return mailer.NewEmailJS(c.EmailJS, nil)
}
