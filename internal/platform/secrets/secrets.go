// Package secrets loads the provider credentials once at startup.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"statusgate/internal/platform/config"
)

// ErrMissingCredential is returned when a required field is blank.
var ErrMissingCredential = errors.New("missing credential")

// Credentials are read-only after load and never persisted.
type Credentials struct {
	APIKey        string `yaml:"api_key" json:"api_key"`
	PayloadSecret string `yaml:"payload_secret" json:"payload_secret"`
	Username      string `yaml:"username" json:"username"`
	Password      string `yaml:"password" json:"password"`
}

// String redacts everything so credentials never end up in logs.
func (c Credentials) String() string {
	return "secrets.Credentials{redacted}"
}

func (c Credentials) validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if c.PayloadSecret == "" {
		missing = append(missing, "payload_secret")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredential, strings.Join(missing, ", "))
	}
	return nil
}

type Source interface {
	Load(ctx context.Context) (Credentials, error)
}

// FileSource reads a YAML (or JSON, which YAML accepts) document.
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) (Credentials, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}
	var creds Credentials
	if err := yaml.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials file: %w", err)
	}
	if err := creds.validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Environment variable names read by EnvSource.
const (
	EnvAPIKey        = "STATUSGATE_CREDENTIALS_API_KEY"
	EnvPayloadSecret = "STATUSGATE_CREDENTIALS_PAYLOAD_SECRET"
	EnvUsername      = "STATUSGATE_CREDENTIALS_USERNAME"
	EnvPassword      = "STATUSGATE_CREDENTIALS_PASSWORD"
)

// EnvSource reads credentials from the process environment.
type EnvSource struct {
	lookup func(string) string
}

func NewEnvSource() EnvSource {
	return EnvSource{lookup: os.Getenv}
}

func (s EnvSource) Load(_ context.Context) (Credentials, error) {
	lookup := s.lookup
	if lookup == nil {
		lookup = os.Getenv
	}
	creds := Credentials{
		APIKey:        lookup(EnvAPIKey),
		PayloadSecret: lookup(EnvPayloadSecret),
		Username:      lookup(EnvUsername),
		Password:      lookup(EnvPassword),
	}
	if err := creds.validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// FromConfig picks the source named in config.
func FromConfig(cfg config.SecretsConfig) Source {
	if cfg.Source == config.SecretsFromFile {
		return FileSource{Path: cfg.File}
	}
	return NewEnvSource()
}
