package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ImGajeed76/vibepalette/pkg/vibe/console"
	"github.com/zalando/go-keyring"
)

// ErrEmptyKey is returned for blank keyring entry names.
var ErrEmptyKey = errors.New("key cannot be empty")

// Config represents a configuration instance that uses the system keyring
// to securely store values.
type Config struct {
	service string
}

// New creates a new Config instance with the given service name.
// The service name is used to namespace the stored values in the keyring.
func New(service string) (*Config, error) {
	if service == "" {
		return nil, fmt.Errorf("service name cannot be empty")
	}
	return &Config{
		service: service,
	}, nil
}

// Set stores a value in the keyring under the given key. Storing an empty
// value deletes the entry instead.
func (c *Config) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.TrimSpace(value) == "" {
		return c.Delete(key)
	}
	return keyring.Set(c.service, key, strings.TrimSpace(value))
}

// Get retrieves a value from the keyring by its key.
// Returns an empty string if the key doesn't exist or the keyring is unavailable.
func (c *Config) Get(key string) string {
	if key == "" {
		return ""
	}

	value, err := keyring.Get(c.service, key)
	if err != nil {
		return ""
	}
	return value
}

// Exists checks if a key exists in the keyring.
func (c *Config) Exists(key string) bool {
	if key == "" {
		return false
	}

	_, err := keyring.Get(c.service, key)
	return err == nil
}

// Delete removes a value from the keyring by its key. Deleting a missing
// entry is not an error.
func (c *Config) Delete(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	err := keyring.Delete(c.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// SetFromInput prompts the user for input and stores the value in the keyring.
func (c *Config) SetFromInput(key string, options console.InputOptions) (string, error) {
	value, err := console.Input(options)
	if err != nil {
		return "", err
	}

	err = c.Set(key, value)
	if err != nil {
		return "", err
	}

	return value, nil
}

// Credential reads one keyring entry, falling back to an environment variable.
type Credential struct {
	Config *Config
	Key    string
	EnvVar string
}

// Credential returns the current value, or "" when none is configured.
func (c Credential) Credential() string {
	if c.Config != nil {
		if v := c.Config.Get(c.Key); v != "" {
			return v
		}
	}
	if c.EnvVar != "" {
		return strings.TrimSpace(os.Getenv(c.EnvVar))
	}
	return ""
}

// Save stores value, or deletes the entry when value is blank.
func (c Credential) Save(value string) error {
	if c.Config == nil {
		return fmt.Errorf("no keyring configured")
	}
	return c.Config.Set(c.Key, value)
}
