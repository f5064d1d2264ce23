// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config holds the bootstrap configuration of a platform: the log
// level, the metadata values handed to plugins and the model files to load.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/tochemey/goplatform/identity"
	"github.com/tochemey/goplatform/internal/validation"
	"github.com/tochemey/goplatform/log"
	"github.com/tochemey/goplatform/platform"
)

// EnvPrefix prefixes the environment variables overriding the configuration
const EnvPrefix = "GOPLATFORM"

// LoggerName names the entries of the configured logger
const LoggerName = "platform"

// ErrInvalidConfig is returned when the configuration does not validate
var ErrInvalidConfig = errors.New("invalid configuration")

// MetadataEntry binds a metadata identifier to its value
type MetadataEntry struct {
	ID    string `mapstructure:"id"`
	Value any    `mapstructure:"value"`
}

// Config represents the platform bootstrap configuration
type Config struct {
	// Specifies the log level: debug, info, warn, error, fatal or panic.
	// The default value is info
	LogLevel string `mapstructure:"log_level"`
	// Specifies whether the platform records OpenTelemetry metrics
	Metrics bool `mapstructure:"metrics"`
	// Specifies the metadata values set on the platform before any plugin starts
	Metadata []MetadataEntry `mapstructure:"metadata"`
	// Specifies the model files loaded into new sessions, in order
	Models []string `mapstructure:"models"`
}

// New creates an instance of Config
func New(options ...Option) *Config {
	config := &Config{
		LogLevel: log.InfoLevel.String(),
	}
	for _, opt := range options {
		opt.Apply(config)
	}
	return config
}

// Load reads the configuration file at path.
// The format is taken from the file extension. Environment variables prefixed
// with GOPLATFORM_ override the file, e.g. GOPLATFORM_LOG_LEVEL.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log_level", log.InfoLevel.String())
	v.SetDefault("metrics", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := new(Config)
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the log level and every metadata identifier
func (c *Config) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddAssertion(log.ParseLevel(c.LogLevel) != log.InvalidLevel, fmt.Sprintf("unknown log level %q", c.LogLevel))
	for _, entry := range c.Metadata {
		chain.AddValidator(validation.NewIdentifierValidator("metadata id", entry.ID, ""))
	}
	for _, model := range c.Models {
		chain.AddValidator(validation.NewEmptyStringValidator("model path", model))
	}
	if err := chain.Validate(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// Logger creates the logger described by the configuration
func (c *Config) Logger(writers ...io.Writer) log.Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}
	return log.NewZap(log.ParseLevel(c.LogLevel), writers...).Named(LoggerName)
}

// PlatformOptions returns the platform options described by the configuration
func (c *Config) PlatformOptions(logger log.Logger) []platform.Option {
	opts := []platform.Option{platform.WithLogger(logger)}
	if c.Metrics {
		opts = append(opts, platform.WithMetrics())
	}
	return opts
}

// ApplyMetadata sets every configured metadata value on p.
// Entries are applied in order; a later entry overrides an earlier one.
func (c *Config) ApplyMetadata(p *platform.Platform) error {
	var err error
	for _, entry := range c.Metadata {
		id, parseErr := identity.Parse(entry.ID)
		if parseErr != nil {
			err = multierr.Append(err, parseErr)
			continue
		}
		p.SetMetadata(id, entry.Value)
	}
	return err
}
