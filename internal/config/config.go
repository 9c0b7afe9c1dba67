// Package config handles configuration and credentials for chatboot.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	apierrors "github.com/diogo/chatboot/internal/errors"
	"github.com/diogo/chatboot/internal/models"
)

// EnvPrefix is prepended to every environment override (CHATBOOT_URL, ...)
const EnvPrefix = "CHATBOOT"

// Legacy environment names accepted as fallbacks for the three endpoint values
const (
	legacyEnvUsername = "VITE_REACT_APP_USERNAME"
	legacyEnvPassword = "VITE_REACT_APP_PASSWORD"
	legacyEnvURL      = "VITE_REACT_APP_URL"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style" mapstructure:"style"`                           // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji" mapstructure:"enable_emoji"`             // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines" mapstructure:"preserve_newlines"`   // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap" mapstructure:"table_wrap"`                 // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links" mapstructure:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// URL is the inference endpoint, e.g. http://localhost:11434/api/chat
	URL      string `json:"url" mapstructure:"url"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`

	Model        string                 `json:"model" mapstructure:"model"`
	SystemPrompt string                 `json:"system_prompt" mapstructure:"system_prompt"`
	Options      models.SamplingOptions `json:"options" mapstructure:"options"`

	// TimeoutSeconds bounds a single request. Zero disables the timeout.
	TimeoutSeconds int `json:"timeout_seconds" mapstructure:"timeout_seconds"`
	// ShowErrors surfaces failed requests in the chat view. Failures are
	// always written to the log.
	ShowErrors bool `json:"show_errors" mapstructure:"show_errors"`
	// Verbose enables debug logging
	Verbose bool `json:"verbose" mapstructure:"verbose"`
	// LogFile overrides the default log location
	LogFile string `json:"log_file,omitempty" mapstructure:"log_file"`

	TUITheme string         `json:"tui_theme,omitempty" mapstructure:"tui_theme"`
	Markdown MarkdownConfig `json:"markdown,omitempty" mapstructure:"markdown"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Model:          models.DefaultModel,
		SystemPrompt:   models.DefaultSystemPrompt,
		Options:        models.DefaultSamplingOptions(),
		TimeoutSeconds: 300,
		ShowErrors:     false,
		Verbose:        false,
		TUITheme:       "tokyonight",
		Markdown:       DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".chatboot")
	return configDir, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory holds credentials
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file path from config, or the default location
func GetLogPath(cfg Config) (string, error) {
	if cfg.LogFile != "" {
		return cfg.LogFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "chatboot.log"), nil
}

// setDefaults registers every key with viper so AutomaticEnv can see it
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("url", d.URL)
	v.SetDefault("username", d.Username)
	v.SetDefault("password", d.Password)
	v.SetDefault("model", d.Model)
	v.SetDefault("system_prompt", d.SystemPrompt)
	v.SetDefault("options.temperature", d.Options.Temperature)
	v.SetDefault("options.top_p", d.Options.TopP)
	v.SetDefault("options.top_k", d.Options.TopK)
	v.SetDefault("options.max_tokens", d.Options.MaxTokens)
	v.SetDefault("timeout_seconds", d.TimeoutSeconds)
	v.SetDefault("show_errors", d.ShowErrors)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("tui_theme", d.TUITheme)
	v.SetDefault("markdown.style", d.Markdown.Style)
	v.SetDefault("markdown.enable_emoji", d.Markdown.EnableEmoji)
	v.SetDefault("markdown.preserve_newlines", d.Markdown.PreserveNewLines)
	v.SetDefault("markdown.table_wrap", d.Markdown.TableWrap)
	v.SetDefault("markdown.inline_table_links", d.Markdown.InlineTableLinks)
}

// newViper builds a viper instance with defaults and environment bindings
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Endpoint values also accept the names the web build used
	_ = v.BindEnv("username", EnvPrefix+"_USERNAME", legacyEnvUsername)
	_ = v.BindEnv("password", EnvPrefix+"_PASSWORD", legacyEnvPassword)
	_ = v.BindEnv("url", EnvPrefix+"_URL", legacyEnvURL)

	return v
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom loads configuration from path, layering environment
// overrides on top. A missing file is not an error.
func LoadConfigFrom(path string) (Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to decode config: %w", err)
	}

	// Credentials embedded in the URL fill in whatever is not set explicitly
	if cleanURL, user, pass := SplitUserInfo(cfg.URL); user != "" || pass != "" {
		cfg.URL = cleanURL
		if cfg.Username == "" {
			cfg.Username = user
		}
		if cfg.Password == "" {
			cfg.Password = pass
		}
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default path
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}
	return SaveConfigTo(cfg, filepath.Join(configDir, "config.json"))
}

// SaveConfigTo writes the configuration as indented JSON
func SaveConfigTo(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0o600: the file holds the endpoint password
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can be used to reach the endpoint
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return apierrors.NewConfigError("url",
			fmt.Sprintf("set %s_URL or \"url\" in the config file", EnvPrefix), apierrors.ErrMissingURL)
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return apierrors.NewConfigError("url", "invalid URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apierrors.NewConfigError("url", fmt.Sprintf("unsupported scheme %q", u.Scheme), nil)
	}
	if u.Host == "" {
		return apierrors.NewConfigError("url", "missing host", nil)
	}

	if c.TimeoutSeconds < 0 {
		return apierrors.NewConfigError("timeout_seconds", "must be >= 0", nil)
	}

	if err := c.Options.Validate(); err != nil {
		return apierrors.NewConfigError("options", err.Error(), err)
	}

	return nil
}

// Credentials returns the Basic authentication pair
func (c Config) Credentials() *Credentials {
	return NewCredentials(c.Username, c.Password)
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HasCredentials reports whether a username or password is configured
func (c Config) HasCredentials() bool {
	return c.Username != "" || c.Password != ""
}

// IsInsecureTransport reports whether Basic credentials would travel in
// clear text to a host other than the local machine.
func (c Config) IsInsecureTransport() bool {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme != "http" {
		return false
	}

	host := u.Hostname()
	if host == "localhost" {
		return false
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return false
	}
	return true
}

// Redacted returns a copy safe to print or log
func (c Config) Redacted() Config {
	c.Password = MaskSecret(c.Password)
	return c
}
