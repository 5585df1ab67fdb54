package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
)

const (
	DefaultConfigPath = "/etc/newsdesk"
	ConfigFileName    = "newsdesk.yml"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// ValidStores is the list of valid store backends
var ValidStores = []string{StoreMemory, StorePostgres}

// NewsdeskConfig holds all newsdesk configuration settings
type NewsdeskConfig struct {
	// Owner is the platform owner principal
	Owner string `yaml:"owner" json:"owner"`

	// RegistryCapacity is the maximum number of registry entries
	RegistryCapacity int `yaml:"registry_capacity" json:"registry_capacity"`

	// FixedFee is credited on publish and escrowed per campaign, in base units
	FixedFee uint64 `yaml:"fixed_fee" json:"fixed_fee"`

	// TokenTTL is the lifetime of issued bearer tokens in seconds
	TokenTTL int `yaml:"token_ttl" json:"token_ttl"`

	// TokenIssuer is the iss claim of issued tokens
	TokenIssuer string `yaml:"token_issuer" json:"token_issuer"`

	// AuditEnabled turns on the audit trail
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// Store selects the backend, memory or postgres
	Store string `yaml:"store" json:"store"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors NewsdeskConfig with optional fields so that explicit
// zero values in the file are told apart from absent keys.
type fileConfig struct {
	Owner            *string `yaml:"owner"`
	RegistryCapacity *int    `yaml:"registry_capacity"`
	FixedFee         *uint64 `yaml:"fixed_fee"`
	TokenTTL         *int    `yaml:"token_ttl"`
	TokenIssuer      *string `yaml:"token_issuer"`
	AuditEnabled     *bool   `yaml:"audit_enabled"`
	Store            *string `yaml:"store"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *NewsdeskConfig
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *NewsdeskConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// Return defaults on error
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault returns a config with default values
func newDefault() *NewsdeskConfig {
	return &NewsdeskConfig{
		RegistryCapacity: registry.MaxReporterCount,
		FixedFee:         ledger.FixedFee,
		TokenTTL:         480,
		TokenIssuer:      "newsdesk",
		AuditEnabled:     false,
		Store:            StoreMemory,
		sources:          make(map[string]string),
	}
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*NewsdeskConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("NEWSDESK_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"owner", "registry_capacity", "fixed_fee", "token_ttl",
		"token_issuer", "audit_enabled", "store",
	}
}

func (c *NewsdeskConfig) applyFileConfig(file *fileConfig) {
	if file.Owner != nil {
		c.Owner = *file.Owner
		c.sources["owner"] = "file"
	}
	if file.RegistryCapacity != nil {
		c.RegistryCapacity = *file.RegistryCapacity
		c.sources["registry_capacity"] = "file"
	}
	if file.FixedFee != nil {
		c.FixedFee = *file.FixedFee
		c.sources["fixed_fee"] = "file"
	}
	if file.TokenTTL != nil {
		c.TokenTTL = *file.TokenTTL
		c.sources["token_ttl"] = "file"
	}
	if file.TokenIssuer != nil {
		c.TokenIssuer = *file.TokenIssuer
		c.sources["token_issuer"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
	if file.Store != nil {
		c.Store = *file.Store
		c.sources["store"] = "file"
	}
}

func (c *NewsdeskConfig) applyEnvConfig() error {
	if val := os.Getenv("NEWSDESK_OWNER"); val != "" {
		c.Owner = val
		c.sources["owner"] = "environment"
	}
	if val := os.Getenv("NEWSDESK_REGISTRY_CAPACITY"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid NEWSDESK_REGISTRY_CAPACITY %q: %w", val, err)
		}
		c.RegistryCapacity = i
		c.sources["registry_capacity"] = "environment"
	}
	if val := os.Getenv("NEWSDESK_FIXED_FEE"); val != "" {
		fee, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid NEWSDESK_FIXED_FEE %q: %w", val, err)
		}
		c.FixedFee = fee
		c.sources["fixed_fee"] = "environment"
	}
	if val := os.Getenv("NEWSDESK_TOKEN_TTL"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid NEWSDESK_TOKEN_TTL %q: %w", val, err)
		}
		c.TokenTTL = i
		c.sources["token_ttl"] = "environment"
	}
	if val := os.Getenv("NEWSDESK_TOKEN_ISSUER"); val != "" {
		c.TokenIssuer = val
		c.sources["token_issuer"] = "environment"
	}
	if val := os.Getenv("NEWSDESK_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("NEWSDESK_STORE"); val != "" {
		c.Store = strings.ToLower(strings.TrimSpace(val))
		c.sources["store"] = "environment"
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *NewsdeskConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *NewsdeskConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// OwnerPrincipal returns the configured owner as a principal.
func (c *NewsdeskConfig) OwnerPrincipal() identity.Principal {
	return identity.Principal(c.Owner)
}

// TokenLifetime returns the token TTL as a duration
func (c *NewsdeskConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenTTL) * time.Second
}

// Validate validates the configuration
func (c *NewsdeskConfig) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("owner is required")
	}
	if c.RegistryCapacity <= 0 || c.RegistryCapacity > registry.MaxReporterCount {
		return fmt.Errorf("registry_capacity must be between 1 and %d, got %d", registry.MaxReporterCount, c.RegistryCapacity)
	}
	if c.FixedFee == 0 {
		return fmt.Errorf("fixed_fee must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %d", c.TokenTTL)
	}
	valid := false
	for _, s := range ValidStores {
		if c.Store == s {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid store: %s", c.Store)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *NewsdeskConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "owner", Value: c.Owner, Source: c.Source("owner")},
		{Name: "registry_capacity", Value: strconv.Itoa(c.RegistryCapacity), Source: c.Source("registry_capacity")},
		{Name: "fixed_fee", Value: strconv.FormatUint(c.FixedFee, 10), Source: c.Source("fixed_fee")},
		{Name: "token_ttl", Value: strconv.Itoa(c.TokenTTL), Source: c.Source("token_ttl")},
		{Name: "token_issuer", Value: c.TokenIssuer, Source: c.Source("token_issuer")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "store", Value: c.Store, Source: c.Source("store")},
	}
}

// FormatText returns a text representation of the configuration
func (c *NewsdeskConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *NewsdeskConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
