// Package config provides configuration management for newsdesk.
//
// Values are resolved in order: built-in defaults, then the YAML file at
// $NEWSDESK_CONFIG_PATH/newsdesk.yml (default /etc/newsdesk), then
// NEWSDESK_* environment variables. Each attribute remembers which source
// set it.
//
// # Key Configuration Options
//
//   - NEWSDESK_OWNER: Platform owner principal
//   - NEWSDESK_REGISTRY_CAPACITY: Registry capacity (at most 100)
//   - NEWSDESK_FIXED_FEE: Publish credit and campaign escrow
//   - NEWSDESK_TOKEN_TTL, NEWSDESK_TOKEN_ISSUER: Bearer token settings
//   - NEWSDESK_AUDIT_ENABLED: Audit trail
//   - NEWSDESK_STORE: memory or postgres
//
// Secrets are read from the environment only:
//
//   - NEWSDESK_TOKEN_KEY: HMAC key for bearer tokens
//   - DATABASE_URL: Postgres connection
package config
