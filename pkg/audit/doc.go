// Package audit provides audit logging for newsdesk operations.
//
// Every privileged operation produces an Event: registry changes, workflow
// transitions on news and campaigns, ledger movements and rejected bearer
// tokens. Events are written as RFC5424 syslog lines and, when
// AUDIT_DATABASE_URL is set, persisted to the messages table.
//
// # Event Types
//
//   - RegistryEvent: reporter added, edited or removed
//   - WorkflowEvent: news or campaign created, edited, reviewed, published or deleted
//   - LedgerEvent: value moved between pool, vaults and accounts
//   - AuthenticateEvent: bearer token accepted or rejected
//
// # Usage
//
//	audit.Log(audit.LedgerEvent{
//	    Actor:     "owner",
//	    Operation: "deposit",
//	    To:        "pool:owner",
//	    Amount:    500000000,
//	    Success:   true,
//	})
//
// Auditing can be turned off with NEWSDESK_AUDIT_ENABLED=false.
package audit
