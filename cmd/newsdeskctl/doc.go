// Command newsdeskctl runs and administers the newsdesk server.
//
// newsdesk is a role-gated approval engine for news items and advertising
// campaigns. Reporters publish through a senior review and an admin publish
// step, and are paid from a platform pool. Campaign fees are held in escrow
// until an admin approves or denies the campaign.
//
// # Quick Start
//
//	# Generate a token signing key
//	export NEWSDESK_TOKEN_KEY="$(newsdeskctl token key-generate)"
//
//	# Run database migrations (postgres store only)
//	newsdeskctl db migrate
//
//	# Start the server
//	NEWSDESK_OWNER=owner newsdeskctl server
//
//	# Issue a bearer token for a principal
//	newsdeskctl token issue owner
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string (store: postgres)
//   - NEWSDESK_TOKEN_KEY: Base64-encoded HS256 key of at least 32 bytes
//   - NEWSDESK_CONFIG_PATH: Directory holding newsdesk.yml
//   - NEWSDESK_OWNER, NEWSDESK_STORE, NEWSDESK_FIXED_FEE and the other
//     NEWSDESK_* attributes listed by "newsdeskctl configuration show"
//   - NEWSDESK_LOG_LEVEL: Log level (debug, info, warn, error)
//   - PORT: Server port (default: 8000)
package main
