// Package logging configures the process-wide zerolog logger.
//
// Configure runs once per process. The runtime profile logs at info with
// timestamps; the test profile logs at debug without them. Either can be
// overridden from the environment:
//
//	NEWSDESK_LOG_LEVEL      trace|debug|info|warn|error|off
//	NEWSDESK_LOG_TIMESTAMP  true|false
//	NEWSDESK_LOG_NOCOLOR    true|false
//	NEWSDESK_LOG_JSON       true|false (raw JSON instead of console output)
package logging
