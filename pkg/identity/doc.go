// Package identity provides the verified caller identity for newsdesk requests.
//
// Signature verification happens outside the core (the HTTP middleware
// validates a bearer token); the rest of the system only ever sees a
// Principal that has already been verified.
//
// # Basic Usage
//
//	id := identity.New("alice").
//	    WithIssuer("newsdesk").
//	    WithRemoteIP(clientIP)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// A Principal carries no structure beyond equality.
package identity
