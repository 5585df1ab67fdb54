// Package authenticator defines how request credentials become a verified
// caller identity.
//
// All authenticators implement the Authenticator interface:
//
//	type Authenticator interface {
//	    Name() string
//	    Authenticate(ctx context.Context, input AuthenticatorInput) (*identity.Identity, error)
//	}
//
// The authn_jwt subpackage verifies HS256 bearer tokens whose sub claim is
// the caller principal, and issues them for the CLI.
package authenticator
