package middleware

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"regexp"

	"github.com/doodlesbykumbi/newsdesk/pkg/audit"
	"github.com/doodlesbykumbi/newsdesk/pkg/authenticator"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

var bearerRegex = regexp.MustCompile(`^Bearer\s+(\S+)$`)

// JWTAuthenticator is middleware that validates bearer tokens
type JWTAuthenticator struct {
	Authenticator authenticator.Authenticator
	Audit         audit.Sink
}

// NewJWTAuthenticator creates a new bearer token middleware
func NewJWTAuthenticator(a authenticator.Authenticator, sink audit.Sink) *JWTAuthenticator {
	if sink == nil {
		sink = audit.Discard
	}
	return &JWTAuthenticator{Authenticator: a, Audit: sink}
}

// ClientIP returns the request's remote address without the port.
func ClientIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}

// Middleware returns an HTTP middleware that validates bearer tokens and
// stores the verified identity in the request context
func (j *JWTAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			unauthorized(w, "Authorization missing")
			return
		}

		matches := bearerRegex.FindStringSubmatch(authHeader)
		if len(matches) != 2 {
			unauthorized(w, "Malformed authorization header")
			return
		}

		id, err := j.Authenticator.Authenticate(r.Context(), authenticator.AuthenticatorInput{
			Credentials: matches[1],
			ClientIP:    ip,
		})
		if err != nil {
			j.Audit.Log(audit.AuthenticateEvent{
				ClientIP:     identity.New("").WithRemoteIP(ip).ClientIP(),
				Success:      false,
				ErrorMessage: err.Error(),
			})
			msg := "Invalid token"
			if errors.Is(err, authenticator.ErrMissingCredentials) {
				msg = "Authorization missing"
			}
			unauthorized(w, msg)
			return
		}

		j.Audit.Log(audit.AuthenticateEvent{
			Principal: id.Principal.String(),
			ClientIP:  id.ClientIP(),
			Issuer:    id.Issuer,
			Success:   true,
		})
		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="newsdesk"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"kind": "authentication", "message": message},
	})
}
