package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/newsdesk/pkg/apperr"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

// ErrorBody is the payload of every error response.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// statusFor maps an error kind onto an HTTP status.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindCapacity, apperr.KindState, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindFunds:
		return http.StatusUnprocessableEntity
	case apperr.KindInvalidAmount, apperr.KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondWithAppError writes err using its apperr kind.
func respondWithAppError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	msg := apperr.Message(err)
	if kind == apperr.KindInternal {
		msg = "internal error"
	}
	respondWithError(w, statusFor(kind), ErrorBody{Kind: kind.String(), Message: msg})
}

func respondBadRequest(w http.ResponseWriter, format string, args ...interface{}) {
	respondWithError(w, http.StatusBadRequest, ErrorBody{
		Kind:    apperr.KindInvalid.String(),
		Message: fmt.Sprintf(format, args...),
	})
}

// decodeBody reads a JSON body into v. Unknown fields are rejected.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID parses the uint64 path variable name.
func pathID(r *http.Request, name string) (uint64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// pathPrincipal returns the unescaped principal path variable name.
func pathPrincipal(r *http.Request, name string) (identity.Principal, error) {
	raw := mux.Vars(r)[name]
	p, err := url.PathUnescape(raw)
	if err != nil || p == "" {
		return "", fmt.Errorf("invalid %s %q", name, raw)
	}
	return identity.Principal(p), nil
}

// caller returns the verified principal set by the bearer middleware.
func caller(r *http.Request) identity.Principal {
	id, ok := identity.Get(r.Context())
	if !ok || id == nil {
		return ""
	}
	return id.Principal
}
