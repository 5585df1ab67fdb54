package endpoints

import (
	"context"
	"net/http"

	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/registry"
	"github.com/doodlesbykumbi/newsdesk/pkg/server"
)

// ReporterResponse is one registry entry.
type ReporterResponse struct {
	Position  int    `json:"position"`
	Principal string `json:"principal"`
	Role      string `json:"role"`
}

// RegistryResponse lists the registry.
type RegistryResponse struct {
	Count     int                `json:"count"`
	Reporters []ReporterResponse `json:"reporters"`
}

// CountResponse reports the registry size after a mutation.
type CountResponse struct {
	Count int `json:"count"`
}

// PrincipalRequest names a principal.
type PrincipalRequest struct {
	Principal string `json:"principal"`
}

// ReporterRequest is the body of PUT /registry/reporters/{principal}.
type ReporterRequest struct {
	Principal string `json:"principal"`
	Role      string `json:"role"`
}

// RegisterRegistryEndpoints registers the reporter registry endpoints
func RegisterRegistryEndpoints(s *server.Server) {
	e := s.Engine
	s.Router.Handle("/registry", s.Protected(handleCreateRegistry(e))).Methods("POST")
	s.Router.Handle("/registry", s.Protected(handleGetRegistry(e))).Methods("GET")
	s.Router.Handle("/registry/admins", s.Protected(handleAddReporter(e.CreateAdmin))).Methods("POST")
	s.Router.Handle("/registry/seniors", s.Protected(handleAddReporter(e.CreateSenior))).Methods("POST")
	s.Router.Handle("/registry/reporters/{principal}", s.Protected(handleEditReporter(e))).Methods("PUT")
	s.Router.Handle("/registry/reporters/{principal}", s.Protected(handleDeleteReporter(e))).Methods("DELETE")
}

func handleCreateRegistry(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := e.CreateRegistry(r.Context(), caller(r)); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, RegistryResponse{Reporters: []ReporterResponse{}})
	}
}

func handleGetRegistry(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := e.Registry(r.Context())
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		resp := RegistryResponse{Count: len(entries), Reporters: make([]ReporterResponse, len(entries))}
		for i, entry := range entries {
			resp.Reporters[i] = ReporterResponse{Position: i, Principal: entry.Principal.String(), Role: entry.Role.String()}
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleAddReporter(add func(ctx context.Context, caller, p identity.Principal) (int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PrincipalRequest
		if err := decodeBody(r, &req); err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		if req.Principal == "" {
			respondBadRequest(w, "principal is required")
			return
		}
		count, err := add(r.Context(), caller(r), identity.Principal(req.Principal))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, CountResponse{Count: count})
	}
}

func handleEditReporter(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		old, err := pathPrincipal(r, "principal")
		if err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		var req ReporterRequest
		if err := decodeBody(r, &req); err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		if req.Principal == "" {
			respondBadRequest(w, "principal is required")
			return
		}
		role, err := registry.RoleString(req.Role)
		if err != nil {
			respondBadRequest(w, "unknown role %q", req.Role)
			return
		}
		count, err := e.EditReporter(r.Context(), caller(r), old, identity.Principal(req.Principal), role)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, CountResponse{Count: count})
	}
}

func handleDeleteReporter(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := pathPrincipal(r, "principal")
		if err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		count, err := e.DeleteReporter(r.Context(), caller(r), p)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, CountResponse{Count: count})
	}
}
