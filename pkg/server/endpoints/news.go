package endpoints

import (
	"context"
	"net/http"

	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/news"
	"github.com/doodlesbykumbi/newsdesk/pkg/server"
)

// IDRequest names a record id.
type IDRequest struct {
	ID *uint64 `json:"id"`
}

// EditRequest carries the replacement id of an edit.
type EditRequest struct {
	NewID *uint64 `json:"new_id"`
}

// RegisterNewsEndpoints registers reporter vault and news endpoints
func RegisterNewsEndpoints(s *server.Server) {
	e := s.Engine
	s.Router.Handle("/vaults", s.Protected(handleCreateVault(e))).Methods("POST")
	s.Router.Handle("/vaults/{principal}", s.Protected(handleGetVault(e))).Methods("GET")

	s.Router.Handle("/news", s.Protected(handleCreateNews(e))).Methods("POST")
	s.Router.Handle("/news/{reporter}/{id}", s.Protected(handleGetNews(e))).Methods("GET")
	s.Router.Handle("/news/{id}", s.Protected(handleEditNews(e))).Methods("PUT")
	s.Router.Handle("/news/{id}", s.Protected(handleDeleteNews(e))).Methods("DELETE")
	s.Router.Handle("/news/{reporter}/{id}/approve", s.Protected(handleReviewNews(e.ApproveNews))).Methods("POST")
	s.Router.Handle("/news/{reporter}/{id}/deny", s.Protected(handleReviewNews(e.DenyNews))).Methods("POST")
	s.Router.Handle("/news/{reporter}/{id}/publish", s.Protected(handleReviewNews(e.PublishNews))).Methods("POST")
}

func handleCreateVault(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := e.CreateVault(r.Context(), caller(r))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, vaultResponse(v))
	}
}

func handleGetVault(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := pathPrincipal(r, "principal")
		if err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		v, err := e.Vault(r.Context(), p)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, vaultResponse(v))
	}
}

func handleCreateNews(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req IDRequest
		if err := decodeBody(r, &req); err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		if req.ID == nil {
			respondBadRequest(w, "id is required")
			return
		}
		it, err := e.CreateNews(r.Context(), caller(r), *req.ID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, it)
	}
}

func handleGetNews(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reporter, id, ok := ownedRecord(w, r, "reporter")
		if !ok {
			return
		}
		it, err := e.News(r.Context(), reporter, id)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, it)
	}
}

func handleEditNews(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, newID, ok := editTarget(w, r)
		if !ok {
			return
		}
		it, err := e.EditNews(r.Context(), caller(r), id, newID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, it)
	}
}

func handleDeleteNews(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		if err := e.DeleteNews(r.Context(), caller(r), id); err != nil {
			respondWithAppError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type newsDecision func(ctx context.Context, caller, reporter identity.Principal, id uint64) (*news.Item, error)

func handleReviewNews(decide newsDecision) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reporter, id, ok := ownedRecord(w, r, "reporter")
		if !ok {
			return
		}
		it, err := decide(r.Context(), caller(r), reporter, id)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, it)
	}
}

// ownedRecord parses the {owner}/{id} path pair. It writes a 400 and returns
// false when either is malformed.
func ownedRecord(w http.ResponseWriter, r *http.Request, ownerVar string) (identity.Principal, uint64, bool) {
	p, err := pathPrincipal(r, ownerVar)
	if err != nil {
		respondBadRequest(w, "%v", err)
		return "", 0, false
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "%v", err)
		return "", 0, false
	}
	return p, id, true
}

func editTarget(w http.ResponseWriter, r *http.Request) (uint64, uint64, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		respondBadRequest(w, "%v", err)
		return 0, 0, false
	}
	var req EditRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "%v", err)
		return 0, 0, false
	}
	if req.NewID == nil {
		respondBadRequest(w, "new_id is required")
		return 0, 0, false
	}
	return id, *req.NewID, true
}
