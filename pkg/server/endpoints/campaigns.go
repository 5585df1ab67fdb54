package endpoints

import (
	"context"
	"net/http"

	"github.com/doodlesbykumbi/newsdesk/pkg/campaign"
	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/server"
)

// RefundResponse reports the escrow returned when a campaign is deleted.
type RefundResponse struct {
	Refunded uint64 `json:"refunded"`
}

// RegisterCampaignEndpoints registers the campaign endpoints
func RegisterCampaignEndpoints(s *server.Server) {
	e := s.Engine
	s.Router.Handle("/campaigns", s.Protected(handleCreateCampaign(e))).Methods("POST")
	s.Router.Handle("/campaigns/{advertiser}/{id}", s.Protected(handleGetCampaign(e))).Methods("GET")
	s.Router.Handle("/campaigns/{advertiser}/{id}/vault", s.Protected(handleGetCampaignVault(e))).Methods("GET")
	s.Router.Handle("/campaigns/{id}", s.Protected(handleEditCampaign(e))).Methods("PUT")
	s.Router.Handle("/campaigns/{id}", s.Protected(handleDeleteCampaign(e))).Methods("DELETE")
	s.Router.Handle("/campaigns/{advertiser}/{id}/approve", s.Protected(handleSettleCampaign(e.ApproveCampaign))).Methods("POST")
	s.Router.Handle("/campaigns/{advertiser}/{id}/deny", s.Protected(handleSettleCampaign(e.DenyCampaign))).Methods("POST")
}

func handleCreateCampaign(e *engine.Engine) http.HandlerFunc {
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
		c, err := e.CreateCampaign(r.Context(), caller(r), *req.ID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, c)
	}
}

func handleGetCampaign(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		advertiser, id, ok := ownedRecord(w, r, "advertiser")
		if !ok {
			return
		}
		c, err := e.Campaign(r.Context(), advertiser, id)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, c)
	}
}

func handleGetCampaignVault(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		advertiser, id, ok := ownedRecord(w, r, "advertiser")
		if !ok {
			return
		}
		v, err := e.CampaignVault(r.Context(), advertiser, id)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, vaultResponse(v))
	}
}

func handleEditCampaign(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, newID, ok := editTarget(w, r)
		if !ok {
			return
		}
		c, err := e.EditCampaign(r.Context(), caller(r), id, newID)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, c)
	}
}

func handleDeleteCampaign(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		refunded, err := e.DeleteCampaign(r.Context(), caller(r), id)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, RefundResponse{Refunded: refunded})
	}
}

type campaignDecision func(ctx context.Context, caller, advertiser identity.Principal, id uint64) (*campaign.Campaign, error)

func handleSettleCampaign(decide campaignDecision) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		advertiser, id, ok := ownedRecord(w, r, "advertiser")
		if !ok {
			return
		}
		c, err := decide(r.Context(), caller(r), advertiser, id)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, c)
	}
}
