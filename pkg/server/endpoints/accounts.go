package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/server"
)

// TipRequest is the body of POST /tips.
type TipRequest struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// AccountResponse is the external balance of a principal.
type AccountResponse struct {
	Principal string `json:"principal"`
	Balance   uint64 `json:"balance"`
}

// RegisterAccountEndpoints registers tips, mint fees and balance lookups
func RegisterAccountEndpoints(s *server.Server) {
	e := s.Engine
	s.Router.Handle("/tips", s.Protected(handleTip(e))).Methods("POST")
	s.Router.Handle("/mint-fees", s.Protected(handleMintFee(e))).Methods("POST")
	s.Router.Handle("/accounts/{principal}", s.Protected(handleGetAccount(e))).Methods("GET")
}

func handleTip(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TipRequest
		if err := decodeBody(r, &req); err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		if req.To == "" {
			respondBadRequest(w, "to is required")
			return
		}
		if err := e.SendTip(r.Context(), caller(r), identity.Principal(req.To), req.Amount); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, AmountResponse{Amount: req.Amount})
	}
}

func handleMintFee(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if err := decodeBody(r, &req); err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		if err := e.SendMintFee(r.Context(), caller(r), req.Amount); err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, AmountResponse{Amount: req.Amount})
	}
}

func handleGetAccount(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := pathPrincipal(r, "principal")
		if err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		balance, err := e.Balance(r.Context(), p)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, AccountResponse{Principal: p.String(), Balance: balance})
	}
}
