package endpoints

import (
	"net/http"

	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/identity"
	"github.com/doodlesbykumbi/newsdesk/pkg/ledger"
	"github.com/doodlesbykumbi/newsdesk/pkg/server"
)

// BalanceResponse describes the pool or a vault.
type BalanceResponse struct {
	Owner   string `json:"owner"`
	Balance uint64 `json:"balance"`
}

// AmountRequest is the body of deposit, withdraw and mint-fee requests.
type AmountRequest struct {
	Amount uint64 `json:"amount"`
}

// AmountResponse reports an amount that was moved.
type AmountResponse struct {
	Amount uint64 `json:"amount"`
}

func poolResponse(p *ledger.Pool) BalanceResponse {
	return BalanceResponse{Owner: p.Owner.String(), Balance: p.Balance}
}

func vaultResponse(v *ledger.Vault) BalanceResponse {
	return BalanceResponse{Owner: v.Owner.String(), Balance: v.Balance}
}

// RegisterPoolEndpoints registers the platform pool endpoints
func RegisterPoolEndpoints(s *server.Server) {
	e := s.Engine
	s.Router.Handle("/pool", s.Protected(handleCreatePool(e))).Methods("POST")
	s.Router.Handle("/pool", s.Protected(handleGetPool(e))).Methods("GET")
	s.Router.Handle("/pool/deposit", s.Protected(handleDeposit(e))).Methods("POST")
	s.Router.Handle("/pool/withdraw", s.Protected(handleWithdraw(e))).Methods("POST")
	s.Router.Handle("/pool/withdraw-all", s.Protected(handleWithdrawAll(e))).Methods("POST")
	s.Router.Handle("/payouts", s.Protected(handlePayout(e))).Methods("POST")
}

func handleCreatePool(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := e.CreatePool(r.Context(), caller(r))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, poolResponse(pool))
	}
}

func handleGetPool(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, err := e.Pool(r.Context())
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, poolResponse(pool))
	}
}

func handleDeposit(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if err := decodeBody(r, &req); err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		pool, err := e.Deposit(r.Context(), caller(r), req.Amount)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, poolResponse(pool))
	}
}

func handleWithdraw(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AmountRequest
		if err := decodeBody(r, &req); err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		pool, err := e.Withdraw(r.Context(), caller(r), req.Amount)
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, poolResponse(pool))
	}
}

func handleWithdrawAll(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		amount, err := e.WithdrawAll(r.Context(), caller(r))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, AmountResponse{Amount: amount})
	}
}

// PayoutRequest is the body of POST /payouts.
type PayoutRequest struct {
	Junior string `json:"junior"`
}

func handlePayout(e *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PayoutRequest
		if err := decodeBody(r, &req); err != nil {
			respondBadRequest(w, "%v", err)
			return
		}
		if req.Junior == "" {
			respondBadRequest(w, "junior is required")
			return
		}
		amount, err := e.PayoutJunior(r.Context(), caller(r), identity.Principal(req.Junior))
		if err != nil {
			respondWithAppError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, AmountResponse{Amount: amount})
	}
}
