package endpoints

import (
	"net/http"
	"os"

	"github.com/doodlesbykumbi/newsdesk/pkg/server"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

// StatusResponse is returned by GET /.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Store   string `json:"store"`
}

// RegisterStatusEndpoints registers the unauthenticated status endpoint
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus(s.HealthStore)).Methods("GET")
}

func handleStatus(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("NEWSDESK_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		resp := StatusResponse{Status: "ok", Version: version, Store: "ok"}
		code := http.StatusOK
		if health != nil {
			if err := health.CheckConnectivity(); err != nil {
				resp.Status = "degraded"
				resp.Store = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		respondWithJSON(w, code, resp)
	}
}
