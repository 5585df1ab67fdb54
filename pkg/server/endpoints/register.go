package endpoints

import (
	"github.com/doodlesbykumbi/newsdesk/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterRegistryEndpoints(srv)
	RegisterPoolEndpoints(srv)
	RegisterNewsEndpoints(srv)
	RegisterCampaignEndpoints(srv)
	RegisterAccountEndpoints(srv)
}
