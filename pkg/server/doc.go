// Package server provides the HTTP server for the newsdesk API.
//
// It uses gorilla/mux for routing, wraps every request in gorilla/handlers
// recovery and access logging, and authenticates protected routes with the
// bearer token middleware.
//
// # Server Setup
//
//	srv := server.NewServer(eng, healthStore, jwtMiddleware, server.Options{
//	    Host: "0.0.0.0",
//	    Port: "8000",
//	})
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
//
// Routes are registered by the endpoints subpackage.
package server
