package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/newsdesk/pkg/engine"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/middleware"
	"github.com/doodlesbykumbi/newsdesk/pkg/server/store"
)

type Server struct {
	Engine        *engine.Engine
	HealthStore   store.HealthStore
	JWTMiddleware *middleware.JWTAuthenticator
	Router        *mux.Router
	Log           zerolog.Logger
	srv           *http.Server
}

// Options configures NewServer.
type Options struct {
	Host string
	Port string
	// AccessLog receives one Apache combined log line per request
	AccessLog io.Writer
	Log       zerolog.Logger
}

func NewServer(
	e *engine.Engine,
	health store.HealthStore,
	jwt *middleware.JWTAuthenticator,
	opts Options,
) *Server {
	router := mux.NewRouter().UseEncodedPath()

	var handler http.Handler = router
	if opts.AccessLog != nil {
		handler = handlers.CombinedLoggingHandler(opts.AccessLog, handler)
	}
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{opts.Log}),
	)(handler)

	srv := &http.Server{
		Handler:      handler,
		Addr:         opts.Host + ":" + opts.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Engine:        e,
		HealthStore:   health,
		JWTMiddleware: jwt,
		Router:        router,
		Log:           opts.Log,
		srv:           srv,
	}
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Protected wraps h with bearer token authentication.
func (s *Server) Protected(h http.HandlerFunc) http.Handler {
	return s.JWTMiddleware.Middleware(h)
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type recoveryLogger struct {
	log zerolog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error().Interface("panic", v).Msg("recovered from panic in handler")
}
