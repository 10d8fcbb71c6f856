package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xenontools/ppccalc"
	apimiddleware "github.com/xenontools/ppccalc/infrastructure/api/middleware"
	mcpinternal "github.com/xenontools/ppccalc/internal/mcp"
)

// APIServer exposes the calculator engine over HTTP: the JSON API under
// /api/v1 and the MCP streamable-HTTP transport under /mcp.
type APIServer struct {
	engine  *ppccalc.Engine
	version string
	server  *Server
}

// NewAPIServer creates an APIServer over the given engine.
func NewAPIServer(engine *ppccalc.Engine, version string) *APIServer {
	return &APIServer{
		engine:  engine,
		version: version,
	}
}

// mountRoutes wires up all routes on the given router.
func (a *APIServer) mountRoutes(router chi.Router) {
	logger := a.engine.Logger()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	router.Use(apimiddleware.Logging(logger))

	calcRouter := NewCalcRouter(a.engine, logger)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(60 * time.Second))
		r.Mount("/", calcRouter.Routes())
	})

	// MCP endpoint — no timeout middleware. MCP uses streaming responses
	// and manages its own session state, which is incompatible with chi's
	// Timeout middleware wrapping the ResponseWriter.
	mcpSrv := mcpinternal.NewServer(a.engine, a.version, logger)
	router.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
}

// Handler returns the fully routed handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	router := chi.NewRouter()
	a.mountRoutes(router)
	return router
}

// ListenAndServe starts the HTTP server on the given address and blocks.
func (a *APIServer) ListenAndServe(addr string) error {
	srv := NewServer(addr, a.engine.Logger())
	a.server = &srv
	a.mountRoutes(srv.Router())
	return srv.Start()
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}
