// Package gateway exposes the tunnel over HTTP: the same
// decapsulate/handle/encapsulate exchange the TCP server performs, plus
// stats, health, and metrics surfaces.
package gateway

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/nestwork/turducken/internal/observability"
	"github.com/nestwork/turducken/internal/stack"
	"github.com/nestwork/turducken/internal/tunnel"
)

type Gateway struct {
	mode     string
	stack    *stack.Stack
	handler  *tunnel.Handler
	router   *gin.Engine
	started  time.Time
	maxBytes int64
}

// New assembles the gateway router. Unknown modes fall back to echo at
// dispatch time, same as the TCP server.
func New(st *stack.Stack, mode string, corsOrigins []string) *Gateway {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestID())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware("gatewayd"))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies(nil)

	g := &Gateway{
		mode:     mode,
		stack:    st,
		handler:  tunnel.NewHandler(),
		router:   r,
		started:  time.Now(),
		maxBytes: tunnel.MaxPacketBytes,
	}
	g.registerRoutes()
	return g
}

// Router exposes the assembled engine, mostly for tests.
func (g *Gateway) Router() *gin.Engine {
	return g.router
}

// Handler exposes the accumulated mode state.
func (g *Gateway) Handler() *tunnel.Handler {
	return g.handler
}

func (g *Gateway) Serve(addr string) error {
	log.Info().Str("addr", addr).Str("mode", g.mode).Msg("gateway listening")
	return g.router.Run(addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost"}
	}
	return origins
}
