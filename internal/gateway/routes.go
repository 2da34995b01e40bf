package gateway

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/nestwork/turducken/internal/stack"
	"github.com/nestwork/turducken/internal/tunnel"
)

const tunnelContentType = "application/dns-message"

func (g *Gateway) registerRoutes() {
	g.router.POST(stack.EnvelopePath, g.handleTunnel)

	g.router.GET("/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, g.handler.Stats.Snapshot())
	})

	g.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"mode":   g.mode,
			"uptime": time.Since(g.started).String(),
		})
	})

	g.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ready": true})
	})

	g.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// handleTunnel treats the request body as one complete outer packet,
// runs the usual decapsulate/handle/encapsulate exchange, and answers
// with the response packet. Failures still answer with a well-formed
// packet so the caller's decapsulation path stays uniform.
func (g *Gateway) handleTunnel(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, g.maxBytes+1))
	if err != nil {
		g.replyError(c, http.StatusInternalServerError, "Error: unreadable request body")
		return
	}
	if int64(len(body)) > g.maxBytes {
		log.Warn().Int("bytes", len(body)).Msg("gateway request body over packet limit")
		g.replyError(c, http.StatusRequestEntityTooLarge, "Error: "+tunnel.ErrPacketTooLarge.Error())
		return
	}

	payload, err := g.stack.Decapsulate(body)
	if err != nil {
		log.Warn().Int("bytes", len(body)).Err(err).Msg("gateway decapsulation failed")
		g.replyError(c, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	g.handler.Stats.UpdateReceived(len(body), len(payload))
	response := g.handler.Handle(g.mode, payload)

	packet, err := g.stack.Encapsulate(response)
	if err != nil {
		log.Error().Err(err).Msg("gateway response encapsulation failed")
		g.replyError(c, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	g.handler.Stats.UpdateSent(len(packet))
	c.Header("X-Layers", "too-many")
	c.Data(http.StatusOK, tunnelContentType, packet)
}

func (g *Gateway) replyError(c *gin.Context, status int, msg string) {
	packet, err := g.stack.Encapsulate([]byte(msg))
	if err != nil {
		c.String(status, msg)
		return
	}
	c.Data(status, tunnelContentType, packet)
}
