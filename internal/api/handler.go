// Package api is the admin HTTP surface: health, aggregate counters, the
// connection log, and a websocket bridge speaking the same query objects
// as the TCP port. None of it is on the protocol path.
package api

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"primetime/internal/app"
	"primetime/internal/metrics"
	"primetime/internal/repo"
)

type Handler struct {
	App     *app.Service
	Metrics *metrics.Metrics
	Repo    repo.Repository
}

func NewHandler(svc *app.Service, m *metrics.Metrics, r repo.Repository) *Handler {
	return &Handler{App: svc, Metrics: m, Repo: r}
}

func (h *Handler) SetupRoutes(r *gin.Engine) {
	r.GET("/healthz", h.HandleHealth)
	r.GET("/stats", h.HandleStats)
	r.GET("/ws", h.HandleWS)
}

func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) HandleStats(c *gin.Context) {
	recent, err := h.Repo.RecentConnections(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"counters":    h.Metrics.Snapshot(),
		"connections": recent,
	})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS serves the query protocol over websocket text frames, one
// request object per frame. The error policy matches the TCP port: the
// first malformed frame gets the indicator and closes the connection.
func (h *Handler) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[API] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[API] ws read error: %v", err)
			}
			return
		}

		reply, herr := h.App.HandleLine(bytes.TrimRight(frame, "\r\n"))
		wsReply := bytes.TrimRight(reply, "\n")
		if werr := conn.WriteMessage(websocket.TextMessage, wsReply); werr != nil {
			return
		}
		if herr != nil {
			return
		}
	}
}
