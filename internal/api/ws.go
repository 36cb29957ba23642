package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/preemiealert/go-preemie-alerts/internal/query"
)

// streamAlerts pushes each newly recorded alert to the client as JSON.
// Subscriptions are best-effort; a slow client misses alerts instead of
// backpressuring ingestion.
func (h *Handler) streamAlerts(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Debug("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	id, alerts := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case a, ok := <-alerts:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "stream closed")
				return
			}
			if err := wsjson.Write(ctx, conn, query.ToAlert(*a)); err != nil {
				return
			}
		}
	}
}
