package http

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"pageform/internal/domain"
	"pageform/internal/view"
)

const (
	eventProfile = "profile"
	eventPing    = "ping"
)

// pageTwoEvents streams a page two summary now and after every store update
// until the client goes away.
func (h *Handler) pageTwoEvents(c *gin.Context) {
	logger := loggerFrom(c)

	// subscribe before the first read so no update falls in between
	changes, unsubscribe := h.store.Watch()
	defer unsubscribe()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	send := func(p domain.Profile) bool {
		summary, err := view.NewSummary(p, h.debugFormat)
		if err != nil {
			logger.Errorf("render page two event: %v", err)
			return false
		}
		c.SSEvent(eventProfile, summary)
		return true
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	initial := true
	c.Stream(func(w io.Writer) bool {
		if initial {
			initial = false
			return send(h.store.Read())
		}
		select {
		case <-ctx.Done():
			return false
		case p := <-changes:
			return send(p)
		case <-ticker.C:
			c.SSEvent(eventPing, "")
			return true
		}
	})
	logger.Debug("page two stream closed")
}
