package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/trackline/task-tracker-api/internal/events"
)

// EventsHandler bridges the notification hub to connected clients over
// Server-Sent Events.
type EventsHandler struct {
	hub *events.Hub
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
	}
}

// Stream subscribes the client to the broadcast feed and relays events until
// the client disconnects. Delivery is best-effort; there is no replay.
func (h *EventsHandler) Stream(c *gin.Context) {
	id, ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent(ev.Name, ev.Payload)
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}
