package handlers

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

const (
	feedWriteTimeout = 10 * time.Second
	feedPingInterval = 30 * time.Second
)

// FeedSource is satisfied by services.FeedHub.
type FeedSource interface {
	Subscribe(buffer int) (<-chan domain.TimelineEvent, func())
}

type FeedHandler struct {
	source FeedSource
	logger *logger.Logger
}

func NewFeedHandler(source FeedSource, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{source: source, logger: logger}
}

// Handle streams timeline events to the client as JSON text frames until
// either side closes.
func (h *FeedHandler) Handle(c *websocket.Conn) {
	events, cancel := h.source.Subscribe(0)
	defer cancel()

	h.logger.Infow("feed_client_connected", "remote", c.RemoteAddr().String())

	// Reads only detect the client going away; clients send nothing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(feedPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			h.logger.Infow("feed_client_disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = c.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
			if err := c.WriteJSON(event); err != nil {
				h.logger.Warnw("feed_write_failed", "error", err)
				return
			}
		case <-ping.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteTimeout)); err != nil {
				return
			}
		}
	}
}
