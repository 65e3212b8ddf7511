package services

import (
	"sync"

	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

const defaultSubscriberBuffer = 16

// FeedHub fans timeline events out to live subscribers. Publish never blocks:
// a subscriber whose buffer is full misses the event.
type FeedHub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan domain.TimelineEvent
	nextID uint64
	logger *logger.Logger
}

func NewFeedHub(log *logger.Logger) *FeedHub {
	return &FeedHub{
		subs:   make(map[uint64]chan domain.TimelineEvent),
		logger: log,
	}
}

// Subscribe registers a subscriber. The returned cancel func closes the
// channel and is safe to call more than once.
func (h *FeedHub) Subscribe(buffer int) (<-chan domain.TimelineEvent, func()) {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	ch := make(chan domain.TimelineEvent, buffer)

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *FeedHub) Publish(event domain.TimelineEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.logger.Warnw("feed_subscriber_lagging", "subscriber", id, "type", event.Type)
		}
	}
}

func (h *FeedHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
