package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// EVENTS — Server-Sent Events fan-out of view refreshes
// ============================================================================
// Views that must redraw are marked as the store notifies them. A flush after
// each update turns everything marked so far into one event.
// ============================================================================

const subscriberBuffer = 16

// refresh tells clients which views to fetch again.
type refresh struct {
	ID    string
	Views []string
}

type hub struct {
	mu      sync.Mutex
	subs    map[chan refresh]struct{}
	pending []string
	closed  bool
}

func newHub() *hub {
	return &hub{subs: make(map[chan refresh]struct{})}
}

// mark queues a view for the next flush.
func (h *hub) mark(view string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, v := range h.pending {
		if v == view {
			return
		}
	}
	h.pending = append(h.pending, view)
}

// flush publishes the queued views as one event. It reports false when
// nothing was queued.
func (h *hub) flush() (refresh, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pending) == 0 {
		return refresh{}, false
	}
	ev := refresh{ID: uuid.NewString(), Views: h.pending}
	h.pending = nil

	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("dropping refresh event for slow subscriber", "id", ev.ID)
		}
	}
	return ev, true
}

// subscribe registers a listener. The returned function must be called to
// release it.
func (h *hub) subscribe() (<-chan refresh, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan refresh, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// close ends every open stream.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

func writeEvent(w io.Writer, ev refresh) error {
	data, err := json.Marshal(ev.Views)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: refresh\ndata: %s\n\n", ev.ID, data)
	return err
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Streams outlive the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	events, release := s.events.subscribe()
	defer release()

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, ev); err != nil {
				slog.Debug("event stream closed", "err", err)
				return
			}
			flusher.Flush()
		}
	}
}
