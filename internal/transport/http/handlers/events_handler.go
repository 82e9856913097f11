package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	sessionsvc "github.com/sprintstackagency/airtime-niger-simplicity/internal/services/session"
)

type EventsHandler struct {
	sessions *sessionsvc.Service
	logger   *zap.Logger
}

func NewEventsHandler(sessions *sessionsvc.Service, logger *zap.Logger) *EventsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsHandler{sessions: sessions, logger: logger}
}

// Stream pushes auth-change events over server-sent events until the client
// disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		writeInternal(w, "INTERNAL", "session service is not configured")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeInternal(w, "INTERNAL", "streaming is not supported")
		return
	}

	events, cancel := h.sessions.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				h.logger.Warn("encode auth event", zap.Error(err))
				continue
			}
			fmt.Fprintf(w, "event: auth\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
