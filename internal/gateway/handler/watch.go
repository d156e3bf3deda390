package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"questio/internal/gateway/realtime"
	"questio/internal/gateway/service/session"
	"questio/internal/logger"
)

const (
	watchWriteWait = 10 * time.Second
	watchPongWait  = 60 * time.Second
	watchPingEvery = (watchPongWait * 9) / 10
)

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type watchOutbound struct {
	Type    string          `json:"type"`
	Event   *realtime.Event `json:"event,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Subscriber is the part of the session service the watch stream needs.
type Subscriber interface {
	Subscribe(ctx context.Context, sessionID string) (<-chan realtime.Event, error)
}

// WatchHandler streams stage and progress events of one session over a
// websocket: GET /ws/sessions?session_id=...
type WatchHandler struct {
	svc Subscriber
	log *logger.Logger
}

func NewWatchHandler(svc Subscriber, log *logger.Logger) *WatchHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &WatchHandler{svc: svc, log: log.With("component", "watch")}
}

func (h *WatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	conn, err := watchUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(watchPongWait)); err != nil {
		h.log.Warn("watch set read deadline failed", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchPongWait))
	})

	// Reader: only control frames are expected; a read error means the
	// peer went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	events, err := h.svc.Subscribe(ctx, sessionID)
	if err != nil {
		code := "internal"
		if errors.Is(err, session.ErrNotFound) {
			code = "not_found"
		}
		_ = writeJSON(conn, watchOutbound{Type: "error", Code: code, Message: err.Error()})
		return
	}
	if err := writeJSON(conn, watchOutbound{Type: "subscribed"}); err != nil {
		return
	}

	ticker := time.NewTicker(watchPingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := writeJSON(conn, watchOutbound{Type: "event", Event: &ev}); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(watchWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, out watchOutbound) error {
	if err := conn.SetWriteDeadline(time.Now().Add(watchWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(out)
}
