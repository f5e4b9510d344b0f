package server

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ayusman/gridshot/internal/game"
	"github.com/ayusman/gridshot/internal/server/api"
)

// DefaultSnapshotInterval is the WebSocket push period (~15 per second).
const DefaultSnapshotInterval = 66 * time.Millisecond

// Snapshot encodings selected with ?format=.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// SnapshotSource provides world snapshots.
type SnapshotSource interface {
	Snapshot() game.Snapshot
}

// SnapshotHandler pushes world snapshots to a WebSocket client at a fixed rate.
// JSON snapshots go out as text messages, msgpack snapshots as binary
// messages keyed by the same field names.
type SnapshotHandler struct {
	source   SnapshotSource
	interval time.Duration
}

// NewSnapshotHandler creates a SnapshotHandler.
func NewSnapshotHandler(source SnapshotSource, interval time.Duration) *SnapshotHandler {
	if interval <= 0 {
		interval = DefaultSnapshotInterval
	}
	return &SnapshotHandler{source: source, interval: interval}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatMsgpack {
		api.WriteError(w, http.StatusBadRequest, "format must be json or msgpack")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	// The client never sends anything meaningful; reading only detects close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		if err := h.send(conn, format); err != nil {
			return
		}

		select {
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}

func (h *SnapshotHandler) send(conn *websocket.Conn, format string) error {
	snap := h.source.Snapshot()

	if format == FormatJSON {
		return conn.WriteJSON(snap)
	}

	data, err := EncodeMsgpack(snap)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

// EncodeMsgpack encodes a snapshot with its JSON field names.
func EncodeMsgpack(snap game.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(&snap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
