// Package server exposes a read-only spectator feed of the simulation.
package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pthm-cable/sanctuary/game"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 4
)

// subscriber is one websocket spectator. Frames that do not fit in send are
// dropped; a spectator only ever needs the newest one.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps the latest snapshot and pushes it to spectators at a fixed rate.
// Publish is called from the simulation goroutine; everything else runs in Run
// and the per-connection goroutines.
type Hub struct {
	mu      sync.RWMutex
	latest  game.Snapshot
	has     bool
	version uint64

	interval    time.Duration
	subscribers map[*subscriber]struct{}
	register    chan *subscriber
	unregister  chan *subscriber
}

// NewHub creates a hub broadcasting hz frames per second.
func NewHub(hz float64) *Hub {
	if hz <= 0 {
		hz = 10
	}
	return &Hub{
		interval:    time.Duration(float64(time.Second) / hz),
		subscribers: make(map[*subscriber]struct{}),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
	}
}

// Publish replaces the latest snapshot.
func (h *Hub) Publish(s game.Snapshot) {
	h.mu.Lock()
	h.latest = s
	h.has = true
	h.version++
	h.mu.Unlock()
}

// Latest returns the most recent snapshot, if any.
func (h *Hub) Latest() (game.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.has
}

// Run services registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var sent uint64
	for {
		select {
		case <-ctx.Done():
			for sub := range h.subscribers {
				close(sub.send)
			}
			h.subscribers = nil
			return

		case sub := <-h.register:
			h.subscribers[sub] = struct{}{}
			slog.Info("spectator joined", "remote", sub.conn.RemoteAddr().String(), "count", len(h.subscribers))
			if frame, _, ok := h.encodeLatest(); ok {
				h.deliver(sub, frame)
			}

		case sub := <-h.unregister:
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.send)
				slog.Info("spectator left", "count", len(h.subscribers))
			}

		case <-ticker.C:
			if len(h.subscribers) == 0 {
				continue
			}
			frame, version, ok := h.encodeLatest()
			if !ok || version == sent {
				continue
			}
			sent = version
			for sub := range h.subscribers {
				h.deliver(sub, frame)
			}
		}
	}
}

func (h *Hub) deliver(sub *subscriber, frame []byte) {
	select {
	case sub.send <- frame:
	default:
		slog.Debug("spectator frame dropped", "remote", sub.conn.RemoteAddr().String())
	}
}

// encodeLatest msgpack-encodes the latest snapshot.
func (h *Hub) encodeLatest() ([]byte, uint64, bool) {
	h.mu.RLock()
	snap, version, has := h.latest, h.version, h.has
	h.mu.RUnlock()
	if !has {
		return nil, 0, false
	}

	frame, err := msgpack.Marshal(&snap)
	if err != nil {
		slog.Error("failed to encode snapshot", "error", err)
		return nil, 0, false
	}
	return frame, version, true
}

// attach runs the write loop for conn and blocks on the read loop until the
// spectator disconnects or ctx ends.
func (h *Hub) attach(ctx context.Context, conn *websocket.Conn) {
	sub := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}

	select {
	case h.register <- sub:
	case <-ctx.Done():
		conn.Close()
		return
	}

	go func() {
		for frame := range sub.send {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				slog.Debug("spectator write failed", "error", err)
				break
			}
		}
		conn.Close()
	}()

	// Spectators are read-only; inbound messages are discarded.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- sub:
	case <-ctx.Done():
	}
}
