// Package live drives the interactive storefront session over WebSocket:
// each connection owns a catalog session and a countdown tracker, and a
// single ticker goroutine pushes countdown frames to every connection on
// its schedule.
package live

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"promohub/internal/catalog"
	"promohub/internal/countdown"
	"promohub/internal/promo"
)

const writeWait = 2 * time.Second

type client struct {
	id      uuid.UUID
	conn    *websocket.Conn
	session *catalog.Session
	tracker *countdown.Tracker

	// writeMu serializes frame writes: the read loop and the ticker both
	// push to the same connection.
	writeMu sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

type Stats struct {
	Clients int `json:"ws_clients"`
}

type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}

	store    *catalog.Store
	renderer promo.Renderer
	pageSize int
}

func NewHub(store *catalog.Store, renderer promo.Renderer, pageSize int) *Hub {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		store:    store,
		renderer: renderer,
		pageSize: pageSize,
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}

func (h *Hub) snapshotClients() []*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Clients: len(h.clients)}
}

// RunTicker re-renders every connection's tracked countdown entries: once
// immediately, then every interval, until ctx is done.
func (h *Hub) RunTicker(ctx context.Context, interval time.Duration) {
	tk := countdown.Ticker{Interval: interval}
	tk.Run(ctx, func(now time.Time) {
		for _, c := range h.snapshotClients() {
			entries := c.tracker.Snapshot()
			if len(entries) == 0 {
				continue
			}
			frame := countdownFrame{Type: "countdown", Items: countdown.Render(entries, now)}
			if err := c.writeJSON(frame); err != nil {
				log.Printf("[live] drop client %s: %v", c.id, err)
				h.remove(c)
			}
		}
	})
}

// pushPage renders the client's current page, replaces its tracked
// countdown entries with the visible ones, and sends both frames.
func (h *Hub) pushPage(c *client) error {
	view, ok := c.session.View()
	if !ok {
		c.tracker.Replace(nil)
		return c.writeJSON(errorFrame{Type: "error", Message: catalog.LoadErrorMessage})
	}

	entries := countdown.EntriesFor(view.Items)
	c.tracker.Replace(entries)

	if err := c.writeJSON(pageFrame{Type: "page", Data: h.renderer.Page(view)}); err != nil {
		return err
	}
	if len(entries) > 0 {
		return c.writeJSON(countdownFrame{
			Type:  "countdown",
			Items: countdown.Render(entries, time.Now()),
		})
	}
	return nil
}
