package hub

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/smartcare/socket/src/types"
)

// WelcomeText is the greeting carried by the connected frame.
const WelcomeText = "Connected to Smart Care Medical Center"

// MessageBridge publishes frames to other server instances.
// Defined here to avoid circular imports with the bridge package.
type MessageBridge interface {
	Publish(frame types.Frame) error
	Available() bool
}

// Hub is the single source of truth for which dashboard clients are
// currently listening. The mutex guards only the map; network writes
// happen outside it so one slow client cannot stall the others.
type Hub struct {
	mu      sync.Mutex
	clients map[types.ClientKey]*Client
	seq     uint64

	bridge MessageBridge

	writeTimeout time.Duration
	logger       zerolog.Logger
	now          func() time.Time
}

// New creates an empty hub.
func New(logger zerolog.Logger, writeTimeout time.Duration) *Hub {
	return &Hub{
		clients:      make(map[types.ClientKey]*Client),
		writeTimeout: writeTimeout,
		logger:       logger.With().Str("component", "hub").Logger(),
		now:          time.Now,
	}
}

// SetBridge attaches a cross-instance message bridge to the hub.
// When set, broadcast frames are also forwarded to other instances.
func (h *Hub) SetBridge(b MessageBridge) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bridge = b
}

// Connect installs a new client connection keyed by its remote endpoint.
// A second connection from the same endpoint wins: the old one is closed
// best-effort before the new one is installed. The new client receives a
// personal welcome frame carrying a monotonically increasing sequence
// number; if that first write fails the entry is not kept.
func (h *Hub) Connect(conn types.Conn, key types.ClientKey) (*Client, error) {
	client := NewClient(key, conn, h.writeTimeout)

	h.mu.Lock()
	if old, ok := h.clients[key]; ok {
		h.logger.Info().Stringer("client", key).Msg("replacing existing connection")
		old.Close()
	}
	h.clients[key] = client
	h.seq++
	seq := h.seq
	h.mu.Unlock()

	welcome := types.Frame{
		Event:        types.EventConnected,
		Message:      WelcomeText,
		Timestamp:    h.now().Format(time.RFC3339),
		ConnectionID: seq,
	}
	if err := client.Send(welcome); err != nil {
		h.DisconnectClient(key, client)
		return nil, fmt.Errorf("send welcome to %s: %w", key, err)
	}
	client.markConnected()

	h.logger.Info().
		Stringer("client", key).
		Uint64("connection_id", seq).
		Int("total", h.Count()).
		Msg("client connected")
	return client, nil
}

// Disconnect removes a client if present. Removing an absent key is a no-op.
func (h *Hub) Disconnect(key types.ClientKey) {
	h.mu.Lock()
	client, ok := h.clients[key]
	if ok {
		delete(h.clients, key)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	client.Close()
	h.logger.Info().Stringer("client", key).Int("total", total).Msg("client disconnected")
}

// DisconnectClient removes the entry for key only if it still maps to
// client, then closes the connection. A replaced connection tearing
// itself down cannot evict its successor this way.
func (h *Hub) DisconnectClient(key types.ClientKey, client *Client) {
	h.mu.Lock()
	cur, ok := h.clients[key]
	removed := ok && cur == client
	if removed {
		delete(h.clients, key)
	}
	total := len(h.clients)
	h.mu.Unlock()

	client.Close()
	if removed {
		h.logger.Info().Stringer("client", key).Int("total", total).Msg("client disconnected")
	}
}

// Count returns the number of tracked connections. Never blocks on I/O.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Client looks up a tracked client by key.
func (h *Hub) Client(key types.ClientKey) (*Client, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[key]
	return c, ok
}

// Sweep removes entries whose transport is no longer connected and
// returns how many were evicted. Independent of send-failure eviction,
// this is periodic hygiene for connections that died quietly.
func (h *Hub) Sweep() int {
	var dead []*Client
	h.mu.Lock()
	for key, client := range h.clients {
		if client.State() != types.StateConnected {
			delete(h.clients, key)
			dead = append(dead, client)
		}
	}
	h.mu.Unlock()

	for _, client := range dead {
		client.Close()
	}
	if len(dead) > 0 {
		h.logger.Info().Int("evicted", len(dead)).Msg("swept dead connections")
	}
	return len(dead)
}

// Shutdown closes every tracked connection and empties the registry.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for key, client := range h.clients {
		clients = append(clients, client)
		delete(h.clients, key)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.Close()
	}
	h.logger.Info().Int("closed", len(clients)).Msg("hub shut down")
}

// snapshot returns the current entries as a stable list, so registry
// mutation during a broadcast pass cannot skip or duplicate a recipient.
func (h *Hub) snapshot() []*Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}
