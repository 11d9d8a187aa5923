package hub

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smartcare/socket/src/types"
)

// Client wraps a WebSocket connection tracked by the registry.
// All writes go through Send so broadcast and personal messages
// never interleave on the underlying connection.
type Client struct {
	Key         types.ClientKey
	conn        types.Conn
	connectedAt time.Time

	state atomic.Int32

	writeTimeout time.Duration
	writeMu      sync.Mutex

	closeOnce sync.Once
}

// NewClient wraps an accepted connection. The client starts in the
// Connecting state; the registry promotes it once the welcome frame
// has been delivered.
func NewClient(key types.ClientKey, conn types.Conn, writeTimeout time.Duration) *Client {
	c := &Client{
		Key:          key,
		conn:         conn,
		connectedAt:  time.Now(),
		writeTimeout: writeTimeout,
	}
	c.state.Store(int32(types.StateConnecting))
	return c
}

// State returns the client's current lifecycle state.
func (c *Client) State() types.ClientState {
	return types.ClientState(c.state.Load())
}

// ConnectedAt returns when the connection was accepted.
func (c *Client) ConnectedAt() time.Time { return c.connectedAt }

func (c *Client) markConnected() {
	c.state.CompareAndSwap(int32(types.StateConnecting), int32(types.StateConnected))
}

// MarkClosed records that the transport is gone, typically from the
// read loop observing EOF. The registry evicts the entry on the next
// send attempt or sweep.
func (c *Client) MarkClosed() {
	c.state.Store(int32(types.StateClosed))
}

// Send writes one frame to the connection, bounded by the write timeout.
// A non-nil error means the connection can no longer be trusted.
func (c *Client) Send(frame types.Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.writeTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	if err := c.conn.WriteJSON(frame); err != nil {
		c.MarkClosed()
		return err
	}
	return nil
}

// ReadText blocks for the next inbound text frame.
func (c *Client) ReadText() (string, error) {
	text, err := c.conn.ReadText()
	if err != nil {
		c.MarkClosed()
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Close tears down the underlying transport. Safe to call repeatedly
// and from any goroutine.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.state.Store(int32(types.StateClosing))
		_ = c.conn.Close()
		c.state.Store(int32(types.StateClosed))
	})
}
