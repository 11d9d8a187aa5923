package types

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// ClientKey identifies a dashboard client by its remote endpoint.
// Using a value-typed key avoids collisions from naive string concatenation.
type ClientKey struct {
	Host string
	Port int
}

func (k ClientKey) String() string {
	return net.JoinHostPort(k.Host, strconv.Itoa(k.Port))
}

// KeyFromAddr derives a ClientKey from a connection's remote address.
func KeyFromAddr(addr net.Addr) (ClientKey, error) {
	if addr == nil {
		return ClientKey{}, fmt.Errorf("nil remote address")
	}
	host, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		return ClientKey{}, fmt.Errorf("split remote address %q: %w", addr.String(), err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return ClientKey{}, fmt.Errorf("parse remote port %q: %w", portStr, err)
	}
	return ClientKey{Host: host, Port: port}, nil
}

// ClientState is the lifecycle state of a tracked connection.
type ClientState int32

const (
	StateConnecting ClientState = iota
	StateConnected
	StateClosing
	StateClosed
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event kinds pushed to dashboard clients.
const (
	EventConnected       = "connected"
	EventPong            = "pong"
	EventNewBooking      = "new_booking"
	EventBookingCanceled = "booking_canceled"
	EventSystemMessage   = "system_message"
)

// Severity levels for system messages.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Frame is one JSON message on the wire. The connected and pong events use
// the top-level fields; booking and system events carry their payload in Data.
type Frame struct {
	Event        string `json:"event"`
	Message      string `json:"message,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
	ConnectionID uint64 `json:"connection_id,omitempty"`
	Data         any    `json:"data,omitempty"`
}

// BookingData is the payload of a new_booking event.
type BookingData struct {
	ID        int64   `json:"id"`
	Patient   string  `json:"patient"`
	Time      string  `json:"time"`
	Reason    string  `json:"reason"`
	Phone     *string `json:"phone"`
	Timestamp string  `json:"timestamp"`
	Status    string  `json:"status"`
}

// CancellationData is the payload of a booking_canceled event.
type CancellationData struct {
	ID            int64  `json:"id"`
	Patient       string `json:"patient"`
	Time          string `json:"time"`
	CanceledCount int    `json:"canceled_count"`
	Timestamp     string `json:"timestamp"`
	Status        string `json:"status"`
}

// SystemData is the payload of a system_message event.
type SystemData struct {
	Message   string `json:"message"`
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
}

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	WriteJSON(v any) error
	ReadText() (string, error)
	SetWriteDeadline(t time.Time) error
	Close() error
}
