package bridge

import "github.com/smartcare/socket/src/types"

// Bridge defines the interface for cross-instance event broadcasting.
// Implementations relay dashboard frames between multiple server instances.
type Bridge interface {
	// Publish sends a frame to all other instances via the bridge.
	Publish(frame types.Frame) error

	// Start begins listening for frames from other instances.
	Start() error

	// Stop shuts down the bridge connection.
	Stop() error

	// Available reports whether the bridge is connected and operational.
	Available() bool
}

// BroadcastTarget is implemented by the Hub to receive frames from the bridge.
type BroadcastTarget interface {
	BroadcastLocal(frame types.Frame)
}
