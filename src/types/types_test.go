package types

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromAddr(t *testing.T) {
	addr := &net.TCPAddr{IP: net.ParseIP("192.168.1.10"), Port: 52311}
	key, err := KeyFromAddr(addr)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.10", key.Host)
	assert.Equal(t, 52311, key.Port)
	assert.Equal(t, "192.168.1.10:52311", key.String())
}

func TestKeyFromAddrIPv6(t *testing.T) {
	addr := &net.TCPAddr{IP: net.ParseIP("::1"), Port: 8080}
	key, err := KeyFromAddr(addr)
	require.NoError(t, err)
	assert.Equal(t, "::1", key.Host)
	assert.Equal(t, 8080, key.Port)
	assert.Equal(t, "[::1]:8080", key.String())
}

func TestKeyFromAddrNil(t *testing.T) {
	_, err := KeyFromAddr(nil)
	assert.Error(t, err)
}

func TestClientKeysAreDistinctValues(t *testing.T) {
	// Same host with different ports must not collide as map keys.
	a := ClientKey{Host: "10.0.0.1", Port: 1234}
	b := ClientKey{Host: "10.0.0.1", Port: 1235}
	m := map[ClientKey]bool{a: true, b: true}
	assert.Len(t, m, 2)
}

func TestFrameOmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(Frame{Event: EventPong, Timestamp: "2026-03-20T14:30:00Z"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, map[string]any{
		"event":     "pong",
		"timestamp": "2026-03-20T14:30:00Z",
	}, decoded)
}

func TestClientStateString(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "closing", StateClosing.String())
	assert.Equal(t, "closed", StateClosed.String())
}
