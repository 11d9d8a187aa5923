package hub

import (
	"github.com/smartcare/socket/src/types"
)

// sendOutcome is the explicit result of one delivery attempt,
// consumed by the caller to decide registry removal.
type sendOutcome int

const (
	sendOK sendOutcome = iota
	sendNotConnected
	sendFailed
)

// sendTo attempts one frame delivery to one client. A client that is not
// in the Connected state is treated as already gone and never written to.
// Transport errors resolve to eviction; they are reported as an outcome,
// never as an error to the broadcast caller.
func (h *Hub) sendTo(client *Client, frame types.Frame) sendOutcome {
	if client.State() != types.StateConnected {
		return sendNotConnected
	}
	if err := client.Send(frame); err != nil {
		h.logger.Warn().
			Stringer("client", client.Key).
			Err(err).
			Msg("send failed, evicting client")
		return sendFailed
	}
	return sendOK
}

// Broadcast fans one frame out to every currently registered client,
// best-effort and at most once per client. Failed recipients are collected
// during the pass and removed afterwards, so a failure on one entry does
// not perturb delivery to the next. An empty registry is a normal state
// and a silent no-op.
func (h *Hub) Broadcast(frame types.Frame) {
	h.publishToBridge(frame)
	h.BroadcastLocal(frame)
}

// BroadcastLocal delivers a frame to clients on this instance only.
// The bridge calls this for relayed frames to avoid re-publish loops.
func (h *Hub) BroadcastLocal(frame types.Frame) {
	clients := h.snapshot()
	if len(clients) == 0 {
		return
	}

	h.logger.Debug().
		Str("event", frame.Event).
		Int("recipients", len(clients)).
		Msg("broadcasting")

	var failed []*Client
	for _, client := range clients {
		if h.sendTo(client, frame) != sendOK {
			failed = append(failed, client)
		}
	}
	for _, client := range failed {
		h.DisconnectClient(client.Key, client)
	}
}

// SendPersonal delivers a frame to a single client, evicting it on failure.
func (h *Hub) SendPersonal(key types.ClientKey, frame types.Frame) {
	client, ok := h.Client(key)
	if !ok {
		return
	}
	if h.sendTo(client, frame) != sendOK {
		h.DisconnectClient(key, client)
	}
}

// publishToBridge forwards a frame to the bridge if one is attached.
func (h *Hub) publishToBridge(frame types.Frame) {
	h.mu.Lock()
	b := h.bridge
	h.mu.Unlock()

	if b == nil || !b.Available() {
		return
	}
	if err := b.Publish(frame); err != nil {
		h.logger.Error().Err(err).Msg("bridge publish failed")
	}
}
