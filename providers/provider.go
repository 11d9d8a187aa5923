package providers

import (
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/smartcare/socket/config"
	"github.com/smartcare/socket/src/hub"
	"github.com/smartcare/socket/src/messaging"
	"github.com/smartcare/socket/src/service"
	"github.com/smartcare/socket/src/store"
)

// Provider wires the hub, store, notifier, and messaging sender into
// the HTTP surface: fiber routes plus a raw fasthttp WebSocket handler.
type Provider struct {
	cfg      *config.Config
	hub      *hub.Hub
	store    *store.Store
	notifier *service.Notifier
	sender   *messaging.Sender
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

// New creates a provider with a connection-accept rate limiter sized
// from the socket configuration.
func New(cfg *config.Config, h *hub.Hub, st *store.Store, n *service.Notifier, sender *messaging.Sender, logger zerolog.Logger) *Provider {
	return &Provider{
		cfg:      cfg,
		hub:      h,
		store:    st,
		notifier: n,
		sender:   sender,
		limiter:  rate.NewLimiter(rate.Limit(cfg.Socket.AcceptRate), cfg.Socket.AcceptBurst),
		logger:   logger.With().Str("component", "providers").Logger(),
	}
}
