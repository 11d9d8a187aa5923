package providers

import (
	"strings"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"

	"github.com/smartcare/socket/src/types"
)

// FastHTTPHandler returns a raw fasthttp handler for WebSocket upgrades.
// Register this on the fasthttp server at the "/ws" path; Fiber v3 does
// not expose *fasthttp.RequestCtx, so the upgrade runs beside the app.
func (p *Provider) FastHTTPHandler() fasthttp.RequestHandler {
	upgrader := websocket.FastHTTPUpgrader{
		ReadBufferSize:  p.cfg.Socket.ReadBufferSize,
		WriteBufferSize: p.cfg.Socket.WriteBufferSize,
	}

	return func(ctx *fasthttp.RequestCtx) {
		upgrade := string(ctx.Request.Header.Peek("Upgrade"))
		if !strings.EqualFold(upgrade, "websocket") {
			ctx.SetStatusCode(fasthttp.StatusUpgradeRequired)
			ctx.SetBodyString(`{"error":"upgrade_required","message":"WebSocket upgrade required"}`)
			return
		}
		if !p.limiter.Allow() {
			ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
			ctx.SetBodyString(`{"error":"rate_limited","message":"too many connection attempts"}`)
			return
		}
		if p.hub.Count() >= p.cfg.Socket.MaxConnections {
			ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
			ctx.SetBodyString(`{"error":"at_capacity","message":"connection limit reached"}`)
			return
		}

		err := upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
			p.serveConnection(conn)
		})
		if err != nil {
			p.logger.Error().Err(err).Msg("websocket upgrade failed")
		}
	}
}

// serveConnection registers the connection and runs its read loop until
// the client goes away. The literal text "ping" gets a personal pong;
// any other inbound text is ignored.
func (p *Provider) serveConnection(conn *websocket.Conn) {
	key, err := types.KeyFromAddr(conn.RemoteAddr())
	if err != nil {
		p.logger.Error().Err(err).Msg("cannot derive client key")
		_ = conn.Close()
		return
	}

	client, err := p.hub.Connect(&wsConn{conn: conn}, key)
	if err != nil {
		p.logger.Warn().Err(err).Stringer("client", key).Msg("connection accept failed")
		return
	}
	defer p.hub.DisconnectClient(key, client)

	for {
		text, err := client.ReadText()
		if err != nil {
			return
		}
		if text == "ping" {
			p.hub.SendPersonal(key, types.Frame{
				Event:     types.EventPong,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}
	}
}

// wsConn adapts fasthttp/websocket.Conn to types.Conn.
type wsConn struct {
	conn *websocket.Conn
}

func (w *wsConn) WriteJSON(v any) error { return w.conn.WriteJSON(v) }

func (w *wsConn) ReadText() (string, error) {
	for {
		msgType, data, err := w.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if msgType == websocket.TextMessage {
			return string(data), nil
		}
	}
}

func (w *wsConn) SetWriteDeadline(t time.Time) error { return w.conn.SetWriteDeadline(t) }

func (w *wsConn) Close() error { return w.conn.Close() }

var _ types.Conn = (*wsConn)(nil)
