package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/smartcare/socket/config"
	"github.com/smartcare/socket/providers"
	"github.com/smartcare/socket/src/bridge"
	"github.com/smartcare/socket/src/hub"
	"github.com/smartcare/socket/src/janitor"
	"github.com/smartcare/socket/src/messaging"
	"github.com/smartcare/socket/src/service"
	"github.com/smartcare/socket/src/store"
	"github.com/smartcare/socket/src/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load config")
	}

	logger := newLogger(cfg.LogLevel)

	st, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("open store")
	}
	defer st.Close()

	writeTimeout := time.Duration(cfg.Socket.WriteTimeout) * time.Second
	h := hub.New(logger, writeTimeout)
	notifier := service.NewNotifier(h, logger)
	sender := messaging.NewSender(cfg.Twilio, logger)

	// Attempt Redis bridge connection (non-fatal if unavailable).
	var rb *bridge.RedisBridge
	if redisCfg, err := bridge.RedisConfigFromEnv(); err != nil {
		logger.Warn().Err(err).Msg("redis config invalid, running standalone")
	} else {
		rb = bridge.NewRedisBridge(redisCfg, h, logger)
		if err := rb.Start(); err != nil {
			logger.Warn().Err(err).Msg("redis bridge unavailable, running standalone")
			rb = nil
		} else {
			h.SetBridge(rb)
			logger.Info().Str("redis_addr", redisCfg.Addr).Msg("redis bridge connected")
		}
	}

	jan := janitor.New(h, st, notifier, cfg.PurgeAfter, logger)
	if err := jan.Start(cfg.SweepSchedule, cfg.PurgeSchedule); err != nil {
		logger.Fatal().Err(err).Msg("start janitor")
	}

	provider := providers.New(cfg, h, st, notifier, sender, logger)

	app := fiber.New(fiber.Config{AppName: "smartcare-socket"})
	provider.RegisterRoutes(app)

	// The WebSocket upgrade needs the raw fasthttp request context, so the
	// server dispatches /ws itself and hands everything else to fiber.
	wsHandler := provider.FastHTTPHandler()
	appHandler := app.Handler()
	srv := &fasthttp.Server{
		Name: "smartcare-socket",
		Handler: func(ctx *fasthttp.RequestCtx) {
			if string(ctx.Path()) == "/ws" {
				wsHandler(ctx)
				return
			}
			appHandler(ctx)
		},
		ReadBufferSize:  cfg.Socket.ReadBufferSize * 4,
		WriteBufferSize: cfg.Socket.WriteBufferSize * 4,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
		errCh <- srv.ListenAndServe(cfg.ListenAddr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server stopped")
	}

	notifier.NotifySystem("Server shutting down", types.LevelWarning)

	if err := srv.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	jan.Stop()
	if rb != nil {
		if err := rb.Stop(); err != nil {
			logger.Error().Err(err).Msg("bridge stop")
		}
	}
	h.Shutdown()
	logger.Info().Msg("bye")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
