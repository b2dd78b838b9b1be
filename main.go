package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/aaronzipp/launch-sus/internal/game"
	"github.com/aaronzipp/launch-sus/internal/handlers"
	"github.com/aaronzipp/launch-sus/internal/store"
	"github.com/aaronzipp/launch-sus/internal/ws"
)

func main() {
	// Optional .env file; real environment wins.
	godotenv.Load()

	logger := newLogger()

	rooms := store.NewRoomStore()
	registry := ws.NewRegistry()
	gateway := ws.NewGateway(registry, logger)
	engine := game.NewEngine(rooms, gateway, logger)

	ctx := &handlers.Context{
		Rooms:     rooms,
		Engine:    engine,
		Registry:  registry,
		Log:       logger,
		PublicURL: envOr("PUBLIC_URL", "http://localhost:8000"),
	}

	http.HandleFunc("/ws", ctx.HandleWS)
	http.HandleFunc("/qr/", ctx.HandleQR)
	http.HandleFunc("/healthz", ctx.HandleHealth)

	addr := ":" + envOr("PORT", "8000")
	logger.Info().Str("addr", addr).Msg("server starting")
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Logger()
	if os.Getenv("DEBUG") != "" {
		return logger.Level(zerolog.DebugLevel)
	}
	return logger.Level(zerolog.InfoLevel)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
