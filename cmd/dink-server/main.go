// cmd/dink-server/main.go
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avigoodman4-jpg/Dink-Game/internal/cache"
	"github.com/avigoodman4-jpg/Dink-Game/internal/config"
	"github.com/avigoodman4-jpg/Dink-Game/internal/database"
	"github.com/avigoodman4-jpg/Dink-Game/internal/game"
	"github.com/avigoodman4-jpg/Dink-Game/internal/ws"
)

func main() {
	cfg := config.Load()

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.RedisAddr != "" {
		if err := cache.InitRedis(ctx, cfg.RedisAddr); err != nil {
			logrus.WithError(err).Warn("running without action history")
		}
	}
	if cfg.DatabaseURL != "" {
		if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
			logrus.WithError(err).Warn("running without persistence")
		} else if err := database.Migrate(ctx); err != nil {
			logrus.WithError(err).Fatal("migration failed")
		}
	}

	registry := game.NewRegistry()
	server := ws.NewServer(registry, []byte(cfg.JWTSecret))

	mux := http.NewServeMux()
	mux.Handle("/ws", server.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	logrus.WithField("addr", cfg.Addr).Info("dink server listening")
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
