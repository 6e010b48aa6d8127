// notifier consume los eventos de dominio de RabbitMQ y los reenvía a los clientes websocket.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/gestao-api/internal/infrastructure/broker"
	"github.com/jhoicas/gestao-api/internal/infrastructure/ws"
	"github.com/jhoicas/gestao-api/pkg/config"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

const prefetch = 50

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "notifier"})

	if !cfg.Broker.Enabled() {
		log.Fatal().Msg("AMQP_URL es obligatorio para el notifier")
	}

	hub := ws.NewHub(log)
	go hub.Run()

	consumer, err := broker.NewConsumer(cfg.Broker.URL, cfg.Broker.Queue, prefetch, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a RabbitMQ")
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := consumer.Run(ctx, hub.Broadcast); err != nil {
			log.Error().Err(err).Msg("consumer detenido")
			stop()
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.Handler(hub, log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	srv := &http.Server{
		Addr:              cfg.WS.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.WS.Addr).Msg("notifier escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.WS.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	hub.Stop()

	log.Info().Msg("notifier detenido")
}
