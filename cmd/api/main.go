package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/palletpro-api/internal/bootstrap"
	"github.com/jhoicas/palletpro-api/pkg/config"
	"github.com/jhoicas/palletpro-api/pkg/logger"
	"github.com/jhoicas/palletpro-api/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_source", cfg.App.DataSource).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.App.Name, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas OTLP")
	}

	container, err := bootstrap.Build(ctx, cfg, log, bootstrap.Options{DocsFile: "./docs/swagger.json"})
	if err != nil {
		log.Fatal().Err(err).Msg("ensamblar aplicación")
	}
	defer container.Close()

	// La sesión persistida se hidrata en segundo plano; las páginas muestran el estado de carga mientras tanto.
	go func() {
		if err := container.Sessions.Init(ctx); err != nil {
			log.Error().Err(err).Msg("inicializar almacén de sesiones")
		}
	}()

	go func() {
		if err := container.App.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := container.App.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
