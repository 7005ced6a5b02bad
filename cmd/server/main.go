package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/telemock/callsim/internal/adapter/driven/audio/memory"
	handler "github.com/telemock/callsim/internal/adapter/driving/http"
	"github.com/telemock/callsim/internal/config"
	"github.com/telemock/callsim/internal/core/domain"
	"github.com/telemock/callsim/internal/core/port"
	"github.com/telemock/callsim/internal/core/service"
)

func main() {
	cfgPath := flag.String("config", "", "path to yaml config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if cfg.Log.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	l := zerolog.New(out).With().Timestamp().Caller().Logger()
	log.Logger = l
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	sessions := handler.NewSessionManager()
	newEngine := func() port.CallHandler {
		return service.NewEngine(memory.Factory,
			service.WithIncomingHandle(domain.NewHandle(cfg.Simulator.IncomingScheme, cfg.Simulator.IncomingNumber)),
			service.WithStopAudioOnDetach(cfg.Simulator.StopAudioOnDetach),
		)
	}
	h := handler.NewHandler(newEngine, sessions)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      h.NewRouter(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		l.Info().Str("addr", srv.Addr).Msg("starting call simulator")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	sessions.Stop()
	l.Info().Msg("server exited")
}
