// Package main implements the entry point for the streamlit server binary.
// It wires the option store, metrics registry, origin policy, and message
// guard into an HTTP server exposing the browser WebSocket endpoint.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shengmingqijiquan/streamlit/config"
	"github.com/shengmingqijiquan/streamlit/message"
	"github.com/shengmingqijiquan/streamlit/metric"
	"github.com/shengmingqijiquan/streamlit/server"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "streamlit-server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	opts, err := loadOptions(cliCfg, logger)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		logger.Info("Configuration is valid")
		return nil
	}

	return serve(opts, cliCfg, logger)
}

// loadOptions builds the option store from defaults, the optional config
// file, and STREAMLIT_* environment overrides.
func loadOptions(cliCfg *CLIConfig, logger *slog.Logger) (*config.Options, error) {
	opts := config.NewOptions()

	if cliCfg.ConfigPath != "" {
		if err := opts.LoadFile(cliCfg.ConfigPath); err != nil {
			return nil, err
		}
		logger.Info("configuration loaded", "path", cliCfg.ConfigPath)
	}

	if err := opts.ApplyEnv(); err != nil {
		return nil, err
	}
	return opts, nil
}

// greeting produces the first message each connecting client receives.
func greeting() *message.ForwardMsg {
	msg := message.NewForwardMsg("")
	msg.Delta.NewElement = &message.Element{
		Text: &message.TextElement{
			Body:   fmt.Sprintf("%s %s ready", appName, Version),
			Format: "plain",
		},
	}
	return msg
}

func serve(opts *config.Options, cliCfg *CLIConfig, logger *slog.Logger) error {
	registry := metric.NewRegistry()

	policy := server.NewOriginPolicy(opts, registry.Metrics(), logger)
	guard := server.NewMessageGuard(server.MessageSizeLimit, registry.Metrics())

	ws := server.NewWebsocketServer(guard, policy, logger)
	ws.Greeting = greeting

	wsPath := opts.GetString(config.KeyWebsocketPath)
	mux := http.NewServeMux()
	mux.Handle(wsPath, ws)
	mux.Handle("/metrics", registry.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	port := opts.GetInt(config.KeyServerPort)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if !opts.GetBool(config.KeyHeadless) {
		logger.Info("browser endpoint ready",
			"url", fmt.Sprintf("http://localhost:%d%s", port, wsPath))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening",
			"addr", srv.Addr,
			"websocket_path", wsPath,
			"cors_enabled", opts.GetBool(config.KeyEnableCORS))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down", "timeout", cliCfg.ShutdownTimeout.String())
		ws.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cliCfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
