// Package main provides the entry point for the mcp-sds-library server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sdsmanager/mcp-sds-library/internal/server"
	"github.com/sdsmanager/mcp-sds-library/pkg/health"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type serverOptions struct {
	configPath  string
	transport   string
	address     string
	showVersion bool
}

func parseFlags() serverOptions {
	opts := serverOptions{}
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.transport, "transport", "", "Transport type: stdio, http")
	flag.StringVar(&opts.address, "address", "", "Server address for HTTP transport")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	flag.Parse()
	return opts
}

func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}

func createServer(opts serverOptions, logger *slog.Logger) (*server.Server, error) {
	if opts.configPath != "" {
		return server.NewWithConfigFile(opts.configPath, logger)
	}
	return server.NewWithDefaults(logger)
}

func run() error {
	_ = godotenv.Load()

	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("mcp-sds-library version %s\n", server.Version)
		return nil
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	ctx := setupSignalHandler()

	srv, err := createServer(opts, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer func() {
		_ = srv.Close()
	}()

	applyConfigDefaults(srv, &opts)

	return startServer(ctx, srv, opts, logger)
}

func applyConfigDefaults(srv *server.Server, opts *serverOptions) {
	if opts.transport == "" {
		opts.transport = srv.Config.Server.Transport
	}
	if opts.address == "" {
		opts.address = srv.Config.Server.Address
	}
}

func startServer(ctx context.Context, srv *server.Server, opts serverOptions, logger *slog.Logger) error {
	switch opts.transport {
	case "stdio":
		return srv.MCP.Run(ctx, &mcp.StdioTransport{})
	case "http":
		checker := health.NewChecker(srv.CacheProbe())

		mux := http.NewServeMux()
		mux.Handle("/healthz", checker.LivenessHandler())
		mux.Handle("/readyz", checker.ReadinessHandler())
		mux.Handle("/", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return srv.MCP
		}, nil))

		httpServer := &http.Server{Addr: opts.address, Handler: mux}
		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()
		checker.SetReady()
		logger.Info("listening", "address", opts.address)
		select {
		case <-ctx.Done():
			checker.SetDraining()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	default:
		return fmt.Errorf("unknown transport: %s", opts.transport)
	}
}
