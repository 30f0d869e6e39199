// Package server wires configuration into a ready MCP server: cache store,
// backend client, session manager, upload flows, and the toolkits.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/redis/go-redis/v9"

	"github.com/sdsmanager/mcp-sds-library/pkg/cache"
	"github.com/sdsmanager/mcp-sds-library/pkg/config"
	"github.com/sdsmanager/mcp-sds-library/pkg/envelope"
	"github.com/sdsmanager/mcp-sds-library/pkg/registry"
	"github.com/sdsmanager/mcp-sds-library/pkg/sdsapi"
	"github.com/sdsmanager/mcp-sds-library/pkg/session"
	"github.com/sdsmanager/mcp-sds-library/pkg/toolkits/auth"
	"github.com/sdsmanager/mcp-sds-library/pkg/toolkits/imports"
	"github.com/sdsmanager/mcp-sds-library/pkg/toolkits/library"
	"github.com/sdsmanager/mcp-sds-library/pkg/upload"
)

// Version is set at build time.
var Version = "dev"

const serverInstructions = "MCP tools for guiding users in setting up their Safety Data Sheet (SDS) library in SDS Manager. This MCP includes tools for uploading SDS PDFs, importing Excel product lists that create SDS Requests, matching SDSs from the global database, and organizing them by location for full regulatory compliance and accessibility."

// Server bundles the MCP server with the resources it owns.
type Server struct {
	MCP      *mcp.Server
	Config   *config.Config
	registry *registry.Registry
	store    cache.Store
	logger   *slog.Logger
}

// New builds a server from configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store := newStore(cfg, logger)

	client, err := sdsapi.New(sdsapi.Config{
		BaseURL:       cfg.Backend.BaseURL,
		APIKeyHeader:  cfg.Backend.APIKeyHeader,
		Timeout:       cfg.Backend.Timeout,
		CRUDTimeout:   cfg.Backend.CRUDTimeout,
		SubmitTimeout: cfg.Backend.SubmitTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating backend client: %w", err)
	}

	sessions := session.NewManager(store, client, cfg.Portal.Domain)
	classifier := envelope.NewClassifier(sessions, logger)
	flows := upload.NewFlows(store, client, classifier, cfg.Portal.Domain, logger)

	reg := registry.NewRegistry()
	toolkits := []registry.Toolkit{
		auth.New("auth", sessions, client, classifier, logger),
		library.New("library", sessions, client, classifier, logger),
		imports.New("imports", sessions, client, flows, classifier, logger),
	}
	for _, tk := range toolkits {
		if err := reg.Register(tk); err != nil {
			return nil, fmt.Errorf("registering toolkit %s: %w", tk.Name(), err)
		}
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})
	reg.RegisterAllTools(mcpServer)

	return &Server{
		MCP:      mcpServer,
		Config:   cfg,
		registry: reg,
		store:    store,
		logger:   logger,
	}, nil
}

// NewWithConfigFile builds a server from a YAML config file.
func NewWithConfigFile(path string, logger *slog.Logger) (*Server, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, logger)
}

// NewWithDefaults builds a server from environment variables only.
func NewWithDefaults(logger *slog.Logger) (*Server, error) {
	return New(config.Default(), logger)
}

// CacheProbe returns a readiness probe that checks the session cache. A
// missing sentinel key still proves the store answers.
func (s *Server) CacheProbe() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.store.Get(ctx, "healthcheck")
		if errors.Is(err, cache.ErrNotFound) {
			return nil
		}
		return err
	}
}

// Close releases the toolkits and the cache store.
func (s *Server) Close() error {
	err := s.registry.Close()
	if storeErr := s.store.Close(); storeErr != nil && err == nil {
		err = storeErr
	}
	return err
}

// newStore selects redis when an address is configured, otherwise an
// in-process store. The in-memory store loses sessions on restart and does
// not share state between replicas.
func newStore(cfg *config.Config, logger *slog.Logger) cache.Store {
	if cfg.Redis.Addr == "" {
		logger.Warn("no redis address configured, using in-memory session store")
		return cache.NewMemoryStore(cfg.Redis.TTL)
	}
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		DB:           cfg.Redis.DB,
		Password:     cfg.Redis.Password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return cache.NewRedisStore(client, cfg.Redis.TTL)
}
