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

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hazyhaar/yomikata/pkg/api"
	"github.com/hazyhaar/yomikata/pkg/chassis"
	"github.com/hazyhaar/yomikata/pkg/importer"
	"github.com/hazyhaar/yomikata/pkg/lookup"
	"github.com/hazyhaar/yomikata/pkg/termdb"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "serve":
		cmdServe(args)
	case "mcp":
		cmdMCP(args)
	case "deinflect":
		cmdDeinflect(args)
	case "process":
		cmdProcess(args)
	case "processors":
		cmdProcessors(args)
	case "lookup":
		cmdLookup(args)
	case "import":
		cmdImport(args)
	case "sources":
		cmdSources(args)
	case "remote":
		cmdRemote(args)
	case "version":
		fmt.Println("yomikata", version)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: yomikata <command> [flags]

Commands:
  serve       Start the HTTP server
  mcp         Serve the MCP tools over stdio
  deinflect   List the candidate base forms of words
  process     Run text through text processors
  processors  List the text processors and their options
  lookup      Look words up in the imported dictionaries
  import      Import a dictionary source
  sources     Show or edit the import sources
  remote      Call the MCP tools of a server over QUIC
  version     Print the version
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := setup(*cfgPath)

	store, err := openStore(cfg.DBPath)
	if err != nil {
		logger.Error("open term database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	sources, err := importer.OpenSourceDB(cfg.DBPath)
	if err != nil {
		logger.Error("open source database", "error", err)
		os.Exit(1)
	}
	defer sources.Close()
	if err := sources.Seed(importer.All()); err != nil {
		logger.Error("seed sources", "error", err)
		os.Exit(1)
	}

	svc, err := newService(cfg, store, logger)
	if err != nil {
		logger.Error("build lookup service", "error", err)
		os.Exit(1)
	}
	table := svc.Table()
	logger.Info("rules loaded", "language", table.Language(),
		"transforms", len(table.Transforms()), "rules", table.RuleCount(), "files", len(cfg.RuleFiles))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := api.NewRouter(svc, api.Options{
		Logger:         logger,
		Catalog:        store,
		Registry:       reg,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// SIGHUP: reload rule files.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading rules")
			reloadRules(svc, cfg.RuleFiles, logger)
		}
	}()

	if cfg.Watch && len(cfg.RuleFiles) > 0 {
		err := watchRules(ctx, cfg.RuleFiles, logger, func() { reloadRules(svc, cfg.RuleFiles, logger) })
		if err != nil {
			logger.Warn("rule watching disabled", "error", err)
		}
	}

	if cfg.CheckInterval > 0 {
		go importer.NewChecker(sources, logger, cfg.CheckInterval).Start(ctx)
	}

	if cfg.TLS.Enabled {
		serveChassis(ctx, cfg, router, newMCPServer(svc, store, logger), logger)
		return
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("yomikata listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// serveChassis serves HTTPS, HTTP/3 and MCP over QUIC until ctx is done.
func serveChassis(ctx context.Context, cfg config, router http.Handler, mcpSrv *server.MCPServer, logger *slog.Logger) {
	ch, err := chassis.New(chassis.Config{
		Addr:     cfg.Addr,
		CertFile: cfg.TLS.CertFile,
		KeyFile:  cfg.TLS.KeyFile,
		Handler:  router,
		MCP:      mcpSrv,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("chassis", "error", err)
		os.Exit(1)
	}
	if err := ch.Start(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ch.Stop(shutdownCtx)
}

func newMCPServer(svc *lookup.Service, store *termdb.Store, logger *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer("yomikata", version, server.WithToolCapabilities(false))
	api.RegisterMCPTools(srv, svc, store, logger)
	return srv
}

func cmdMCP(args []string) {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, logger := setup(*cfgPath)

	store, err := openStore(cfg.DBPath)
	if err != nil {
		logger.Error("open term database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc, err := newService(cfg, store, logger)
	if err != nil {
		logger.Error("build lookup service", "error", err)
		os.Exit(1)
	}

	if err := server.ServeStdio(newMCPServer(svc, store, logger)); err != nil {
		logger.Error("mcp server", "error", err)
		os.Exit(1)
	}
}
