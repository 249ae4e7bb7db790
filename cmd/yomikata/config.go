package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/yomikata/pkg/deinflect"
	"github.com/hazyhaar/yomikata/pkg/lookup"
	"github.com/hazyhaar/yomikata/pkg/segment"
	"github.com/hazyhaar/yomikata/pkg/termdb"
	"github.com/hazyhaar/yomikata/pkg/textproc"
)

type config struct {
	Addr     string `yaml:"addr"`
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`

	CacheSize     int `yaml:"cache_size"`
	MaxScanLength int `yaml:"max_scan_length"`
	MaxVariants   int `yaml:"max_variants"`

	// RuleFiles extend the built-in Japanese rules, in order.
	RuleFiles []string `yaml:"rule_files"`
	// Processors are the ids expanded into lookup variants. Empty means
	// every Japanese processor.
	Processors []string `yaml:"processors"`
	// Pipeline is the default stage list of the process command.
	Pipeline []textproc.StageConfig `yaml:"pipeline"`
	// Segment enables word segmentation for scans.
	Segment bool `yaml:"segment"`
	// Watch reloads the rule table when a rule file changes.
	Watch bool `yaml:"watch"`

	CheckInterval  time.Duration `yaml:"check_interval"`
	AllowedOrigins []string      `yaml:"allowed_origins"`

	// TLS switches serve to HTTPS plus HTTP/3 and MCP over QUIC on the
	// same port. Without cert files a self-signed certificate is used.
	TLS struct {
		Enabled  bool   `yaml:"enabled"`
		CertFile string `yaml:"cert_file"`
		KeyFile  string `yaml:"key_file"`
	} `yaml:"tls"`
}

func defaultConfig() config {
	return config{
		Addr:          ":8421",
		DBPath:        "data/yomikata.db",
		LogLevel:      "info",
		CacheSize:     lookup.DefaultCacheSize,
		MaxScanLength: lookup.DefaultMaxScanLength,
		MaxVariants:   lookup.DefaultMaxVariants,
		CheckInterval: 24 * time.Hour,
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// setup loads the config file and builds the logger every command shares.
func setup(cfgPath string) (config, *slog.Logger) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return cfg, logger
}

func (c config) processors() ([]textproc.Descriptor, error) {
	if len(c.Processors) == 0 {
		return textproc.Japanese(), nil
	}
	out := make([]textproc.Descriptor, 0, len(c.Processors))
	for _, id := range c.Processors {
		d, ok := textproc.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("processors: %w: %q", textproc.ErrUnknownProcessor, id)
		}
		out = append(out, d)
	}
	return out, nil
}

// openStore opens the term database, creating its directory.
func openStore(path string) (*termdb.Store, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	return termdb.Open(path)
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	return nil
}

// newService builds the rule table and the lookup service. store may be
// nil for commands that never look words up.
func newService(cfg config, store lookup.HeadwordStore, logger *slog.Logger) (*lookup.Service, error) {
	table, err := deinflect.LoadTable(cfg.RuleFiles...)
	if err != nil {
		return nil, err
	}
	procs, err := cfg.processors()
	if err != nil {
		return nil, err
	}
	lc := lookup.Config{
		MaxScanLength: cfg.MaxScanLength,
		MaxVariants:   cfg.MaxVariants,
		CacheSize:     cfg.CacheSize,
		Processors:    procs,
		Logger:        logger,
	}
	if cfg.Segment {
		seg, err := segment.New()
		if err != nil {
			return nil, err
		}
		lc.Segmenter = seg
	}
	return lookup.New(table, store, lc)
}

// reloadRules rebuilds the table from the rule files. A broken file keeps
// the current table.
func reloadRules(svc *lookup.Service, files []string, logger *slog.Logger) {
	table, err := deinflect.LoadTable(files...)
	if err != nil {
		logger.Error("rule reload failed, keeping current table", "error", err)
		return
	}
	svc.SetTable(table)
	logger.Info("rules reloaded", "transforms", len(table.Transforms()), "rules", table.RuleCount())
}

// watchDelay coalesces the bursts of events editors produce on save.
const watchDelay = 200 * time.Millisecond

// watchRules calls reload after any of files is written, created or
// renamed, until ctx is done. Parent directories are watched so files
// replaced by rename are still seen.
func watchRules(ctx context.Context, files []string, logger *slog.Logger, reload func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch rules: %w", err)
	}

	wanted := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return fmt.Errorf("watch rules: %w", err)
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}

	go func() {
		defer w.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !wanted[filepath.Clean(ev.Name)] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				logger.Debug("rule file changed", "file", ev.Name, "op", ev.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDelay, reload)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("rule watcher", "error", err)
			}
		}
	}()
	return nil
}
