package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hazyhaar/yomikata/pkg/textproc"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8421" || cfg.MaxScanLength != 16 || cfg.CheckInterval != 24*time.Hour {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `addr: ":9000"
log_level: debug
max_scan_length: 8
check_interval: 6h
processors: [convert-half-width-characters]
pipeline:
  - processor: convert-hiragana-to-katakana
    option: direct
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9000" || cfg.MaxScanLength != 8 || cfg.CheckInterval != 6*time.Hour {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MaxVariants != 32 {
		t.Errorf("unset field lost its default: %d", cfg.MaxVariants)
	}
	want := textproc.StageConfig{Processor: "convert-hiragana-to-katakana", Option: "direct"}
	if len(cfg.Pipeline) != 1 || cfg.Pipeline[0] != want {
		t.Errorf("pipeline = %+v", cfg.Pipeline)
	}
	procs, err := cfg.processors()
	if err != nil || len(procs) != 1 {
		t.Errorf("processors = %v, %v", procs, err)
	}

	cfg.Processors = []string{"nope"}
	if _, err := cfg.processors(); err == nil {
		t.Error("unknown processor accepted")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("addr: [unclosed"), 0o644)
	if _, err := loadConfig(path); err == nil {
		t.Error("expected parse error")
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("expected log level error")
	}
	if _, err := newLogger("warn"); err != nil {
		t.Error(err)
	}
}

func TestStageFlags(t *testing.T) {
	var s stageFlags
	for _, v := range []string{"convert-half-width-characters=true", "convert-hiragana-to-katakana=inverse"} {
		if err := s.Set(v); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.String(); got != "convert-half-width-characters=true,convert-hiragana-to-katakana=inverse" {
		t.Errorf("String() = %s", got)
	}
	for _, bad := range []string{"noequals", "=true"} {
		if err := s.Set(bad); err == nil {
			t.Errorf("Set(%q) accepted", bad)
		}
	}
}

func TestWatchRulesReloads(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(rules, []byte("language: ja\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := watchRules(ctx, []string{rules}, logger, func() { reloads.Add(1) }); err != nil {
		t.Fatal(err)
	}

	// Unrelated files in the same directory are ignored.
	os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644)
	os.WriteFile(rules, []byte("language: ja\ntransforms: []\n"), 0o644)

	deadline := time.Now().Add(5 * time.Second)
	for reloads.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if reloads.Load() != 1 {
		t.Errorf("reloads = %d, want 1", reloads.Load())
	}
}

func TestNewServiceWithRuleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	os.WriteFile(path, []byte("language: ja\n"), 0o644)
	cfg := defaultConfig()
	cfg.RuleFiles = []string{path}
	svc, err := newService(cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if len(svc.Deinflect("食べた")) < 2 {
		t.Error("built-in rules missing")
	}

	cfg.RuleFiles = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	if _, err := newService(cfg, nil, nil); err == nil {
		t.Error("missing rule file accepted")
	}
}

func TestParseToolArgs(t *testing.T) {
	got, err := parseToolArgs([]string{"word=食べた", "conditions=-ta,v1"})
	if err != nil {
		t.Fatal(err)
	}
	if got["word"] != "食べた" || got["conditions"] != "-ta,v1" {
		t.Errorf("args = %v", got)
	}
	if _, err := parseToolArgs([]string{"oops"}); err == nil {
		t.Error("expected error")
	}
}
