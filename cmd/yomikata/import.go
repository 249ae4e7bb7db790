package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hazyhaar/yomikata/pkg/importer"
	"github.com/hazyhaar/yomikata/pkg/termdb"
)

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	source := fs.String("source", "", "adapter ID to import (e.g. jmdict)")
	from := fs.String("from", "", "URL or local file to read instead of the configured source")
	all := fs.Bool("all", false, "import every source that has a URL")
	fs.Parse(args)

	cfg, logger := setup(*cfgPath)
	store, err := openStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	sources := openSources(cfg.DBPath)
	defer sources.Close()

	if !*all && *source == "" {
		fmt.Println("Available sources:")
		fmt.Println()
		printSources(sources)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  yomikata import -source <id> [-from <url|file>]")
		fmt.Println("  yomikata import -all")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	if *all {
		failed := 0
		for _, a := range importer.All() {
			if a.DefaultURL() == "" {
				if url, _ := sources.GetURL(a.ID()); url == "" {
					continue
				}
			}
			if err := importOne(ctx, a, "", sources, store, logger); err != nil {
				fmt.Fprintf(os.Stderr, "[%s] error: %v\n", a.ID(), err)
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	a, err := importer.Get(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintln(os.Stderr, "\nAvailable sources:")
		for _, a := range importer.All() {
			fmt.Fprintf(os.Stderr, "  %s\n", a.ID())
		}
		os.Exit(1)
	}
	if err := importOne(ctx, a, *from, sources, store, logger); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] error: %v\n", a.ID(), err)
		os.Exit(1)
	}
}

func importOne(ctx context.Context, a importer.Adapter, from string, sources *importer.SourceDB, store *termdb.Store, logger *slog.Logger) error {
	fmt.Printf("[%s] importing...\n", a.ID())
	start := time.Now()
	rep, err := importer.Run(ctx, a, from, sources, store, logger)
	if err != nil {
		return err
	}
	fmt.Printf("[%s] OK -> %s: %s terms in %s\n", a.ID(), rep.Dictionary,
		humanize.Comma(int64(rep.Terms)), time.Since(start).Round(time.Millisecond))
	return nil
}

func openSources(path string) *importer.SourceDB {
	sources, err := importer.OpenSourceDB(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := sources.Seed(importer.All()); err != nil {
		sources.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return sources
}

func cmdSources(args []string) {
	fs := flag.NewFlagSet("sources", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	set := fs.String("set", "", "override a source URL: <id>=<url>")
	check := fs.Bool("check", false, "probe every remote source now")
	fs.Parse(args)

	cfg, logger := setup(*cfgPath)
	if err := ensureDir(cfg.DBPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	sources := openSources(cfg.DBPath)
	defer sources.Close()

	if *set != "" {
		id, url, ok := strings.Cut(*set, "=")
		if !ok {
			fmt.Fprintln(os.Stderr, "error: -set wants <id>=<url>")
			os.Exit(1)
		}
		if err := sources.SetURL(id, url); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[%s] source set to %s\n", id, url)
	}
	if *check {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		importer.NewChecker(sources, logger, cfg.CheckInterval).CheckAll(ctx)
	}
	printSources(sources)
}

func printSources(sources *importer.SourceDB) {
	list, err := sources.ListSources()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	for _, src := range list {
		fmt.Printf("  %-14s %s\n", src.AdapterID, src.Description)
		if src.SourceURL != "" {
			fmt.Printf("  %-14s %s\n", "", src.SourceURL)
		}
		var notes []string
		if src.LastStatus != nil {
			notes = append(notes, fmt.Sprintf("checked %s [%d]", ago(src.LastCheck), *src.LastStatus))
		}
		if src.LastError != nil {
			notes = append(notes, *src.LastError)
		}
		if src.LastImport != nil && src.Dictionary != nil {
			notes = append(notes, fmt.Sprintf("imported %s: %s (%s terms)",
				ago(src.LastImport), *src.Dictionary, humanize.Comma(int64(src.Terms))))
		}
		if len(notes) > 0 {
			fmt.Printf("  %-14s %s\n", "", strings.Join(notes, "; "))
		}
	}
}

func ago(unix *int64) string {
	if unix == nil {
		return "never"
	}
	return humanize.Time(time.Unix(*unix, 0))
}
