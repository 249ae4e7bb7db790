package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hazyhaar/yomikata/pkg/lookup"
	"github.com/hazyhaar/yomikata/pkg/textproc"
)

func cmdDeinflect(args []string) {
	fs := flag.NewFlagSet("deinflect", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	conds := fs.String("conditions", "", "comma-separated conditions the words must have (e.g. -ta)")
	trace := fs.Bool("trace", false, "print the text before each rule application")
	all := fs.Bool("all", false, "include results that are not dictionary forms")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: yomikata deinflect [-conditions c1,c2] [-trace] [-all] <word>...")
		os.Exit(1)
	}
	cfg, logger := setup(*cfgPath)
	svc, err := newService(cfg, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	table := svc.Table()
	ct := table.Conditions()
	constraint, err := ct.Flags(splitList(*conds))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	for _, word := range fs.Args() {
		results := table.DeinflectWith(word, constraint)
		shown := 0
		for _, r := range results {
			if !*all && !table.IsDictionaryForm(r) {
				continue
			}
			shown++
			reasons := "(none)"
			if len(r.Reasons) > 0 {
				reasons = strings.Join(r.Reasons, " < ")
			}
			fmt.Printf("%s\t%s\t[%s]\n", r.Term, reasons, ct.Format(r.Conditions))
			if *trace {
				for _, f := range r.Trace {
					fmt.Printf("\t\t%s  %s#%d\n", f.Text, f.Transform, f.Rule)
				}
			}
		}
		fmt.Fprintf(os.Stderr, "%s: %s of %s candidates shown\n", word,
			humanize.Comma(int64(shown)), humanize.Comma(int64(len(results))))
	}
}

// stageFlags collects repeated -stage processor=option flags.
type stageFlags []textproc.StageConfig

func (s *stageFlags) String() string {
	parts := make([]string, len(*s))
	for i, c := range *s {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

func (s *stageFlags) Set(v string) error {
	proc, opt, ok := strings.Cut(v, "=")
	if !ok || proc == "" {
		return fmt.Errorf("stage %q: want processor=option", v)
	}
	*s = append(*s, textproc.StageConfig{Processor: proc, Option: opt})
	return nil
}

func cmdProcess(args []string) {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	var stages stageFlags
	fs.Var(&stages, "stage", "processor=option, repeatable; defaults to the configured pipeline")
	variants := fs.Bool("variants", false, "list every variant the lookup processors produce")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: yomikata process [-stage processor=option]... [-variants] <text>...")
		os.Exit(1)
	}
	cfg, logger := setup(*cfgPath)
	svc, err := newService(cfg, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(stages) == 0 {
		stages = cfg.Pipeline
	}

	for _, text := range fs.Args() {
		if *variants || len(stages) == 0 {
			for _, v := range svc.Variants(text) {
				fmt.Printf("%s\t%s\n", v.Text, (*stageFlags)(&v.Steps).String())
			}
			continue
		}
		out, err := svc.Process(text, stages)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
	}
}

func cmdProcessors(args []string) {
	fs := flag.NewFlagSet("processors", flag.ExitOnError)
	latin := fs.Bool("latin", false, "include the Latin-script processors")
	fs.Parse(args)

	descs := textproc.Japanese()
	if *latin {
		descs = textproc.All()
	}
	for _, d := range descs {
		info := d.Info()
		fmt.Printf("%-36s %s\n", info.ID, strings.Join(info.Options, "|"))
		fmt.Printf("%-36s %s\n", "", info.Description)
	}
}

func cmdLookup(args []string) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	scan := fs.Bool("scan", false, "find every word in the text instead of only the first")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: yomikata lookup [-scan] <text>...")
		os.Exit(1)
	}
	cfg, logger := setup(*cfgPath)
	store, err := openStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	svc, err := newService(cfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for _, text := range fs.Args() {
		var matches []lookup.Match
		if *scan {
			matches, err = svc.Scan(ctx, text)
		} else {
			var m lookup.Match
			var ok bool
			m, ok, err = svc.Lookup(ctx, text)
			if ok {
				matches = append(matches, m)
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if len(matches) == 0 {
			fmt.Printf("%s: no match\n", text)
			continue
		}
		for _, m := range matches {
			printMatch(m)
		}
	}
}

func printMatch(m lookup.Match) {
	fmt.Printf("%s [%d:%d]\n", m.Text, m.Start, m.End)
	for _, e := range m.Entries {
		head := e.Term.Expression
		if e.Term.Reading != "" && e.Term.Reading != head {
			head += " 【" + e.Term.Reading + "】"
		}
		fmt.Printf("  %s", head)
		if len(e.Deinflection.Reasons) > 0 {
			fmt.Printf("  « %s", strings.Join(e.Deinflection.Reasons, " < "))
		}
		fmt.Printf("  (%s)\n", e.Term.Dictionary)
		for i, g := range e.Term.Glossary {
			fmt.Printf("    %d. %s\n", i+1, g)
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
