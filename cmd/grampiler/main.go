/*
Grampiler analyzes a BNF-style grammar description and reports its LL(1)
and/or LR(1)/LR(0) analyses: nullability, FIRST/FOLLOW/PREDICT sets, LL(1)
ambiguities, and (in LR mode) the canonical item-set automaton and any
shift/reduce or reduce/reduce conflicts it contains.

Usage:

	grampiler [flags]
	grampiler serve [flags]
	grampiler query [flags]

With no subcommand, grampiler runs one analysis pass over an input grammar
file:

	-i, --input PATH
		Grammar source file to analyze. Required.

	-o, --output PATH
		Where to write the analysis report. Defaults to "./output.txt".

	-l, --lang PATH
		Target-language template used to validate the emission surface.
		Defaults to "./langs/rust.json".

	--ll
		Run the LL(1) analyses and report ambiguities.

	--lr
		Build the canonical LR(1) automaton and report conflicts.

	--lr0
		When --lr is given, build an LR(0) automaton instead of LR(1).

	--print-table
		Write the LR state table to stderr as a box table.

	--cache DIR
		Cache compiled LR state tables under DIR, keyed by grammar hash.

	--history PATH
		Record this invocation to a sqlite run ledger at PATH.

	--config PATH
		Project config file. Defaults to "./.grampiler.toml".

Exactly one of --ll or --lr must be given. "grampiler serve" starts an
HTTP analysis service; "grampiler query" opens an interactive FIRST/FOLLOW/
PREDICT/nullability prompt. See each subcommand's own --help for its flags.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/grampiler/internal/automaton"
	"github.com/dekarrin/grampiler/internal/cache"
	"github.com/dekarrin/grampiler/internal/diag"
	"github.com/dekarrin/grampiler/internal/grampilercfg"
	"github.com/dekarrin/grampiler/internal/grammar"
	"github.com/dekarrin/grampiler/internal/gsource"
	"github.com/dekarrin/grampiler/internal/langtmpl"
	"github.com/dekarrin/grampiler/internal/ledger"
	"github.com/dekarrin/grampiler/internal/render"
	"github.com/dekarrin/grampiler/internal/repl"
	"github.com/dekarrin/grampiler/internal/server"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitScanError indicates the grammar source could not be scanned or
	// parsed.
	ExitScanError

	// ExitAnalysisError indicates the grammar failed validation or could
	// not otherwise be analyzed.
	ExitAnalysisError

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue initializing the command (bad flags, unreadable files).
	ExitInitError
)

var returnCode int = ExitSuccess

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "serve":
			runServe(args[1:])
			return
		case "query":
			runQuery(args[1:])
			return
		}
	}
	runAnalyze(args)
}

func fail(code int, format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", fmt.Sprintf(format, a...))
	returnCode = code
}

// runAnalyze is the default (no-subcommand) entry point: one analysis pass
// over an input grammar file.
func runAnalyze(args []string) {
	fs := pflag.NewFlagSet("grampiler", pflag.ContinueOnError)
	input := fs.StringP("input", "i", "", "grammar source file to analyze (required)")
	output := fs.StringP("output", "o", "", "analysis report output path")
	lang := fs.StringP("lang", "l", "", "target-language template path")
	ll := fs.Bool("ll", false, "run the LL(1) analyses")
	lr := fs.Bool("lr", false, "build the LR automaton")
	lr0 := fs.Bool("lr0", false, "build LR(0) rather than LR(1) when --lr is given")
	printTable := fs.Bool("print-table", false, "write the LR state table to stderr")
	cacheDir := fs.String("cache", "", "cache compiled LR state tables under this directory")
	historyPath := fs.String("history", "", "record this invocation to a sqlite run ledger")
	configPath := fs.String("config", ".grampiler.toml", "project config file")
	if err := fs.Parse(args); err != nil {
		fail(ExitInitError, "%s", err)
		return
	}

	cfg, err := grampilercfg.Load(*configPath)
	if err != nil {
		fail(ExitInitError, "%s", err)
		return
	}
	cfg.ApplyDefaults(output, lang, cacheDir, historyPath, ll, lr)
	if *output == "" {
		*output = "./output.txt"
	}
	if *lang == "" {
		*lang = "./langs/rust.json"
	}

	if *input == "" {
		fail(ExitInitError, "-i/--input is required")
		return
	}
	if *ll == *lr {
		fail(ExitInitError, "exactly one of --ll or --lr is required")
		return
	}

	if _, err := langtmpl.Load(*lang); err != nil {
		fail(ExitInitError, "%s", err)
		return
	}

	src, err := os.ReadFile(*input)
	if err != nil {
		fail(ExitInitError, "%s", err)
		return
	}

	g, err := gsource.Parse(string(src))
	if err != nil {
		fail(ExitScanError, "%s", err)
		return
	}
	if err := g.Validate(); err != nil {
		fail(ExitAnalysisError, "%s", err)
		return
	}

	report, err := os.Create(*output)
	if err != nil {
		fail(ExitInitError, "%s", err)
		return
	}
	defer report.Close()
	sink := diag.WriterSink{W: report}

	conflictCount := 0
	mode := "ll"

	if *ll {
		for _, c := range g.Analyze() {
			diag.ReportLLConflict(sink, c)
			conflictCount++
		}
	}

	if *lr {
		mode = "lr1"
		if *lr0 {
			mode = "lr0"
		}
		g.Analyze()

		table, err := buildOrLoadTable(src, g, *lr0, *cacheDir)
		if err != nil {
			fail(ExitAnalysisError, "%s", err)
			return
		}

		for _, c := range automaton.DetectConflicts(table) {
			diag.ReportLRConflict(sink, c)
			conflictCount++
		}
		if *printTable {
			fmt.Fprintln(os.Stderr, render.StateTable(table))
		}
	}

	if *historyPath != "" {
		recordHistory(*historyPath, src, mode, g, conflictCount)
	}
}

// buildOrLoadTable builds the LR automaton for g, transparently consulting
// and populating the cache directory (if non-empty).
func buildOrLoadTable(src []byte, g *grammar.Grammar, isK0 bool, cacheDir string) (*automaton.StateTable, error) {
	if cacheDir == "" {
		return automaton.Build(g, isK0), nil
	}

	store := cache.Store{Dir: cacheDir}
	key := cache.Key(src, isK0)

	if table, ok, err := store.Load(key); err != nil {
		return nil, err
	} else if ok {
		return table, nil
	}

	table := automaton.Build(g, isK0)
	if err := store.Save(key, table); err != nil {
		return nil, err
	}
	return table, nil
}

func recordHistory(path string, src []byte, mode string, g *grammar.Grammar, conflicts int) {
	store, err := ledger.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: could not open history ledger: %s\n", err)
		return
	}
	defer store.Close()

	hash := cache.Key(src, false)
	_, err = store.Record(context.Background(), hash, mode,
		len(g.NonTerminalNames()), len(g.Terminals()), conflicts, returnCode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: could not record history: %s\n", err)
	}
}

// runServe starts the HTTP analysis service.
func runServe(args []string) {
	fs := pflag.NewFlagSet("grampiler serve", pflag.ContinueOnError)
	addr := fs.String("addr", ":8080", "address to listen on")
	jwtSecret := fs.String("jwt-secret", "", "shared secret for bearer-token auth; empty disables auth")
	configPath := fs.String("config", ".grampiler.toml", "project config file")
	if err := fs.Parse(args); err != nil {
		fail(ExitInitError, "%s", err)
		return
	}
	if _, err := grampilercfg.Load(*configPath); err != nil {
		fail(ExitInitError, "%s", err)
		return
	}

	srv := server.New([]byte(*jwtSecret))
	fmt.Fprintf(os.Stderr, "grampiler: serving analysis API on %s\n", *addr)
	if err := srv.ListenAndServe(*addr); err != nil {
		fail(ExitAnalysisError, "%s", err)
	}
}

// runQuery loads a grammar and opens the interactive exploration prompt.
func runQuery(args []string) {
	fs := pflag.NewFlagSet("grampiler query", pflag.ContinueOnError)
	input := fs.StringP("input", "i", "", "grammar source file to load (required)")
	if err := fs.Parse(args); err != nil {
		fail(ExitInitError, "%s", err)
		return
	}
	if *input == "" {
		fail(ExitInitError, "-i/--input is required")
		return
	}

	src, err := os.ReadFile(*input)
	if err != nil {
		fail(ExitInitError, "%s", err)
		return
	}

	g, err := gsource.Parse(string(src))
	if err != nil {
		fail(ExitScanError, "%s", err)
		return
	}
	if err := g.Validate(); err != nil {
		fail(ExitAnalysisError, "%s", err)
		return
	}
	g.Analyze()

	if err := repl.Run(g, os.Stdout); err != nil {
		fail(ExitAnalysisError, "%s", err)
	}
}
