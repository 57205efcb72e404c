// Command i18nscan extracts translation keys from a TypeScript/JavaScript
// source tree and reconciles them into i18next-style JSON catalogs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/i18nscan/i18nscan/pkg/config"
	"github.com/i18nscan/i18nscan/pkg/engine"
	"github.com/i18nscan/i18nscan/pkg/mcpserve"
	"github.com/i18nscan/i18nscan/pkg/plugin"
	"github.com/i18nscan/i18nscan/pkg/util"
	"github.com/i18nscan/i18nscan/pkg/watch"
)

const version = "0.1.0-dev"

const defaultConfigPath = "i18nscan.config.yaml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "extract":
		runExtract(os.Args[2:])
	case "watch":
		runWatch(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "doctor":
		runDoctor(os.Args[2:])
	case "version":
		fmt.Printf("i18nscan %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`usage: i18nscan <command> [flags]

commands:
  extract [--config path] [--dry-run] [--ci]   extract and reconcile keys once
  watch   [--config path]                      rerun extraction on file changes
  serve   [--config path]                      serve key coverage over MCP (stdio)
  doctor  [--config path]                      validate configuration and exit
  version                                      print the version
  help                                          print this message`)
}

func loadConfig(args []string) *config.Config {
	configPath := defaultConfigPath
	for i, a := range args {
		if a == "--config" && i+1 < len(args) {
			configPath = args[i+1]
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %q: %v\n", configPath, err)
		os.Exit(1)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func hasFlag(args []string, name string) bool {
	for _, a := range args {
		if a == name {
			return true
		}
	}
	return false
}

func runExtract(args []string) {
	cfg := loadConfig(args)
	logger := newLogger()

	driver := engine.New(cfg, logger, plugin.NewRegistry(nil, logger))
	defer driver.Close()
	driver.DryRun = hasFlag(args, "--dry-run")

	report, err := driver.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "extraction failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("scanned %d files, found %d keys\n", report.FilesScanned, report.KeysFound)
	for _, fe := range report.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", fe)
	}
	for _, r := range report.Results {
		if r.Updated {
			fmt.Printf("updated %s/%s\n", r.Locale, r.Namespace)
		}
	}

	if hasFlag(args, "--ci") && report.AnyUpdated {
		fmt.Fprintln(os.Stderr, "catalogs are out of date (ci mode)")
		os.Exit(1)
	}
}

func runWatch(args []string) {
	cfg := loadConfig(args)
	logger := newLogger()

	driver := engine.New(cfg, logger, plugin.NewRegistry(nil, logger))
	defer driver.Close()

	w, err := watch.New(driver, ".", watch.DefaultOptions(), logger, func(report engine.Report, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "rerun failed: %v\n", err)
			return
		}
		fmt.Printf("rerun: %d files, %d keys\n", report.FilesScanned, report.KeysFound)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start watcher: %v\n", err)
		os.Exit(1)
	}
	defer w.Stop()

	w.Start(context.Background())
	fmt.Println("watching for changes, press Ctrl+C to stop")
	select {}
}

func runServe(args []string) {
	cfg := loadConfig(args)
	logger := newLogger()

	driver := engine.New(cfg, logger, plugin.NewRegistry(nil, logger))
	defer driver.Close()
	driver.DryRun = true

	report, err := driver.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "extraction failed: %v\n", err)
		os.Exit(1)
	}

	catalog := mcpserve.NewCatalog(report.Results)
	srv := mcpserve.NewServer(catalog)
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func runDoctor(args []string) {
	cfg := loadConfig(args)
	fmt.Printf("config OK: %d locale(s), primary=%s, input=%s, output=%s\n",
		len(cfg.Locales), cfg.Extract.PrimaryLanguage,
		strings.Join(cfg.Extract.Input, ", "), cfg.Extract.Output)

	for _, pattern := range cfg.Extract.Input {
		if _, err := filepath.Match(pattern, ""); err != nil {
			fmt.Fprintf(os.Stderr, "invalid input pattern %q: %v\n", pattern, err)
			os.Exit(1)
		}
	}
}

func newLogger() *slog.Logger {
	return util.NewLogger(util.DefaultLoggerConfig())
}
