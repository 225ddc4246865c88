// Package main is the entry point for the ideavim terminal editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	app, err := NewApp(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer app.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		app.Shutdown()
	}()

	if err := app.Run(); err != nil {
		if errors.Is(err, ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Options carries the parsed command-line configuration.
type Options struct {
	RCPath   string
	ReadOnly bool
	Files    []string
}

func parseFlags() Options {
	var opts Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.RCPath, "rc", "", "Path to the rc file")
	flag.StringVar(&opts.RCPath, "c", "", "Path to the rc file (shorthand)")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Open files in read-only mode")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Open files in read-only mode (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ideavim - modal terminal editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ideavim [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ideavim                     Open with empty buffer\n")
		fmt.Fprintf(os.Stderr, "  ideavim file.go             Open a file\n")
		fmt.Fprintf(os.Stderr, "  ideavim -R file.go          Open file read-only\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ideavim %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.RCPath == "" {
		opts.RCPath = defaultRCPath()
	}
	opts.Files = flag.Args()
	return opts
}

// defaultRCPath is ~/.ideavimrc.toml, or empty when no home directory
// is available.
func defaultRCPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ideavimrc.toml")
}
