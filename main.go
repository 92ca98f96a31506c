package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/gobiblia/internal/cli"
	"github.com/mrlokans/gobiblia/internal/config"
	"github.com/mrlokans/gobiblia/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every CLI subcommand.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	cfg := config.NewConfig()

	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "record":
		cmd = cli.NewRecordCommand(cfg.Database.Path, cfg.Scripture.DefaultVersion)
	case "history":
		cmd = cli.NewHistoryCommand(cfg.Database.Path)
	case "stats":
		cmd = cli.NewStatsCommand(cfg.Database.Path)
	case "read":
		cmd = cli.NewReadCommand(cfg.Scripture.ClientOptions())
	case "search":
		cmd = cli.NewSearchCommand(cfg.Scripture.ClientOptions())
	case "version":
		fmt.Printf("gobiblia %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve     Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  read      Print a chapter, a verse or a random verse\n")
	fmt.Fprintf(os.Stderr, "  search    Search verses for a word\n")
	fmt.Fprintf(os.Stderr, "  record    Record a chapter as read today\n")
	fmt.Fprintf(os.Stderr, "  history   List recorded readings\n")
	fmt.Fprintf(os.Stderr, "  stats     Show reading statistics\n")
	fmt.Fprintf(os.Stderr, "  version   Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
