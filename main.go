package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/photoalbum/internal/cli"
	"github.com/mrlokans/photoalbum/internal/config"
	"github.com/mrlokans/photoalbum/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "sync":
		cmd = cli.NewSyncCommand()
	case "list":
		cmd = cli.NewListCommand()
	case "download":
		cmd = cli.NewDownloadCommand()
	case "replay":
		cmd = cli.NewReplayCommand()
	case "version":
		fmt.Printf("photoalbum %s (%s)\n", Version, Commit)
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
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve      Start the companion HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  sync       Mirror album listings from the photo service into the catalog\n")
	fmt.Fprintf(os.Stderr, "  list       Print a mirrored album in display order\n")
	fmt.Fprintf(os.Stderr, "  download   Download one photo, or several as an archive\n")
	fmt.Fprintf(os.Stderr, "  replay     Replay a recorded touch session against the gesture engine\n")
	fmt.Fprintf(os.Stderr, "  version    Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
