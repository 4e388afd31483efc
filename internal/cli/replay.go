package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mrlokans/photoalbum/internal/config"
	"github.com/mrlokans/photoalbum/internal/imagecache"
	"github.com/mrlokans/photoalbum/internal/replay"
)

// ReplayCommand runs a recorded touch script through the gesture components
// and prints the resulting selection and viewer state.
type ReplayCommand struct {
	ScriptPath string
	JSON       bool
	Verbose    bool
	Warm       bool
	Realtime   bool

	gestures config.Gestures
	preload  config.Preload
	service  config.PhotoService
}

// NewReplayCommand creates a new ReplayCommand
func NewReplayCommand() *ReplayCommand {
	return &ReplayCommand{}
}

// ParseFlags parses command line flags
func (cmd *ReplayCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	cmd.gestures = cfg.Gestures
	cmd.preload = cfg.Preload
	cmd.service = cfg.PhotoService

	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	fs.StringVar(&cmd.ScriptPath, "script", "", "Path to a JSON touch script (required)")
	fs.BoolVar(&cmd.JSON, "json", false, "Print the result as JSON")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Log every replayed event")
	fs.BoolVar(&cmd.Warm, "warm", false, "Fetch preloaded images into the image cache")
	fs.BoolVar(&cmd.Realtime, "realtime", false, "Drive the components from a real frame loop at the configured frame interval")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s replay -script <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Replay a recorded touch session against the selection engine,\n")
		fmt.Fprintf(os.Stderr, "auto-scroll and swipe viewer on a simulated frame clock.\n\n")
		fmt.Fprintf(os.Stderr, "Gesture tuning is read from the GESTURE_* environment variables.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ScriptPath == "" {
		return fmt.Errorf("required flag -script not provided")
	}
	return nil
}

// Run executes the replay command
func (cmd *ReplayCommand) Run() error {
	script, err := replay.Load(cmd.ScriptPath)
	if err != nil {
		return err
	}

	opts := replay.Options{
		MoveThreshold:  cmd.gestures.MoveThreshold,
		ScrollBand:     cmd.gestures.ScrollBand,
		ScrollMaxSpeed: cmd.gestures.ScrollMaxSpeed,
		ThresholdRatio: cmd.gestures.SwipeThresholdRatio,
		SettleDuration: cmd.gestures.SettleDuration,
		FrameInterval:  cmd.gestures.FrameInterval,
		PreloadRadius:  cmd.preload.Radius,
		Verbose:        cmd.Verbose,
	}

	newSession := replay.NewSession
	if cmd.Realtime {
		newSession = replay.NewRealtimeSession
	}
	session := newSession(script, opts)
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, runErr := session.RunContext(ctx)

	if cmd.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printReplayResult(result)
	}
	if runErr != nil {
		return runErr
	}

	if cmd.Warm {
		return cmd.warm(result.Preloads)
	}
	return nil
}

func (cmd *ReplayCommand) warm(batches [][]string) error {
	cache, err := imagecache.NewCache(cmd.preload.CacheDir, cmd.service.Timeout)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	warmed, failed := 0, 0
	for _, urls := range batches {
		for _, u := range urls {
			if seen[u] {
				continue
			}
			seen[u] = true
			if err := cache.Warm(context.Background(), u); err != nil {
				fmt.Printf("  [ERROR] %s: %v\n", u, err)
				failed++
				continue
			}
			warmed++
		}
	}
	fmt.Printf("\nWarmed %d images into %s (%d failed)\n", warmed, cache.CacheDir(), failed)
	return nil
}

func printReplayResult(result replay.Result) {
	fmt.Println("=== Replay Result ===")
	fmt.Printf("Selected: %s\n", strings.Join(result.Selected, ", "))
	fmt.Printf("Viewer index: %d (offset %.1fpx)\n", result.Index, result.Offset)
	fmt.Printf("Grid scroll: %.1fpx\n", result.ScrollTop)
	fmt.Printf("Frames: %d\n", result.Frames)
	fmt.Printf("Transform: %s\n", result.Style.Transform)
	for i, urls := range result.Preloads {
		fmt.Printf("Preload %d: %s\n", i+1, strings.Join(urls, " "))
	}
}
