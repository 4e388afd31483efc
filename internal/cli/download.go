package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mrlokans/photoalbum/internal/api"
	"github.com/mrlokans/photoalbum/internal/config"
	"github.com/mrlokans/photoalbum/internal/downloads"
)

// DownloadCommand saves one photo, or a selection of photos as a single
// archive, from the photo service.
type DownloadCommand struct {
	Origin    string
	OutputDir string
	PhotoIDs  []string
	Timeout   time.Duration
}

// NewDownloadCommand creates a new DownloadCommand
func NewDownloadCommand() *DownloadCommand {
	return &DownloadCommand{}
}

// ParseFlags parses command line flags. Photo IDs are positional.
func (cmd *DownloadCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	fs.StringVar(&cmd.Origin, "origin", cfg.PhotoService.Origin, "Base URL of the photo service")
	fs.StringVar(&cmd.OutputDir, "output", cfg.Downloads.Dir, "Directory downloaded files are saved to")
	fs.DurationVar(&cmd.Timeout, "timeout", cfg.PhotoService.Timeout, "Request timeout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s download [options] <photo-id> [photo-id...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Download photos from the photo service.\n\n")
		fmt.Fprintf(os.Stderr, "A single ID saves that photo under the name the service suggests.\n")
		fmt.Fprintf(os.Stderr, "Several IDs are downloaded together as one archive.\n")
		fmt.Fprintf(os.Stderr, "Existing files are never overwritten.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s download 65f0c1e2a9\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s download -output ~/Pictures 65f0c1e2a9 65f0c1e2b3\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.PhotoIDs = fs.Args()
	if len(cmd.PhotoIDs) == 0 {
		return fmt.Errorf("at least one photo ID is required")
	}
	return nil
}

// Run executes the download command
func (cmd *DownloadCommand) Run() error {
	saver, err := downloads.NewDirSaver(cmd.OutputDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := api.NewClient(cmd.Origin, cmd.Timeout)
	service := downloads.NewService(client, saver, downloads.LogNotifier{})

	var path string
	if len(cmd.PhotoIDs) == 1 {
		path, err = service.Download(ctx, cmd.PhotoIDs[0])
	} else {
		path, err = service.DownloadSelection(ctx, cmd.PhotoIDs)
	}
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Println(path)
	return nil
}
