package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/photoalbum/internal/api"
	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/config"
	"github.com/mrlokans/photoalbum/internal/services"
)

// SyncCommand mirrors album listings from the photo service into the local catalog.
type SyncCommand struct {
	Origin       string
	DatabasePath string
	AlbumIDs     []string
	Timeout      time.Duration
	Verbose      bool
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand() *SyncCommand {
	return &SyncCommand{}
}

// ParseFlags parses command line flags
func (cmd *SyncCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	var albums string
	fs.StringVar(&cmd.Origin, "origin", cfg.PhotoService.Origin, "Base URL of the photo service")
	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the local catalog database")
	fs.StringVar(&albums, "albums", strings.Join(cfg.Sync.AlbumIDs, ","), "Comma separated album IDs to mirror")
	fs.DurationVar(&cmd.Timeout, "timeout", cfg.PhotoService.Timeout, "Per-request timeout")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every album as it is synced")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s sync -albums <id,id,...> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Mirror album listings from the photo service into the local catalog.\n")
		fmt.Fprintf(os.Stderr, "Photos no longer listed by the service are removed from the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s sync -albums 65f0c1e2a9,65f0c1e2b3\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  ALBUM_SYNC_ALBUMS=65f0c1e2a9 %s sync -origin http://nas.local:5000\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.AlbumIDs = splitIDs(albums)
	if len(cmd.AlbumIDs) == 0 {
		return fmt.Errorf("no albums given: use -albums or ALBUM_SYNC_ALBUMS")
	}
	return nil
}

// Run executes the sync command
func (cmd *SyncCommand) Run() error {
	fmt.Println("Album Sync")
	fmt.Println("==========")

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	fmt.Printf("Photo service: %s\n", cmd.Origin)
	fmt.Printf("Catalog: %s\n", absDBPath)

	db, err := catalog.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := api.NewClient(cmd.Origin, cmd.Timeout)
	syncService := services.NewAlbumSyncService(client, db)

	result, err := syncService.SyncAlbums(ctx, cmd.AlbumIDs)
	if cmd.Verbose {
		fmt.Println("\n=== Albums ===")
		for _, id := range cmd.AlbumIDs {
			album, lookupErr := db.GetAlbum(id)
			if lookupErr != nil {
				fmt.Printf("  %s: not in catalog\n", id)
				continue
			}
			fmt.Printf("  %s: %d photos, synced %s\n", id, album.PhotoCount, album.SyncedAt.Format(time.RFC3339))
		}
	}
	printSyncResult(result)
	return err
}

func printSyncResult(result services.SyncResult) {
	fmt.Println("\n=== Sync Summary ===")
	fmt.Printf("Albums synced: %d/%d\n", result.AlbumsProcessed-result.AlbumsFailed, result.AlbumsProcessed)
	fmt.Printf("Photos stored: %d\n", result.PhotosStored)

	if len(result.Errors) > 0 {
		fmt.Printf("\n%d errors occurred:\n", len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Printf("  [ERROR] %s\n", msg)
		}
	}
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
