package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/config"
)

// ListCommand prints a mirrored album in display order.
type ListCommand struct {
	DatabasePath string
	AlbumID      string
	SortKey      string
	SortOrder    string
}

// NewListCommand creates a new ListCommand
func NewListCommand() *ListCommand {
	return &ListCommand{}
}

// ParseFlags parses command line flags
func (cmd *ListCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("list", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the local catalog database")
	fs.StringVar(&cmd.AlbumID, "album", "", "Album ID (required)")
	fs.StringVar(&cmd.SortKey, "sort", string(catalog.DefaultSortKey), "Sort key: filename, takenAt, modifiedAt, uploadedAt or custom")
	fs.StringVar(&cmd.SortOrder, "order", string(catalog.DefaultSortOrder), "Sort order: asc or desc")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list -album <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print an album from the local catalog. Run 'sync' first to mirror it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.AlbumID == "" {
		return fmt.Errorf("required flag -album not provided")
	}
	if _, _, err := catalog.ParseSort(cmd.SortKey, cmd.SortOrder); err != nil {
		return err
	}
	return nil
}

// Run executes the list command
func (cmd *ListCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := catalog.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}
	defer db.Close()

	key, order, err := catalog.ParseSort(cmd.SortKey, cmd.SortOrder)
	if err != nil {
		return err
	}

	list, err := db.Photos(cmd.AlbumID, key, order)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("Album is empty")
		return nil
	}

	for i, p := range list {
		fmt.Printf("%3d. %s  %s  %s\n", i+1, p.ID, p.UploadedAt.Format("2006-01-02 15:04"), p.Filename)
	}
	return nil
}
