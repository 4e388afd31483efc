// Command generate_demo creates a demo catalog with sample albums and a
// matching replay script.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db] [-script path/to/demo.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/photoalbum/internal/catalog"
	"github.com/mrlokans/photoalbum/internal/entities"
	"github.com/mrlokans/photoalbum/internal/replay"
)

const (
	defaultDemoDatabasePath = "./demo/demo.db"
	defaultDemoScriptPath   = "./demo/demo_replay.json"
	demoOrigin              = "http://localhost:5000"
)

type demoAlbum struct {
	ID     string
	Prefix string
	Count  int
	Tags   []string
	Start  time.Time
}

func getDemoAlbums() []demoAlbum {
	return []demoAlbum{
		{ID: "demo-summer", Prefix: "beach", Count: 24, Tags: []string{"summer", "sea"}, Start: time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "demo-mountains", Prefix: "ridge", Count: 12, Tags: []string{"hiking"}, Start: time.Date(2024, time.September, 14, 6, 30, 0, 0, time.UTC)},
		{ID: "demo-empty", Prefix: "none", Count: 0, Start: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	scriptPath := flag.String("script", defaultDemoScriptPath, "path to the demo replay script")
	flag.Parse()

	log.Printf("Generating demo catalog at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := catalog.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	for _, album := range getDemoAlbums() {
		list := demoPhotos(album)
		if err := db.ReplaceAlbumPhotos(album.ID, list); err != nil {
			log.Printf("Failed to save album %s: %v", album.ID, err)
			continue
		}
		log.Printf("Saved: %s (%d photos)", album.ID, len(list))
	}

	script, err := demoScript(db)
	if err != nil {
		log.Fatalf("Failed to build replay script: %v", err)
	}
	if err := writeScript(*scriptPath, script); err != nil {
		log.Fatalf("Failed to write replay script: %v", err)
	}
	log.Printf("Saved replay script to %s", *scriptPath)

	log.Println("Demo catalog generated successfully!")
}

func demoPhotos(album demoAlbum) []entities.Photo {
	list := make([]entities.Photo, album.Count)
	for i := range list {
		taken := album.Start.Add(time.Duration(i) * 37 * time.Minute)
		uploaded := taken.Add(48 * time.Hour)
		name := fmt.Sprintf("%s_%03d.jpg", album.Prefix, i+1)
		list[i] = entities.Photo{
			ID:            fmt.Sprintf("%s-%03d", album.ID, i+1),
			Filename:      name,
			Path:          "/uploads/" + album.ID + "/" + name,
			ThumbnailPath: "/uploads/" + album.ID + "/thumbs/" + name,
			Tags:          album.Tags,
			TakenAt:       &taken,
			UploadedAt:    uploaded,
		}
	}
	return list
}

// demoScript selects a row of the summer album, drags it near the bottom
// edge to auto-scroll, then swipes the viewer forward twice.
func demoScript(db *catalog.Database) (*replay.Script, error) {
	seq, err := db.Sequence("demo-summer", entities.SortByTakenAt, entities.SortAsc)
	if err != nil {
		return nil, err
	}

	script := &replay.Script{
		Origin:    demoOrigin,
		Grid:      replay.Grid{Columns: 4, CellWidth: 100, CellHeight: 100, Top: 120},
		Viewport:  replay.Viewport{Width: 400, Height: 700},
		BatchMode: true,
		Events: []replay.Event{
			{Target: replay.TargetGrid, Type: replay.EventStart, X: 50, Y: 170},
			{Target: replay.TargetGrid, Type: replay.EventMove, X: 150, Y: 172},
			{Target: replay.TargetGrid, Type: replay.EventMove, X: 350, Y: 175},
			{Target: replay.TargetGrid, Type: replay.EventEnd},

			{Target: replay.TargetGrid, Type: replay.EventStart, X: 50, Y: 370},
			{Target: replay.TargetGrid, Type: replay.EventMove, X: 55, Y: 650},
			{Type: replay.EventFrames, Count: 20},
			{Target: replay.TargetGrid, Type: replay.EventEnd},

			{Target: replay.TargetViewer, Type: replay.EventStart, X: 300},
			{Target: replay.TargetViewer, Type: replay.EventMove, X: 200},
			{Type: replay.EventFrames, Count: 1},
			{Target: replay.TargetViewer, Type: replay.EventEnd},
			{Type: replay.EventIdle},
			{Type: replay.EventNext},
		},
	}
	for _, p := range seq {
		script.Photos = append(script.Photos, replay.PhotoRef{ID: p.ID, Path: p.Path})
	}
	return script, script.Validate()
}

func writeScript(path string, script *replay.Script) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(script, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
