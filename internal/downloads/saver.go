package downloads

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/photoalbum/internal/api"
	"github.com/mrlokans/photoalbum/internal/utils"
)

// DirSaver saves downloads into a directory without overwriting existing files.
type DirSaver struct {
	dir string
}

// NewDirSaver creates the directory if needed.
func NewDirSaver(dir string) (*DirSaver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	return &DirSaver{dir: dir}, nil
}

// Save implements Saver. The data is written to a temp file first and
// renamed into place.
func (s *DirSaver) Save(filename string, data []byte) (string, error) {
	name := utils.SanitizeFilename(filename, api.DefaultFilename)
	name, err := utils.UniqueFilename(s.dir, name)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, name)

	tmpFile, err := os.CreateTemp(s.dir, ".download_tmp_")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return "", err
	}
	return target, nil
}

// Dir returns the download directory.
func (s *DirSaver) Dir() string {
	return s.dir
}
