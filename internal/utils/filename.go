package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// maxFilenameLength leaves room under the common 255-byte limit for a
// " (n)" de-duplication suffix.
const maxFilenameLength = 200

// SanitizeFilename makes a server-suggested filename safe to write locally.
// Path separators and reserved characters are dropped, whitespace is
// collapsed, and overlong names are shortened while keeping the extension.
// An empty result becomes fallback.
func SanitizeFilename(filename, fallback string) string {
	// Keep only the last path element so "../../x.jpg" cannot escape the target dir
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if filename == "." || filename == "/" {
		filename = ""
	}

	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)
	filename = strings.TrimLeft(filename, ".")

	if len(filename) > maxFilenameLength {
		ext := filepath.Ext(filename)
		if len(ext) > 16 {
			ext = ""
		}
		stem := strings.TrimSpace(truncateUTF8(strings.TrimSuffix(filename, ext), maxFilenameLength-len(ext)))
		filename = stem + ext
	}

	if filename == "" {
		filename = fallback
	}
	return filename
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// UniqueFilename returns name, or "stem (n).ext" for the smallest n that
// does not exist yet in dir.
func UniqueFilename(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for n := 1; n < 10000; n++ {
		_, err := os.Stat(filepath.Join(dir, candidate))
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
	return "", fmt.Errorf("no free filename for %s in %s", name, dir)
}
