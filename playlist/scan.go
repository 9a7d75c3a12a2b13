// ABOUTME: Directory scanning for background images
// ABOUTME: Lists a single directory and keeps entries matching the case-sensitive image patterns

package playlist

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImagePatterns are the glob patterns an entry name must match to be used.
// Matching is case-sensitive: "photo.JPG" is not picked up.
var ImagePatterns = []string{"*.jpg", "*.gif", "*.png"}

// ImageList is the ordered list of image paths making up the slideshow
type ImageList []string

// IsImageName reports whether a file name matches one of ImagePatterns
func IsImageName(name string) bool {
	for _, pattern := range ImagePatterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}

	return false
}

// CheckDirectory verifies that dir exists and is a directory
func CheckDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, dir)
	}

	return nil
}

// Scan lists the images directly inside dir (no recursion).
// Paths are dir joined with the entry name, in the order os.ReadDir returns them.
// Returns ErrEmptyDirectory when nothing matches.
func Scan(dir string) (ImageList, error) {
	if err := CheckDirectory(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}

	images := make(ImageList, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !IsImageName(entry.Name()) {
			continue
		}

		images = append(images, filepath.Join(dir, entry.Name()))
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDirectory, dir)
	}

	return images, nil
}
