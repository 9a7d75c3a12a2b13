// ABOUTME: Persists the rendered playlist next to the images
// ABOUTME: Serializes writers with a file lock and replaces the destination atomically

package playlist

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// outputMode matches what a plain create would produce under the usual umask
const outputMode = 0o644

// lockPath returns the lock file guarding writes to path. It lives in the
// temp dir so the image directory only ever gains the playlist itself.
func lockPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	sum := sha256.Sum256([]byte(abs))

	return filepath.Join(os.TempDir(), "cycle-backgrounds-"+hex.EncodeToString(sum[:8])+".lock")
}

// WriteFile replaces the file at path with data.
// The new content goes to a temp file in the same directory that is then
// renamed over path, so an existing playlist is swapped whole, never merged.
// All failures are returned as *WriteError.
func WriteFile(path string, data []byte) (err error) {
	lock := flock.New(lockPath(path))

	locked, err := lock.TryLock()
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("acquire lock: %w", err)}
	}

	if !locked {
		return &WriteError{Path: path, Err: ErrOutputBusy}
	}

	defer func() {
		_ = lock.Unlock()
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &WriteError{Path: path, Err: err}
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &WriteError{Path: path, Err: err}
	}

	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := os.Chmod(tmpName, outputMode); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// WriteDocument renders doc and writes it to path
func WriteDocument(path string, doc *Background) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}

	return WriteFile(path, data)
}
