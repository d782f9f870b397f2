// Package filelock provides advisory file locks and atomic writes for the
// generated import scripts, so that two runs targeting the same output
// directory never leave a half-written script behind.
package filelock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// dirLockPrefix names the lock files ForDir keeps in the temp directory.
const dirLockPrefix = "omopscript-"

// FileLock wraps a flock file lock.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a lock backed by the file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// ForDir returns the lock guarding writes into dir. The lock file lives in
// os.TempDir(), keyed by a hash of the absolute directory path, so the output
// directory only ever holds the scripts.
func ForDir(dir string) *FileLock {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}
	sum := sha256.Sum256([]byte(abs))
	name := dirLockPrefix + hex.EncodeToString(sum[:8]) + ".lock"
	return NewFileLock(filepath.Join(os.TempDir(), name))
}

// Path returns the lock file path.
func (fl *FileLock) Path() string {
	return fl.path
}

// Lock blocks until the exclusive lock is held.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// tryLock acquires the lock without blocking. It reports false when another
// holder has it.
func (fl *FileLock) tryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Unlock releases the lock. The lock file is left in place: removing it
// would let a waiter holding the old inode run alongside a new holder.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicWrite writes data to path through a temp file in the same directory
// followed by a rename, so readers see either the old or the new content.
// The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	committed := false
	defer func() {
		if !committed {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	committed = true
	return nil
}

// Output is one named file to be written by WriteAll.
type Output struct {
	Name string
	Data []byte
}

// WriteAll writes outputs into dir in order while holding the directory lock.
// Each file is written atomically; the set is not. If a write fails, files
// written before it are kept and the error names the failing file.
func WriteAll(dir string, outputs ...Output) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	lock := ForDir(dir)
	if err := lock.Lock(); err != nil {
		return nil, err
	}
	defer lock.Unlock()

	written := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(dir, out.Name)
		if err := AtomicWrite(path, out.Data); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", out.Name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
