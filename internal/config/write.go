package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"
)

// DefaultLockTimeout bounds how long Set waits for another writer.
const DefaultLockTimeout = 5 * time.Second

// ErrConfigLocked is returned when another writer holds the config file
// for longer than the lock timeout.
var ErrConfigLocked = errors.New("config file is locked by another writer")

// Set writes value at the dotted key path of the JSONC file at path,
// creating the file and its directory if needed. Comments in an existing
// file are not preserved.
func Set(path, key string, value any) error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultLockTimeout)
	defer cancel()

	return editConfig(ctx, path, func(doc []byte) ([]byte, error) {
		updated, err := sjson.SetBytes(doc, key, value)
		if err != nil {
			return nil, fmt.Errorf("setting key %q: %w", key, err)
		}
		return updated, nil
	})
}

// editConfig rewrites the config at path under path.lock. edit receives
// the current document as plain JSON ("{}" when the file does not exist)
// and returns the replacement. The file is replaced by rename so readers
// never observe a partial write, and it is left alone when edit fails.
func editConfig(ctx context.Context, path string, edit func(doc []byte) ([]byte, error)) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLockContext(ctx, 50*time.Millisecond)
	if !locked {
		if err == nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: %s", ErrConfigLocked, path)
		}
		return fmt.Errorf("locking %s: %w", path, err)
	}
	defer lock.Unlock()

	doc := []byte("{}")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		doc = jsonc.ToJSON(data)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("reading config: %w", err)
	}

	updated, err := edit(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(updated); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
