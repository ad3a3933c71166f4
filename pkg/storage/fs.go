package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strconv"
	"time"
)

// FS serves resources from an fs.FS, such as an embed.FS.
// It is read-only.
type FS struct {
	fsys fs.FS
}

// NewFS returns a store reading from fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Open opens the named file.
func (s *FS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	f, err := s.fsys.Open(cleaned)
	if err != nil {
		return nil, mapFSError(cleaned, err)
	}
	return f, nil
}

// Save always fails with ErrReadOnly.
func (s *FS) Save(context.Context, string, io.Reader) error {
	return ErrReadOnly
}

// Delete always fails with ErrReadOnly.
func (s *FS) Delete(context.Context, string) error {
	return ErrReadOnly
}

// Dir keeps resources as files under a local directory.
// Names cannot reach outside the directory, symlinks included.
type Dir struct {
	root *os.Root
}

// OpenDir opens dir as a store. Close releases the directory handle.
func OpenDir(dir string) (*Dir, error) {
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Dir{root: root}, nil
}

// Open opens the named file.
func (d *Dir) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	f, err := d.root.Open(cleaned)
	if err != nil {
		return nil, mapFSError(cleaned, err)
	}
	return f, nil
}

// Save writes r to the named file. The data is written to a temporary
// file first and renamed into place, so readers never see a partial file.
func (d *Dir) Save(ctx context.Context, name string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}

	if dir := path.Dir(cleaned); dir != "." {
		if err := d.root.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrSaveFailed, err)
		}
	}

	tmp := cleaned + ".tmp" + strconv.FormatInt(time.Now().UnixNano(), 36)
	f, err := d.root.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = d.root.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := f.Close(); err != nil {
		_ = d.root.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if err := d.root.Rename(tmp, cleaned); err != nil {
		_ = d.root.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	return nil
}

// Delete removes the named file.
func (d *Dir) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cleaned, err := cleanName(name)
	if err != nil {
		return err
	}

	if err := d.root.Remove(cleaned); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// Close releases the directory handle.
func (d *Dir) Close() error {
	return d.root.Close()
}

func mapFSError(name string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrAccessDenied, name)
	}
	return err
}

var (
	_ Storage = (*FS)(nil)
	_ Storage = (*Dir)(nil)
)
