package photos

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Local stores photos in a directory served as web root.
//
// A photo saved as "a.png" with prefix "/doctors" is placed at <root>/doctors/a.png
// and its public path is "/doctors/a.png".
type Local struct {
	root   string
	prefix string
}

var _ Store = &Local{}

// NewLocal creates Local store.
//
// # Args
//
// - root: directory served as web root.
//
// - prefix: URL path where photos are published.
func NewLocal(root string, prefix string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	prefix = "/" + strings.Trim(path.Clean("/"+prefix), "/")

	l := &Local{root: abs, prefix: prefix}
	if err := os.MkdirAll(l.Dir(), 0o755); err != nil {
		return nil, err
	}
	return l, nil
}

// Dir is the directory where photos are stored.
func (l *Local) Dir() string {
	return filepath.Join(l.root, filepath.FromSlash(l.prefix))
}

// URLPrefix is the URL path where photos are published.
func (l *Local) URLPrefix() string {
	return l.prefix
}

func (l *Local) Save(ctx context.Context, name string, _ string, r io.Reader) (string, error) {
	name = filepath.Base(name)
	f, err := os.OpenFile(filepath.Join(l.Dir(), name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return path.Join(l.prefix, name), nil
}

// resolve returns file path of the public path, which should be in Dir.
func (l *Local) resolve(publicPath string) (string, error) {
	full := filepath.Join(l.root, filepath.FromSlash(publicPath))
	rel, err := filepath.Rel(l.Dir(), full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrForbidden
	}
	return full, nil
}

// Delete removes the photo. Only regular files in Dir can be removed.
func (l *Local) Delete(ctx context.Context, publicPath string) error {
	full, err := l.resolve(publicPath)
	if err != nil {
		return err
	}
	info, err := os.Lstat(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrMissing
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return ErrForbidden
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrMissing
		}
		return err
	}
	return nil
}
