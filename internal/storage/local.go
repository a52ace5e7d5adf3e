package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local writes images under BaseDir; the web server serves them at URLPrefix.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := ctx.Err(); err != nil {
		return PutResult{}, err
	}
	ext, contentType, err := imageType(in.Filename)
	if err != nil {
		return PutResult{}, err
	}

	key := objectKey(in.ProductHandle, ext)
	dst := l.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return PutResult{}, fmt.Errorf("storage: %w", err)
	}
	if err := writeFile(dst, r); err != nil {
		return PutResult{}, fmt.Errorf("storage: write %s: %w", key, err)
	}

	return PutResult{
		Key:         key,
		URL:         strings.TrimRight(l.URLPrefix, "/") + "/" + key,
		ContentType: contentType,
	}, nil
}

// writeFile leaves nothing behind when the copy fails.
func writeFile(dst string, r io.Reader) error {
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
	}
	return err
}

func (l *Local) Delete(ctx context.Context, key string) error {
	err := os.Remove(l.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (l *Local) path(key string) string {
	return filepath.Join(l.BaseDir, filepath.FromSlash(cleanKey(key)))
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
