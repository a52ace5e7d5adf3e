// Package storage keeps product images on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeOwino/hydrogen/internal/config"
	"github.com/MikeOwino/hydrogen/internal/shared/slug"
)

// ImageCacheControl is sent with every stored image. Keys are never reused,
// so an image at a given URL never changes.
const ImageCacheControl = "public, max-age=31536000, immutable"

var ErrUnsupportedImage = errors.New("storage: unsupported image type")

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// PutInput describes an image upload. ProductHandle groups the object
// under the product it belongs to; it may be empty.
type PutInput struct {
	Filename      string
	ProductHandle string
	Size          int64
}

// PutResult names the stored object and the public URL it is served from.
type PutResult struct {
	Key         string
	URL         string
	ContentType string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

// New builds the Storage selected by cfg.Driver.
func New(ctx context.Context, cfg config.Storage) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.LocalDir, cfg.LocalURLPrefix), nil
	case "s3":
		return NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// imageType returns the normalized extension and content type for filename.
func imageType(filename string) (ext, contentType string, err error) {
	ext = strings.ToLower(path.Ext(filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedImage, filename)
	}
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	return ext, contentType, nil
}

// objectKey lays images out as products/<handle>/<uuid><ext>.
func objectKey(handle, ext string) string {
	dir := "products"
	if handle != "" {
		dir = path.Join(dir, slug.FromName(handle))
	}
	return path.Join(dir, uuid.NewString()+ext)
}

// cleanKey keeps key inside the storage root.
func cleanKey(key string) string {
	return strings.TrimPrefix(path.Clean("/"+key), "/")
}
