package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/invapp/inventory-api/internal/platform/logger"
)

var ErrInvalidImageType = errors.New("only jpeg, jpg, png and gif images are allowed")

// PublicPrefix is the URL path under which stored images are served.
const PublicPrefix = "/uploads"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// LocalImageStore writes uploaded images to a directory on local disk.
// Writes are not transactional with any database write; callers are
// expected to Remove a saved file when their own write fails.
type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Save validates the file against the image allow-list, writes it under a
// generated collision-free name and returns the public path for the record.
func (s *LocalImageStore) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrInvalidImageType
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !allowedContentTypes[ct] {
		return "", ErrInvalidImageType
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := "product-" + uuid.NewString() + ext
	dstPath := filepath.Join(s.dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", dstPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to write file %s: %w", dstPath, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to close file %s: %w", dstPath, err)
	}

	return PublicPrefix + "/" + name, nil
}

// Remove deletes a previously stored image by its public path. Only the
// base name is used, so a path can never escape the upload directory.
func (s *LocalImageStore) Remove(publicPath string) error {
	name := path.Base(publicPath)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		logger.Warn("Remove: failed to delete stored image %s: %v", name, err)
		return err
	}
	return nil
}
