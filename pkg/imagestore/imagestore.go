// Package imagestore persists uploaded food images under a fixed directory.
// Filenames are generated from a uniqueness token plus a timestamp plus the
// original extension; callers that supply no upload get the placeholder name.
package imagestore

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const DefaultPlaceholder = "default_food.jpg"

type Store struct {
	dir         string
	placeholder string
}

func New(dir, placeholder string) *Store {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &Store{dir: dir, placeholder: placeholder}
}

// Placeholder returns the filename used when no image was uploaded.
func (s *Store) Placeholder() string {
	return s.placeholder
}

// Dir returns the upload directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes r to the upload directory under a generated name and returns
// the stored filename. origName is only used for its extension.
func (s *Store) Save(origName string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "imagestore: create upload dir")
	}
	ext := filepath.Ext(filepath.Base(origName))
	name := uuid.NewString() + "_" + strconv.FormatInt(time.Now().Unix(), 10) + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errors.Wrap(err, "imagestore: create file")
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return "", errors.Wrap(err, "imagestore: write file")
	}
	return name, nil
}

// SaveUpload stores a multipart form file. A nil header yields the
// placeholder filename without touching the filesystem.
func (s *Store) SaveUpload(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return s.placeholder, nil
	}
	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "imagestore: open upload")
	}
	defer src.Close()
	return s.Save(fh.Filename, src)
}
