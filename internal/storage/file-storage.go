package storage

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"contracthub/internal/domain"
	"contracthub/internal/interfaces"

	"github.com/google/uuid"
)

const MaxFileSize = 5 * 1024 * 1024 // 5 MB

var allowedTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// DiskStore keeps attachments in a flat directory. Stored names are the
// sanitized original name behind a random prefix, so lookups only ever
// resolve a basename inside the directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Store(b []byte, contentType, originalName string) (string, error) {
	if len(b) == 0 {
		return "", errors.New("file is empty, please select a file to upload")
	}
	if len(b) > MaxFileSize {
		return "", domain.ErrFileTooLarge
	}
	if !allowedTypes[strings.ToLower(strings.TrimSpace(contentType))] {
		return "", domain.ErrUnsupportedFileType
	}

	name := filepath.Base(strings.TrimSpace(originalName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "file"
	}
	name = unsafeChars.ReplaceAllString(name, "_")

	stored := uuid.NewString() + "_" + name
	if err := os.WriteFile(filepath.Join(s.dir, stored), b, 0o644); err != nil {
		log.Printf("store file error: %v", err)
		return "", errors.New("failed to store file")
	}
	return stored, nil
}

func (s *DiskStore) Load(fileName string) ([]byte, error) {
	path, err := s.Path(fileName)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("load file error: %v", err)
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// Path resolves a stored name to its on-disk location. Only the basename is
// honored, which closes off traversal through the name.
func (s *DiskStore) Path(fileName string) (string, error) {
	name := filepath.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." {
		return "", domain.ErrNotFound
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", domain.ErrNotFound
	}
	return path, nil
}

func (s *DiskStore) Delete(fileName string) {
	if strings.TrimSpace(fileName) == "" {
		return
	}
	name := filepath.Base(fileName)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("delete file error: %v", err)
	}
}

// ContentTypeFor maps a stored name's extension to the download content
// type; unknown extensions fall back to octet-stream.
func ContentTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return "application/octet-stream"
}

var _ interfaces.FileStore = (*DiskStore)(nil)
