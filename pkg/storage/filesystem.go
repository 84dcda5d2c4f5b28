package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var unsafeStem = regexp.MustCompile(`[^a-zA-Z0-9]`)

// LocalStorage persists uploaded files on disk under a base directory.
type LocalStorage struct {
	baseDir string
	now     func() time.Time
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, now: time.Now}, nil
}

// SaveStream copies from reader into a freshly named file and returns that name.
// The directory is recreated when it was removed while the process was running.
func (s *LocalStorage) SaveStream(field, originalName string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}

	filename, err := GenerateName(field, originalName, s.now())
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(s.resolve(filename), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	return filename, nil
}

// Open returns a read-only handle for the stored file.
func (s *LocalStorage) Open(filename string) (*os.File, error) {
	file, err := os.Open(s.resolve(filename))
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file if present.
func (s *LocalStorage) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	if err := os.Remove(s.resolve(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// Dir exposes the base directory so it can be served statically.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// Path exposes the underlying path (useful for debugging).
func (s *LocalStorage) Path(filename string) string {
	return s.resolve(filename)
}

// resolve keeps every name inside the base directory.
func (s *LocalStorage) resolve(filename string) string {
	return filepath.Join(s.baseDir, filepath.Base(filename))
}

// GenerateName builds <field>-<stem>-<unixMillis>-<random>.<ext> where stem is the
// original base name with every non alphanumeric character removed.
func GenerateName(field, originalName string, now time.Time) (string, error) {
	base := filepath.Base(originalName)
	ext := strings.ToLower(filepath.Ext(base))
	stem := unsafeStem.ReplaceAllString(strings.TrimSuffix(base, filepath.Ext(base)), "")
	if stem == "" {
		stem = "file"
	}
	if len(stem) > 40 {
		stem = stem[:40]
	}

	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("generate upload suffix: %w", err)
	}

	name := strings.Join([]string{
		field,
		stem,
		strconv.FormatInt(now.UnixMilli(), 10),
		hex.EncodeToString(suffix),
	}, "-")
	return name + ext, nil
}
