// Package storage provides local filesystem storage: receipt files for the
// bill store service and the session record for the web application.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ReceiptStorage stores uploaded receipt files under a base directory.
type ReceiptStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewReceiptStorage creates receipt storage rooted at baseDir, creating the
// directory if needed.
func NewReceiptStorage(baseDir string, logger *zap.Logger) (*ReceiptStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create receipt dir: %w", err)
	}
	return &ReceiptStorage{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

// Save writes the receipt content under the given stored name and returns
// the path relative to the base directory.
func (s *ReceiptStorage) Save(storedName string, content io.Reader) (string, error) {
	fullPath, err := s.resolve(storedName)
	if err != nil {
		return "", err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		s.logger.Error("failed to create receipt file", zap.String("path", fullPath), zap.Error(err))
		return "", fmt.Errorf("create receipt file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, content)
	if err != nil {
		return "", fmt.Errorf("write receipt file: %w", err)
	}

	s.logger.Debug("receipt saved",
		zap.String("name", storedName),
		zap.Int64("size", size))
	return storedName, nil
}

// Open returns a reader over a stored receipt.
func (s *ReceiptStorage) Open(storedName string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(storedName)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("open receipt file: %w", err)
	}
	return f, nil
}

// Dir returns the storage base directory.
func (s *ReceiptStorage) Dir() string {
	return s.baseDir
}

// resolve joins the stored name onto the base directory, refusing names
// that would escape it.
func (s *ReceiptStorage) resolve(storedName string) (string, error) {
	fullPath := filepath.Join(s.baseDir, storedName)
	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve base dir: %w", err)
	}
	abs, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("resolve receipt path: %w", err)
	}
	if abs != base && !strings.HasPrefix(abs, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("receipt path escapes storage dir: %s", storedName)
	}
	return fullPath, nil
}
