// Package gateways provides adapter implementations for fetching SBAT data.
package gateways

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/sbat/internal/domain/interfaces"
)

// MaxRevocationSize bounds every revocation list read from disk. The
// SbatLevel variable is a few hundred bytes in practice.
const MaxRevocationSize = 64 * 1024

// FileSource reads a revocation list from a plain file
type FileSource struct {
	path   string
	logger interfaces.Logger
}

// NewFileSource creates a file-backed revocation source
func NewFileSource(path string, logger interfaces.Logger) *FileSource {
	if logger == nil {
		logger = interfaces.NoOpLogger{}
	}
	return &FileSource{path: path, logger: logger}
}

// Name returns the source name
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Fetch reads the file
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := readBounded(s.path, MaxRevocationSize)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("read revocation file", interfaces.F("path", s.path), interfaces.F("bytes", len(data)))
	return data, nil
}

// readBounded reads at most limit bytes and fails if the file is larger
func readBounded(path string, limit int64) ([]byte, error) {
	//nolint:gosec // G304: path is operator-provided
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s exceeds %d bytes", path, limit)
	}
	return data, nil
}
