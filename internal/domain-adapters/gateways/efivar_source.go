package gateways

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/ochairo/sbat/internal/domain/interfaces"
)

// DefaultSbatLevelPath is the SbatLevel variable as exposed by efivarfs
const DefaultSbatLevelPath = "/sys/firmware/efi/efivars/SbatLevelRT-605dab50-e046-4300-abb6-3dd810dd8b23"

// efivarAttributesSize is the attribute word efivarfs puts before the data
const efivarAttributesSize = 4

// EFIVarSource reads a revocation list from an efivarfs variable file
type EFIVarSource struct {
	path   string
	logger interfaces.Logger
}

// NewEFIVarSource creates a source for the variable at path. An empty path
// selects DefaultSbatLevelPath.
func NewEFIVarSource(path string, logger interfaces.Logger) *EFIVarSource {
	if path == "" {
		path = DefaultSbatLevelPath
	}
	if logger == nil {
		logger = interfaces.NoOpLogger{}
	}
	return &EFIVarSource{path: path, logger: logger}
}

// Name returns the source name
func (s *EFIVarSource) Name() string {
	return "efivar:" + s.path
}

// Fetch reads the variable and strips the attribute prefix
func (s *EFIVarSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := readBounded(s.path, MaxRevocationSize+efivarAttributesSize)
	if err != nil {
		return nil, err
	}
	if len(raw) < efivarAttributesSize {
		return nil, fmt.Errorf("efivar %s: missing attribute header", s.path)
	}

	s.logger.Debug("read efi variable",
		interfaces.F("path", s.path),
		interfaces.F("attributes", fmt.Sprintf("%#x", binary.LittleEndian.Uint32(raw[:efivarAttributesSize]))),
		interfaces.F("bytes", len(raw)-efivarAttributesSize))

	return trimNUL(raw[efivarAttributesSize:]), nil
}

// trimNUL cuts data at its first NUL byte; firmware variables and PE
// sections are often NUL padded.
func trimNUL(data []byte) []byte {
	for i, c := range data {
		if c == 0 {
			return data[:i]
		}
	}
	return data
}
