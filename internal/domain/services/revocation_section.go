package services

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// revocationSectionVersion is the only .sbatlevel layout in use
const revocationSectionVersion = 0

// headerSize covers version, previous offset and latest offset
const headerSize = 12

// Errors returned by ParseRevocationSection
var (
	ErrSectionTruncated    = errors.New("sbatlevel: section shorter than header")
	ErrSectionVersion      = errors.New("sbatlevel: unsupported version")
	ErrSectionOffset       = errors.New("sbatlevel: payload offset out of range")
	ErrSectionUnterminated = errors.New("sbatlevel: payload not NUL terminated")
)

// RevocationSection holds the two revocation payloads embedded in a
// .sbatlevel section. Both are views into the section data.
type RevocationSection struct {
	// Previous is the conservative level applied by default
	Previous []byte
	// Latest is the newest level known when the image was built
	Latest []byte
}

// ParseRevocationSection decodes a .sbatlevel section. The layout is a
// little-endian u32 version (0), then u32 offsets of the previous and
// latest payloads. Offsets count from the end of the version field and each
// payload ends at a NUL byte.
func ParseRevocationSection(data []byte) (RevocationSection, error) {
	if len(data) < headerSize {
		return RevocationSection{}, ErrSectionTruncated
	}
	if v := binary.LittleEndian.Uint32(data[0:4]); v != revocationSectionVersion {
		return RevocationSection{}, fmt.Errorf("%w: %d", ErrSectionVersion, v)
	}

	payload := data[4:]
	previous, err := nulTerminated(payload, binary.LittleEndian.Uint32(data[4:8]))
	if err != nil {
		return RevocationSection{}, fmt.Errorf("previous: %w", err)
	}
	latest, err := nulTerminated(payload, binary.LittleEndian.Uint32(data[8:12]))
	if err != nil {
		return RevocationSection{}, fmt.Errorf("latest: %w", err)
	}

	return RevocationSection{Previous: previous, Latest: latest}, nil
}

func nulTerminated(payload []byte, offset uint32) ([]byte, error) {
	if uint64(offset) >= uint64(len(payload)) {
		return nil, ErrSectionOffset
	}
	s := payload[offset:]
	end := bytes.IndexByte(s, 0)
	if end < 0 {
		return nil, ErrSectionUnterminated
	}
	return s[:end:end], nil
}
