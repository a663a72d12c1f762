package gateways

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/saferwall/pe"

	"github.com/ochairo/sbat/internal/domain/entities"
	"github.com/ochairo/sbat/internal/domain/interfaces"
)

// Section names shim and friends use for SBAT data. PE short names hold 8
// bytes, so .sbatlevel is stored as ".sbatlev".
const (
	sbatSectionName      = ".sbat"
	sbatLevelSectionName = ".sbatlev"
)

// MaxImageSize bounds the boot images we are willing to parse (64 MB)
const MaxImageSize = 64 * 1024 * 1024

// PEImageReader extracts SBAT sections from PE/COFF boot images
type PEImageReader struct {
	logger interfaces.Logger
}

// NewPEImageReader creates a PE image reader
func NewPEImageReader(logger interfaces.Logger) *PEImageReader {
	if logger == nil {
		logger = interfaces.NoOpLogger{}
	}
	return &PEImageReader{logger: logger}
}

// ReadSections returns the .sbat and .sbatlevel sections of the image.
// Section bytes are copied out before the mapped image is closed.
func (r *PEImageReader) ReadSections(ctx context.Context, imagePath string) (*entities.ImageSections, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.Size() > MaxImageSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", imagePath, MaxImageSize)
	}

	f, err := pe.New(imagePath, &pe.Options{Fast: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open PE image: %w", err)
	}
	//nolint:errcheck // Defer close on read-only mapping
	defer f.Close()

	if err := f.Parse(); err != nil {
		return nil, fmt.Errorf("failed to parse PE image: %w", err)
	}

	sections := &entities.ImageSections{}
	for i := range f.Sections {
		section := &f.Sections[i]
		name := sectionName(section.Header.Name)

		switch name {
		case sbatSectionName:
			sections.SBAT = trimNUL(sectionBytes(f, section))
		case sbatLevelSectionName:
			// .sbatlevel is binary and keeps its inner NULs.
			sections.SBATLevel = sectionBytes(f, section)
		default:
			continue
		}
		r.logger.Debug("found sbat section",
			interfaces.F("image", imagePath),
			interfaces.F("section", name),
			interfaces.F("virtual_size", section.Header.VirtualSize),
			interfaces.F("raw_size", section.Header.SizeOfRawData))
	}

	if sections.SBAT == nil {
		r.logger.Warn("image has no .sbat section", interfaces.F("image", imagePath))
	}
	return sections, nil
}

// sectionBytes copies the section's raw data limited to its virtual size,
// which drops file alignment padding.
func sectionBytes(f *pe.File, section *pe.Section) []byte {
	data := section.Data(0, 0, f)
	if size := section.Header.VirtualSize; size != 0 && int(size) < len(data) {
		data = data[:size]
	}
	return append([]byte{}, data...)
}

func sectionName(raw [8]uint8) string {
	return string(bytes.TrimRight(raw[:], "\x00"))
}
