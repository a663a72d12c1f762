package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/sbat/internal/domain/interfaces"
	"github.com/ochairo/sbat/internal/domain/interfaces/gateways"
	"github.com/ochairo/sbat/internal/domain/services"
)

// Level selects one of the payloads of a .sbatlevel section
type Level string

// Revocation levels embedded by shim
const (
	LevelPrevious Level = "previous"
	LevelLatest   Level = "latest"
)

// ImageSectionSource takes the revocation list from an image's .sbatlevel
// section
type ImageSectionSource struct {
	reader    gateways.ImageReader
	imagePath string
	level     Level
	logger    interfaces.Logger
}

// NewImageSectionSource creates a source reading level from imagePath
func NewImageSectionSource(reader gateways.ImageReader, imagePath string, level Level, logger interfaces.Logger) *ImageSectionSource {
	if logger == nil {
		logger = interfaces.NoOpLogger{}
	}
	return &ImageSectionSource{reader: reader, imagePath: imagePath, level: level, logger: logger}
}

// Name returns the source name
func (s *ImageSectionSource) Name() string {
	return fmt.Sprintf("sbatlevel:%s:%s", s.level, s.imagePath)
}

// Fetch reads and decodes the .sbatlevel section
func (s *ImageSectionSource) Fetch(ctx context.Context) ([]byte, error) {
	sections, err := s.reader.ReadSections(ctx, s.imagePath)
	if err != nil {
		return nil, err
	}
	if sections.SBATLevel == nil {
		return nil, fmt.Errorf("%s has no .sbatlevel section", s.imagePath)
	}

	section, err := services.ParseRevocationSection(sections.SBATLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to decode .sbatlevel: %w", err)
	}

	switch s.level {
	case LevelPrevious:
		return section.Previous, nil
	case LevelLatest:
		return section.Latest, nil
	default:
		return nil, fmt.Errorf("unknown revocation level %q", s.level)
	}
}
