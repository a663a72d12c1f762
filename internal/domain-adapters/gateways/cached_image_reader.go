package gateways

import (
	"context"
	"sync"

	"github.com/ochairo/sbat/internal/domain/entities"
	"github.com/ochairo/sbat/internal/domain/interfaces/gateways"
)

// CachedImageReader remembers the sections of every image it has read, so
// that checking an image against its own .sbatlevel parses the file once.
// Failed reads are not cached.
type CachedImageReader struct {
	inner gateways.ImageReader

	mu       sync.Mutex
	sections map[string]*entities.ImageSections
}

// NewCachedImageReader wraps inner with a per-path cache
func NewCachedImageReader(inner gateways.ImageReader) *CachedImageReader {
	return &CachedImageReader{
		inner:    inner,
		sections: make(map[string]*entities.ImageSections),
	}
}

// ReadSections returns the cached sections for imagePath, reading them on
// first use
func (r *CachedImageReader) ReadSections(ctx context.Context, imagePath string) (*entities.ImageSections, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sections, ok := r.sections[imagePath]; ok {
		return sections, nil
	}

	sections, err := r.inner.ReadSections(ctx, imagePath)
	if err != nil {
		return nil, err
	}
	r.sections[imagePath] = sections
	return sections, nil
}
