package gateways

import (
	"context"
	"errors"
	"testing"

	"github.com/ochairo/sbat/internal/domain/entities"
)

func TestCachedImageReader_ReadsOncePerImage(t *testing.T) {
	inner := &fakeImageReader{sections: &entities.ImageSections{
		SBAT:      []byte("sbat,1\nshim,4\n"),
		SBATLevel: sbatLevel("sbat,1,2022052400\n", "sbat,1,2024010900\nshim,4\n"),
	}}
	reader := NewCachedImageReader(inner)

	// The check path reads .sbat and the image source reads .sbatlevel.
	if _, err := reader.ReadSections(context.Background(), "shimx64.efi"); err != nil {
		t.Fatalf("ReadSections() error = %v", err)
	}
	data, err := NewImageSectionSource(reader, "shimx64.efi", LevelLatest, nil).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "sbat,1,2024010900\nshim,4\n" {
		t.Errorf("Fetch() = %q", data)
	}
	if inner.reads != 1 {
		t.Errorf("inner reads = %d, want 1", inner.reads)
	}

	if _, err := reader.ReadSections(context.Background(), "grubx64.efi"); err != nil {
		t.Fatalf("ReadSections() error = %v", err)
	}
	if inner.reads != 2 {
		t.Errorf("inner reads = %d, want 2 after a second image", inner.reads)
	}
}

func TestCachedImageReader_DoesNotCacheErrors(t *testing.T) {
	readErr := errors.New("device busy")
	inner := &fakeImageReader{err: readErr}
	reader := NewCachedImageReader(inner)

	if _, err := reader.ReadSections(context.Background(), "shimx64.efi"); !errors.Is(err, readErr) {
		t.Fatalf("error = %v, want %v", err, readErr)
	}

	inner.err = nil
	inner.sections = &entities.ImageSections{SBAT: []byte("sbat,1\n")}
	sections, err := reader.ReadSections(context.Background(), "shimx64.efi")
	if err != nil {
		t.Fatalf("ReadSections() error = %v", err)
	}
	if string(sections.SBAT) != "sbat,1\n" {
		t.Errorf("SBAT = %q", sections.SBAT)
	}
	if inner.reads != 2 {
		t.Errorf("inner reads = %d, want 2", inner.reads)
	}
}
