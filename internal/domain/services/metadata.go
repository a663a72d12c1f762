package services

import (
	"github.com/ochairo/sbat/internal/domain/entities"
	"github.com/ochairo/sbat/internal/domain/interfaces"
)

// maxMetadataFields is the width of an image .sbat record: component name,
// component generation, vendor name, vendor package name, vendor version
// and vendor URL.
const maxMetadataFields = 6

// Metadata is the ordered component chain an image declares in its .sbat
// section
type Metadata struct {
	entries interfaces.Veclike[entities.Entry]
}

// NewMetadata wraps entries as-is
func NewMetadata(entries interfaces.Veclike[entities.Entry]) *Metadata {
	return &Metadata{entries: entries}
}

// Parse replaces the stored entries with the records in input. Name and
// generation are required; vendor fields are optional.
func (m *Metadata) Parse(input []byte) error {
	m.entries.Clear()

	return parseCSV(input, maxMetadataFields, func(rec record) error {
		component, err := componentFrom(rec)
		if err != nil {
			return err
		}

		var vendor entities.Vendor
		vendor.Name, _ = rec.field(2)
		vendor.PackageName, _ = rec.field(3)
		vendor.Version, _ = rec.field(4)
		vendor.URL, _ = rec.field(5)

		if !m.entries.TryPush(entities.NewEntry(component, vendor)) {
			return entities.ErrTooManyRecords
		}
		return nil
	})
}

// Entries returns the entries in declaration order
func (m *Metadata) Entries() []entities.Entry {
	return m.entries.AsSlice()
}
