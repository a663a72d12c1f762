// Package services implements SBAT parsing, revocation matching and the
// validation use case.
package services

import (
	"github.com/ochairo/sbat/internal/domain/entities"
	"github.com/ochairo/sbat/internal/domain/interfaces"
)

// maxHeaderFields covers the first record: name, generation and an
// optional date.
const maxHeaderFields = 3

// Revocations is a parsed SBAT revocation list, typically the contents of
// the SbatLevel UEFI variable. Each stored component carries the lowest
// allowed generation for that name.
//
// A Revocations is not safe for concurrent use.
type Revocations struct {
	date       entities.ASCIIStr
	hasDate    bool
	components interfaces.Veclike[entities.Component]
}

// NewRevocations wraps components as-is. Existing items are kept, so a
// constant table can be used without parsing.
func NewRevocations(components interfaces.Veclike[entities.Component]) *Revocations {
	return &Revocations{components: components}
}

// Parse replaces the stored list with the records in input. The date is
// taken from the optional third field of the first record.
//
// On error the storage holds the records pushed before the failing one;
// the store must be re-parsed or discarded.
func (r *Revocations) Parse(input []byte) error {
	r.components.Clear()
	r.date, r.hasDate = nil, false

	first := true
	return parseCSV(input, maxHeaderFields, func(rec record) error {
		if first {
			r.date, r.hasDate = rec.field(2)
			first = false
		}

		component, err := componentFrom(rec)
		if err != nil {
			return err
		}
		if !r.components.TryPush(component) {
			return entities.ErrTooManyRecords
		}
		return nil
	})
}

func componentFrom(rec record) (entities.Component, error) {
	name, ok := rec.field(0)
	if !ok {
		return entities.Component{}, entities.ErrTooFewFields
	}
	generation, ok, err := rec.generation(1)
	if err != nil {
		return entities.Component{}, err
	}
	if !ok {
		return entities.Component{}, entities.ErrTooFewFields
	}
	return entities.NewComponent(name, generation), nil
}

// Date returns the date of the list, if the first record had one
func (r *Revocations) Date() (entities.ASCIIStr, bool) {
	return r.date, r.hasDate
}

// RevokedComponents returns the stored components. Each generation is the
// lowest allowed one; anything lower is revoked.
func (r *Revocations) RevokedComponents() []entities.Component {
	return r.components.AsSlice()
}

// RevocationFor returns the first stored component, in storage order, that
// revokes input: same name and a strictly higher generation.
func (r *Revocations) RevocationFor(input entities.Component) (entities.Component, bool) {
	for _, revoked := range r.components.AsSlice() {
		if input.Name.Equal(revoked.Name) && input.Generation < revoked.Generation {
			return revoked, true
		}
	}
	return entities.Component{}, false
}

// IsComponentRevoked reports whether input is revoked. Names that are not
// in the list are always allowed.
func (r *Revocations) IsComponentRevoked(input entities.Component) bool {
	_, revoked := r.RevocationFor(input)
	return revoked
}

// ValidateMetadata checks each entry of metadata in declaration order and
// reports the first revoked one.
func (r *Revocations) ValidateMetadata(metadata *Metadata) entities.ValidationResult {
	entries := metadata.Entries()
	for i := range entries {
		if r.IsComponentRevoked(entries[i].Component) {
			return entities.Revoked(&entries[i])
		}
	}
	return entities.Allowed()
}
