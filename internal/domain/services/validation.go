package services

import (
	"fmt"
	"time"

	"github.com/ochairo/sbat/internal/domain/entities"
	"github.com/ochairo/sbat/internal/domain/interfaces/services"
)

// Default storage capacities
const (
	DefaultRevocationCapacity = 64
	DefaultMetadataCapacity   = 32
)

// validationService implements ValidationService over fixed-capacity storage
type validationService struct {
	revocationCapacity int
	metadataCapacity   int
	now                func() time.Time
}

// NewValidationService creates a validation service. Non-positive
// capacities fall back to the defaults.
func NewValidationService(revocationCapacity, metadataCapacity int) services.ValidationService {
	if revocationCapacity <= 0 {
		revocationCapacity = DefaultRevocationCapacity
	}
	if metadataCapacity <= 0 {
		metadataCapacity = DefaultMetadataCapacity
	}
	return &validationService{
		revocationCapacity: revocationCapacity,
		metadataCapacity:   metadataCapacity,
		now:                time.Now,
	}
}

// Check validates metadataData against revocationData
func (s *validationService) Check(revocationData, metadataData []byte) (*entities.Verdict, error) {
	revocations := NewRevocations(entities.NewArrayVec[entities.Component](s.revocationCapacity))
	if err := revocations.Parse(revocationData); err != nil {
		return nil, fmt.Errorf("revocation list: %w", err)
	}

	metadata := NewMetadata(entities.NewArrayVec[entities.Entry](s.metadataCapacity))
	if err := metadata.Parse(metadataData); err != nil {
		return nil, fmt.Errorf("image metadata: %w", err)
	}

	date, _ := revocations.Date()
	verdict := &entities.Verdict{
		Status:          entities.StatusAllowed,
		Date:            date,
		RevocationCount: len(revocations.RevokedComponents()),
		MetadataCount:   len(metadata.Entries()),
		CheckedAt:       s.now(),
	}

	result := revocations.ValidateMetadata(metadata)
	if result.IsRevoked() {
		verdict.Status = entities.StatusRevoked
		verdict.Entry = result.Entry
		if by, ok := revocations.RevocationFor(result.Entry.Component); ok {
			verdict.RevokedBy = &by
		}
	}

	return verdict, nil
}

// ParseRevocations parses data into a RevocationList
func (s *validationService) ParseRevocations(data []byte) (*entities.RevocationList, error) {
	revocations := NewRevocations(entities.NewArrayVec[entities.Component](s.revocationCapacity))
	if err := revocations.Parse(data); err != nil {
		return nil, err
	}

	date, hasDate := revocations.Date()
	return &entities.RevocationList{
		Date:       date,
		HasDate:    hasDate,
		Components: revocations.RevokedComponents(),
	}, nil
}

// ParseMetadata parses image metadata entries
func (s *validationService) ParseMetadata(data []byte) ([]entities.Entry, error) {
	metadata := NewMetadata(entities.NewArrayVec[entities.Entry](s.metadataCapacity))
	if err := metadata.Parse(data); err != nil {
		return nil, err
	}
	return metadata.Entries(), nil
}
