// Package services defines interfaces for domain service contracts.
package services

import (
	"github.com/ochairo/sbat/internal/domain/entities"
)

// ValidationService decides whether an image's SBAT metadata is revoked
type ValidationService interface {
	// Check parses both inputs into bounded storage and validates the
	// metadata. Any parse error is returned unchanged; callers must treat
	// it as fail closed.
	Check(revocationData, metadataData []byte) (*entities.Verdict, error)

	// ParseRevocations parses a revocation list
	ParseRevocations(data []byte) (*entities.RevocationList, error)

	// ParseMetadata parses image metadata
	ParseMetadata(data []byte) ([]entities.Entry, error)
}
