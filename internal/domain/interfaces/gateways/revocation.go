// Package gateways defines the contracts for fetching SBAT data from the
// platform and from boot images.
package gateways

import (
	"context"

	"github.com/ochairo/sbat/internal/domain/entities"
)

// RevocationSource fetches raw revocation list bytes
type RevocationSource interface {
	// Name identifies the source in logs and reports
	Name() string

	// Fetch returns the raw revocation list
	Fetch(ctx context.Context) ([]byte, error)
}

// ImageReader extracts SBAT sections from a boot image
type ImageReader interface {
	ReadSections(ctx context.Context, imagePath string) (*entities.ImageSections, error)
}

// SignatureVerifier checks a detached signature over data
type SignatureVerifier interface {
	VerifyDetached(data, signature []byte) error
}
