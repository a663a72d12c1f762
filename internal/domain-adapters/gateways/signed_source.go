package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/sbat/internal/domain/interfaces"
	"github.com/ochairo/sbat/internal/domain/interfaces/gateways"
)

// maxSignatureSize bounds detached signatures (they are typically < 1KB)
const maxSignatureSize = 10 * 1024

// SignedSource verifies a detached signature over the bytes of another
// source before handing them out
type SignedSource struct {
	inner         gateways.RevocationSource
	verifier      gateways.SignatureVerifier
	signaturePath string
	logger        interfaces.Logger
}

// NewSignedSource wraps inner with signature verification
func NewSignedSource(inner gateways.RevocationSource, verifier gateways.SignatureVerifier, signaturePath string, logger interfaces.Logger) *SignedSource {
	if logger == nil {
		logger = interfaces.NoOpLogger{}
	}
	return &SignedSource{inner: inner, verifier: verifier, signaturePath: signaturePath, logger: logger}
}

// Name returns the wrapped source name
func (s *SignedSource) Name() string {
	return "signed:" + s.inner.Name()
}

// Fetch returns the inner source's bytes only if the signature verifies
func (s *SignedSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := s.inner.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	signature, err := readBounded(s.signaturePath, maxSignatureSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load signature: %w", err)
	}

	if err := s.verifier.VerifyDetached(data, signature); err != nil {
		s.logger.Warn("revocation list signature rejected",
			interfaces.F("source", s.inner.Name()),
			interfaces.F("signature", s.signaturePath),
			interfaces.F("error", err.Error()))
		return nil, fmt.Errorf("revocation list signature: %w", err)
	}

	s.logger.Info("revocation list signature verified", interfaces.F("source", s.inner.Name()))
	return data, nil
}
