// Package orchestrators coordinates gateways and services into end-to-end
// use cases.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ochairo/sbat/internal/domain/entities"
	"github.com/ochairo/sbat/internal/domain/interfaces"
	"github.com/ochairo/sbat/internal/domain/interfaces/gateways"
	"github.com/ochairo/sbat/internal/domain/interfaces/services"
)

// ErrFailClosed wraps every failure to obtain a trustworthy verdict. Callers
// must refuse to boot the image when they see it.
var ErrFailClosed = errors.New("fail closed")

// ErrNoMetadata is returned for images whose .sbat section is missing or
// declares no components. Such an image cannot be shown to be unrevoked.
var ErrNoMetadata = errors.New("image declares no sbat metadata")

// CheckOrchestrator coordinates fetching the revocation list, reading the
// image and validating it
type CheckOrchestrator struct {
	validation services.ValidationService
	source     gateways.RevocationSource
	images     gateways.ImageReader
	logger     interfaces.Logger
}

// NewCheckOrchestrator creates a new check orchestrator
func NewCheckOrchestrator(
	validation services.ValidationService,
	source gateways.RevocationSource,
	images gateways.ImageReader,
	logger interfaces.Logger,
) *CheckOrchestrator {
	if logger == nil {
		logger = interfaces.NoOpLogger{}
	}
	return &CheckOrchestrator{
		validation: validation,
		source:     source,
		images:     images,
		logger:     logger,
	}
}

// CheckResult contains the verdict and what it was computed from
type CheckResult struct {
	ImagePath string
	Verdict   *entities.Verdict
	Sections  *entities.ImageSections
	Duration  time.Duration
}

// CheckImage validates the .sbat section of the image at imagePath.
// A nil error means the verdict is trustworthy; any error wraps
// ErrFailClosed.
func (o *CheckOrchestrator) CheckImage(ctx context.Context, imagePath string) (*CheckResult, error) {
	start := time.Now()

	sections, err := o.images.ReadSections(ctx, imagePath)
	if err != nil {
		return nil, o.failClosed("image unreadable", err, imagePath)
	}
	if sections.SBAT == nil {
		return nil, o.failClosed("image has no .sbat section", ErrNoMetadata, imagePath)
	}

	verdict, err := o.check(ctx, sections.SBAT, imagePath)
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		ImagePath: imagePath,
		Verdict:   verdict,
		Sections:  sections,
		Duration:  time.Since(start),
	}, nil
}

// CheckMetadata validates raw image metadata that was extracted elsewhere
func (o *CheckOrchestrator) CheckMetadata(ctx context.Context, name string, metadata []byte) (*CheckResult, error) {
	start := time.Now()

	verdict, err := o.check(ctx, metadata, name)
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		ImagePath: name,
		Verdict:   verdict,
		Sections:  &entities.ImageSections{SBAT: metadata},
		Duration:  time.Since(start),
	}, nil
}

func (o *CheckOrchestrator) check(ctx context.Context, metadata []byte, image string) (*entities.Verdict, error) {
	data, err := o.source.Fetch(ctx)
	if err != nil {
		return nil, o.failClosed("revocation list unavailable", err, image)
	}

	verdict, err := o.validation.Check(data, metadata)
	if err != nil {
		return nil, o.failClosed("validation failed", err, image)
	}
	if verdict.MetadataCount == 0 {
		return nil, o.failClosed("image metadata is empty", ErrNoMetadata, image)
	}
	verdict.Source = o.source.Name()

	if verdict.IsRevoked() {
		fields := []interfaces.Field{
			interfaces.F("image", image),
			interfaces.F("component", verdict.Entry.Component.String()),
		}
		if verdict.RevokedBy != nil {
			fields = append(fields, interfaces.F("minimum_generation", uint32(verdict.RevokedBy.Generation)))
		}
		o.logger.Warn("image revoked", fields...)
	} else {
		o.logger.Info("image allowed",
			interfaces.F("image", image),
			interfaces.F("source", verdict.Source),
			interfaces.F("revocations", verdict.RevocationCount))
	}

	return verdict, nil
}

func (o *CheckOrchestrator) failClosed(msg string, err error, image string) error {
	o.logger.Error(msg,
		interfaces.F("image", image),
		interfaces.F("source", o.source.Name()),
		interfaces.F("error", err.Error()))
	return fmt.Errorf("%w: %s: %w", ErrFailClosed, msg, err)
}
