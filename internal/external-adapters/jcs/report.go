// Package jcs renders verdicts as canonical JSON (RFC 8785) so that reports
// can be hashed and compared byte for byte.
package jcs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"

	"github.com/ochairo/sbat/internal/domain/entities"
)

// Report is the JSON form of a verdict
type Report struct {
	Status          string        `json:"status"`
	Image           string        `json:"image"`
	Source          string        `json:"source"`
	RevocationDate  string        `json:"revocation_date,omitempty"`
	RevocationCount int           `json:"revocation_count"`
	MetadataCount   int           `json:"metadata_count"`
	CheckedAt       string        `json:"checked_at"`
	Revoked         *RevokedEntry `json:"revoked,omitempty"`
}

// RevokedEntry describes the first revoked metadata entry
type RevokedEntry struct {
	Component         string `json:"component"`
	Generation        uint32 `json:"generation"`
	MinimumGeneration uint32 `json:"minimum_generation"`
	VendorName        string `json:"vendor_name,omitempty"`
	VendorPackage     string `json:"vendor_package,omitempty"`
	VendorVersion     string `json:"vendor_version,omitempty"`
	VendorURL         string `json:"vendor_url,omitempty"`
}

// Envelope pairs the canonical report with its digest
type Envelope struct {
	Report Report `json:"report"`
	Digest string `json:"digest"`
}

// NewReport converts a verdict for image into a Report
func NewReport(image string, verdict *entities.Verdict) Report {
	report := Report{
		Status:          verdict.Status.String(),
		Image:           image,
		Source:          verdict.Source,
		RevocationDate:  verdict.Date.String(),
		RevocationCount: verdict.RevocationCount,
		MetadataCount:   verdict.MetadataCount,
		CheckedAt:       verdict.CheckedAt.UTC().Format(time.RFC3339),
	}

	if verdict.Entry != nil {
		revoked := &RevokedEntry{
			Component:     verdict.Entry.Component.Name.String(),
			Generation:    uint32(verdict.Entry.Component.Generation),
			VendorName:    verdict.Entry.Vendor.Name.String(),
			VendorPackage: verdict.Entry.Vendor.PackageName.String(),
			VendorVersion: verdict.Entry.Vendor.Version.String(),
			VendorURL:     verdict.Entry.Vendor.URL.String(),
		}
		if verdict.RevokedBy != nil {
			revoked.MinimumGeneration = uint32(verdict.RevokedBy.Generation)
		}
		report.Revoked = revoked
	}

	return report
}

// Canonicalize returns the RFC 8785 form of report
func Canonicalize(report Report) ([]byte, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize report: %w", err)
	}
	return canonical, nil
}

// Seal canonicalizes report and returns the canonical JSON of an Envelope
// whose digest is the sha256 of the canonical report.
func Seal(report Report) ([]byte, error) {
	canonical, err := Canonicalize(report)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(canonical)

	raw, err := json.Marshal(Envelope{Report: report, Digest: "sha256:" + hex.EncodeToString(sum[:])})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return jcs.Transform(raw)
}
