package entities

import "time"

// RevocationList is a read-only summary of a parsed revocation list
type RevocationList struct {
	Date       ASCIIStr
	HasDate    bool
	Components []Component
}

// Verdict is the outcome of checking an image against a revocation list
type Verdict struct {
	Status ValidationStatus
	// Entry is the first revoked metadata entry (nil when allowed)
	Entry *Entry
	// RevokedBy is the revocation record that matched Entry
	RevokedBy *Component
	// Date is the revocation list date, if it had one
	Date ASCIIStr
	// Source names where the revocation list came from
	Source          string
	RevocationCount int
	MetadataCount   int
	CheckedAt       time.Time
}

// IsRevoked reports whether the image must not boot
func (v *Verdict) IsRevoked() bool {
	return v.Status == StatusRevoked
}
