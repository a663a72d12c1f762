package entities

// ValidationStatus is the verdict of checking image metadata against a
// revocation list
type ValidationStatus int

const (
	// StatusAllowed means no metadata entry is revoked
	StatusAllowed ValidationStatus = iota
	// StatusRevoked means at least one metadata entry is revoked
	StatusRevoked
)

func (s ValidationStatus) String() string {
	if s == StatusRevoked {
		return "revoked"
	}
	return "allowed"
}

// ValidationResult holds the verdict and, when revoked, the first revoked
// entry in declaration order. Other entries may be revoked as well.
type ValidationResult struct {
	Status ValidationStatus
	Entry  *Entry
}

// Allowed returns the allowed verdict
func Allowed() ValidationResult {
	return ValidationResult{Status: StatusAllowed}
}

// Revoked returns the revoked verdict pointing at entry
func Revoked(entry *Entry) ValidationResult {
	return ValidationResult{Status: StatusRevoked, Entry: entry}
}

// IsRevoked reports whether the verdict is revoked
func (r ValidationResult) IsRevoked() bool {
	return r.Status == StatusRevoked
}
