package entities

// Revocation source kinds
const (
	SourceFile          = "file"
	SourceEFIVar        = "efivar"
	SourceImagePrevious = "image-previous"
	SourceImageLatest   = "image-latest"
)

// Report formats
const (
	ReportText = "text"
	ReportJSON = "json"
)

// Policy configures where revocations come from and how verdicts are
// reported
type Policy struct {
	Revocations RevocationPolicy
	Metadata    MetadataPolicy
	Report      ReportPolicy
}

// RevocationPolicy selects and bounds the revocation list
type RevocationPolicy struct {
	Source string
	// Path of the list for file and efivar sources
	Path string
	// Signature is an optional detached OpenPGP signature over the list
	Signature string
	// Keyring holds the keys trusted to sign the list
	Keyring  string
	Capacity int
}

// MetadataPolicy bounds image metadata parsing
type MetadataPolicy struct {
	Capacity int
}

// ReportPolicy selects the verdict rendering
type ReportPolicy struct {
	Format string
}

// DefaultPolicy is used when no policy file is given
func DefaultPolicy() Policy {
	return Policy{
		Revocations: RevocationPolicy{Source: SourceFile, Capacity: 64},
		Metadata:    MetadataPolicy{Capacity: 32},
		Report:      ReportPolicy{Format: ReportText},
	}
}
