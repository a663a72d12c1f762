package entities

// ImageSections holds the SBAT-related sections extracted from a boot image.
// A nil field means the section is absent.
type ImageSections struct {
	// SBAT is the image's own metadata (.sbat)
	SBAT []byte
	// SBATLevel is the embedded revocation section (.sbatlevel)
	SBATLevel []byte
}
