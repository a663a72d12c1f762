package entities

// Vendor carries the human-readable fields of an image metadata record.
// None of them take part in revocation decisions. Missing fields are nil.
type Vendor struct {
	Name        ASCIIStr
	PackageName ASCIIStr
	Version     ASCIIStr
	URL         ASCIIStr
}

// Entry is one record of an image's self-declared component chain
type Entry struct {
	Component Component
	Vendor    Vendor
}

// NewEntry creates an Entry
func NewEntry(component Component, vendor Vendor) Entry {
	return Entry{Component: component, Vendor: vendor}
}
