// Package entities defines the SBAT data model: generations, components,
// image metadata entries, verdicts and parse errors.
package entities

// Component is a named, versioned unit of a boot chain. Name borrows from the
// parsed input buffer.
type Component struct {
	Name       ASCIIStr
	Generation Generation
}

// NewComponent creates a Component
func NewComponent(name ASCIIStr, generation Generation) Component {
	return Component{Name: name, Generation: generation}
}

func (c Component) String() string {
	return c.Name.String() + "," + c.Generation.String()
}
