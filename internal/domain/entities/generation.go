package entities

import "strconv"

// Generation is the version counter of a single named component.
// Generations are only comparable between components with the same name.
type Generation uint32

// ParseGeneration parses a base-10 generation field.
// Signs, whitespace and leading zeros (other than a lone "0") are rejected.
func ParseGeneration(field []byte) (Generation, error) {
	if len(field) == 0 {
		return 0, ErrInvalidGeneration
	}
	if len(field) > 1 && field[0] == '0' {
		return 0, ErrInvalidGeneration
	}

	var value uint64
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, ErrInvalidGeneration
		}
		value = value*10 + uint64(c-'0')
		if value > maxGeneration {
			return 0, ErrInvalidGeneration
		}
	}

	return Generation(value), nil
}

const maxGeneration = 1<<32 - 1

// String returns the decimal form of the generation
func (g Generation) String() string {
	return strconv.FormatUint(uint64(g), 10)
}
