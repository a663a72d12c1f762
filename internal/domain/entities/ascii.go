package entities

import "bytes"

// ASCIIStr is a read-only view into the buffer a record was parsed from.
// It is valid only while that buffer is left untouched; nothing in the
// parser copies bytes out of it.
type ASCIIStr []byte

// Equal reports whether both views hold the same bytes
func (s ASCIIStr) Equal(other ASCIIStr) bool {
	return bytes.Equal(s, other)
}

// String copies the view into a Go string (for display only)
func (s ASCIIStr) String() string {
	return string(s)
}

// AllowedSpecialChars lists the non-alphanumeric characters permitted in a
// field. Quote, backslash and comma are absent, so a field can never hide a
// separator and no escaping rules are needed.
const AllowedSpecialChars = " #%&()+-./:;<=>?@[]_~"

// IsAllowedChar reports whether c may appear inside a field
func IsAllowedChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	for i := 0; i < len(AllowedSpecialChars); i++ {
		if AllowedSpecialChars[i] == c {
			return true
		}
	}
	return false
}

// CheckField validates every byte of a field.
func CheckField(field []byte) error {
	for _, c := range field {
		if c > 127 {
			return ErrInvalidASCII
		}
		if !IsAllowedChar(c) {
			return &Error{Kind: KindSpecialChar, Char: c}
		}
	}
	return nil
}
