package entities

import "fmt"

// ErrorKind classifies a parse failure
type ErrorKind int

const (
	// KindInvalidASCII means a field held a byte outside 0-127
	KindInvalidASCII ErrorKind = iota + 1
	// KindSpecialChar means a field held an ASCII byte that is not alphanumeric
	// and not in AllowedSpecialChars
	KindSpecialChar
	// KindInvalidGeneration means the generation field is not a valid number
	KindInvalidGeneration
	// KindTooManyRecords means the input has more records than the storage holds
	KindTooManyRecords
	// KindTooFewFields means a record lacks a required field
	KindTooFewFields
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidASCII:
		return "invalid ascii"
	case KindSpecialChar:
		return "special character"
	case KindInvalidGeneration:
		return "invalid generation"
	case KindTooManyRecords:
		return "too many records"
	case KindTooFewFields:
		return "too few fields"
	default:
		return "unknown"
	}
}

// Error is returned by the CSV parser. All parse errors are permanent for the
// input that produced them.
type Error struct {
	Kind ErrorKind
	// Char is the offending character, set only for KindSpecialChar
	Char byte
}

func (e *Error) Error() string {
	if e.Kind == KindSpecialChar {
		return fmt.Sprintf("sbat: %s %q", e.Kind, rune(e.Char))
	}
	return "sbat: " + e.Kind.String()
}

// Is matches on Kind so that errors.Is(err, ErrSpecialChar) holds for any
// offending character.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel parse errors for use with errors.Is
var (
	ErrInvalidASCII      = &Error{Kind: KindInvalidASCII}
	ErrSpecialChar       = &Error{Kind: KindSpecialChar}
	ErrInvalidGeneration = &Error{Kind: KindInvalidGeneration}
	ErrTooManyRecords    = &Error{Kind: KindTooManyRecords}
	ErrTooFewFields      = &Error{Kind: KindTooFewFields}
)
