// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

// Logger is the structured logger used by gateways and orchestrators.
// The CSV parser and revocation matching never log.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is a structured log field
type Field struct {
	Key   string
	Value any
}

// F creates a new Field
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger discards everything (useful for tests)
type NoOpLogger struct{}

// Debug does nothing
func (NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing
func (NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing
func (NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing
func (NoOpLogger) Error(_ string, _ ...Field) {}
