package interfaces

// Veclike is caller-owned bounded storage. Implementations must never grow
// past their capacity: TryPush reports false when full.
type Veclike[T any] interface {
	// Clear removes all items
	Clear()

	// TryPush appends an item, returning false if storage is full
	TryPush(item T) bool

	// AsSlice returns a read-only view of the stored items
	AsSlice() []T
}
