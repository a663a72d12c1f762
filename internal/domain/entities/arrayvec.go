package entities

// ArrayVec is fixed-capacity storage. It never grows past the capacity it
// was created with; TryPush reports false instead.
type ArrayVec[T any] struct {
	items []T
}

// NewArrayVec allocates storage for exactly capacity items up front
func NewArrayVec[T any](capacity int) *ArrayVec[T] {
	return &ArrayVec[T]{items: make([]T, 0, capacity)}
}

// NewArrayVecOn uses buf as backing memory. Existing contents of buf are
// discarded; the capacity is len(buf).
func NewArrayVecOn[T any](buf []T) *ArrayVec[T] {
	return &ArrayVec[T]{items: buf[:0:len(buf)]}
}

// Clear removes all items, keeping the backing memory
func (v *ArrayVec[T]) Clear() {
	var zero T
	for i := range v.items {
		v.items[i] = zero
	}
	v.items = v.items[:0]
}

// TryPush appends item if there is room
func (v *ArrayVec[T]) TryPush(item T) bool {
	if len(v.items) == cap(v.items) {
		return false
	}
	v.items = append(v.items, item)
	return true
}

// AsSlice returns the stored items. The slice must not be modified.
func (v *ArrayVec[T]) AsSlice() []T {
	return v.items
}

// Len returns the number of stored items
func (v *ArrayVec[T]) Len() int {
	return len(v.items)
}

// Cap returns the fixed capacity
func (v *ArrayVec[T]) Cap() int {
	return cap(v.items)
}
