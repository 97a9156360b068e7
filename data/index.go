package data

// Keyed is implemented by every catalog entity; Key returns the stable,
// kind-unique id.
type Keyed interface {
	Key() string
}

// Index is the immutable per-kind entity index: the ordered list as authored
// plus a derived id lookup map. It is built once and never mutated, so any
// number of readers may use it concurrently without locks.
type Index[T Keyed] struct {
	items []T
	byID  map[string]int
}

// NewIndex builds an index over items. When two records share an id the first
// one wins the lookup slot; the duplicate is still present in the ordered
// list and is reported separately by the loader's quality report.
func NewIndex[T Keyed](items []T) *Index[T] {
	byID := make(map[string]int, len(items))
	for i := range items {
		id := items[i].Key()
		if _, exists := byID[id]; !exists {
			byID[id] = i
		}
	}
	return &Index[T]{items: items, byID: byID}
}

// All returns the ordered entity list. Callers must treat it as read-only.
func (ix *Index[T]) All() []T {
	return ix.items
}

// Len returns the number of indexed entities.
func (ix *Index[T]) Len() int {
	return len(ix.items)
}

// GetByID returns the entity for id. Absence is a normal outcome reported
// through the second return value, never through a panic.
func (ix *Index[T]) GetByID(id string) (T, bool) {
	if i, ok := ix.byID[id]; ok {
		return ix.items[i], true
	}
	var zero T
	return zero, false
}

// Has reports whether id resolves in the index.
func (ix *Index[T]) Has(id string) bool {
	_, ok := ix.byID[id]
	return ok
}
