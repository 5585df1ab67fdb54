package memory

import "github.com/doodlesbykumbi/newsdesk/pkg/server/store"

// table stages writes over a base map. A staged nil marks a delete.
type table[V any] struct {
	base   map[store.Key]V
	staged map[store.Key]*V
}

func newTable[V any](base map[store.Key]V) *table[V] {
	return &table[V]{base: base, staged: map[store.Key]*V{}}
}

func (t *table[V]) get(k store.Key) (V, bool) {
	if v, ok := t.staged[k]; ok {
		if v == nil {
			var zero V
			return zero, false
		}
		return *v, true
	}
	v, ok := t.base[k]
	return v, ok
}

func (t *table[V]) has(k store.Key) bool {
	_, ok := t.get(k)
	return ok
}

func (t *table[V]) put(k store.Key, v V) {
	t.staged[k] = &v
}

func (t *table[V]) del(k store.Key) {
	t.staged[k] = nil
}

func (t *table[V]) commit() {
	for k, v := range t.staged {
		if v == nil {
			delete(t.base, k)
			continue
		}
		t.base[k] = *v
	}
}
