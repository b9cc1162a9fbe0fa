package readmodel

import "time"

// entry es el resultado cacheado de una operación: valor, instante de
// cómputo y TTL propio. Sin estado global — cada Service lleva las suyas.
// Frescura: now - computedAt < ttl. Un TTL <= 0 desactiva la cache.
type entry[T any] struct {
	value      T
	computedAt time.Time
	ttl        time.Duration
	valid      bool
}

func (e *entry[T]) get(now time.Time) (T, bool) {
	if !e.valid || e.ttl <= 0 || now.Sub(e.computedAt) >= e.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (e *entry[T]) put(v T, now time.Time) {
	e.value = v
	e.computedAt = now
	e.valid = true
}

func (e *entry[T]) invalidate() {
	var zero T
	e.value = zero
	e.valid = false
}
