// Package mailbox provides a single-slot buffer where the latest item wins.
package mailbox

import "context"

// Mailbox is NOT a queue. It holds at most one pending item: Put replaces
// whatever is waiting, Take blocks until something arrives.
type Mailbox[T any] struct {
	slot chan T
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{slot: make(chan T, 1)}
}

// Put stores j, dropping any item not yet taken. It never blocks
// as long as there is a single producer.
func (m *Mailbox[T]) Put(j T) {
	for {
		select {
		case m.slot <- j:
			return
		default:
		}
		select {
		case <-m.slot:
		default:
		}
	}
}

// Take blocks until an item is available or ctx is done.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	select {
	case j := <-m.slot:
		return j, true
	case <-ctx.Done():
		var zero T
		return zero, false
	}
}

// HasJob reports whether an item is currently waiting.
func (m *Mailbox[T]) HasJob() bool {
	return len(m.slot) > 0
}
