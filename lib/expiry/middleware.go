package expiry

import "github.com/tbruckmaier/redsim/lib/command"

// Store is the inner layer the middleware forwards to: a dispatcher that can
// also sweep its current database's expired keys.
type Store interface {
	command.Dispatcher

	// SweepExpired deletes every key whose expiration instant has passed
	// and returns the number of keys removed.
	SweepExpired() int
}

// Middleware enforces lazy, passive TTL expiration: before forwarding any
// command to the store, it sweeps expired keys of the current database.
// Expiration therefore only becomes visible as a side effect of the next
// command, including unrelated reads.
type Middleware struct {
	next Store
}

// Wrap creates the expiry middleware around a store.
func Wrap(next Store) *Middleware {
	return &Middleware{next: next}
}

// Do sweeps, then forwards.
func (m *Middleware) Do(name string, args ...string) (any, error) {
	m.next.SweepExpired()
	return m.next.Do(name, args...)
}
