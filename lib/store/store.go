package store

import (
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/tbruckmaier/redsim/lib/command"
	"github.com/tbruckmaier/redsim/lib/store/internal"
	"github.com/tbruckmaier/redsim/lib/value"
)

// DefaultDB is the database index selected at construction and after flushall.
const DefaultDB = 0

// --------------------------------------------------------------------------
// Store
// --------------------------------------------------------------------------

// Store is the authoritative key space: one or more databases indexed by a
// small non-negative integer, created lazily on first access, with a single
// mutable current-database selector.
//
// Every command operates on the database that is current at call time. The
// store is single-caller by design; it adds no synchronization of its own
// beyond what the underlying maps provide structurally.
type Store struct {
	clock clockwork.Clock
	dbs   *xsync.MapOf[int, *database]
	curr  int
	reg   *command.Registry
	rnd   *rand.Rand
}

// database is one independent key-value namespace with its own expiration
// ledger.
type database struct {
	data   *xsync.MapOf[string, value.Value]
	ledger *internal.Ledger
}

func newDatabase() *database {
	return &database{
		data:   xsync.NewMapOf[string, value.Value](),
		ledger: internal.NewLedger(),
	}
}

// Options configures a Store during initialization.
type Options struct {
	// Clock supplies the current time for TTL bookkeeping. Defaults to the
	// real clock; tests inject clockwork.NewFakeClock().
	Clock clockwork.Clock
}

// New creates a Store with the keyspace and value command families
// registered into one flat dispatch registry.
func New(opts *Options) *Store {
	if opts == nil {
		opts = &Options{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Store{
		clock: clock,
		dbs:   xsync.NewMapOf[int, *database](),
		curr:  DefaultDB,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	s.reg = command.NewRegistry(
		&keyspaceCommands{s},
		&stringCommands{s},
		&listCommands{s},
		&setCommands{s},
		&hashCommands{s},
	)

	return s
}

// Do dispatches a command against the current database.
func (s *Store) Do(name string, args ...string) (any, error) {
	return s.reg.Do(name, args...)
}

// Handles reports whether the store's registry binds the given command name.
func (s *Store) Handles(name string) bool {
	return s.reg.Has(name)
}

// --------------------------------------------------------------------------
// Database Access
// --------------------------------------------------------------------------

// db returns the current database, creating it on first reference.
func (s *Store) db() *database {
	d, _ := s.dbs.LoadOrCompute(s.curr, newDatabase)
	return d
}

// lookup returns the stored value for a key in the current database.
func (s *Store) lookup(key string) (value.Value, bool) {
	return s.db().data.Load(key)
}

// setValue writes a value without touching the expiration ledger. Used by
// in-place modifications (list/set/hash mutations) that keep a pending TTL.
func (s *Store) setValue(key string, v value.Value) {
	s.db().data.Store(key, v)
}

// replaceValue writes a value and cancels any pending expiration, mirroring
// the wholesale-overwrite lifecycle of set-style commands.
func (s *Store) replaceValue(key string, v value.Value) {
	d := s.db()
	d.ledger.Cancel(key)
	d.data.Store(key, v)
}

// removeKey deletes a key from the current database, cancelling its
// expiration entry first so the ledger never dangles. Reports whether the
// key existed.
func (s *Store) removeKey(key string) bool {
	d := s.db()
	d.ledger.Cancel(key)
	_, existed := d.data.LoadAndDelete(key)
	return existed
}

// --------------------------------------------------------------------------
// Expiry Sweep
// --------------------------------------------------------------------------

// SweepExpired deletes every key of the current database whose expiration
// instant has passed, in ascending-time order, and returns the number of
// keys removed. The ledger is sorted, so the sweep is a prefix scan that
// stops at the first entry still in the future.
func (s *Store) SweepExpired() int {
	d := s.db()
	now := s.clock.Now()

	removed := 0
	for {
		entry, ok := d.ledger.Peek()
		if !ok || entry.At.After(now) {
			break
		}
		s.removeKey(entry.Key)
		removed++
	}
	return removed
}

// --------------------------------------------------------------------------
// Typed Variant Accessors
// --------------------------------------------------------------------------

// getString loads a key and asserts it holds a string.
func (s *Store) getString(key string) (value.String, bool, error) {
	v, ok := s.lookup(key)
	if !ok {
		return "", false, nil
	}
	str, ok := v.(value.String)
	if !ok {
		return "", false, command.ErrWrongType()
	}
	return str, true, nil
}

// getList loads a key and asserts it holds a list.
func (s *Store) getList(key string) (*value.List, bool, error) {
	v, ok := s.lookup(key)
	if !ok {
		return nil, false, nil
	}
	l, ok := v.(*value.List)
	if !ok {
		return nil, false, command.ErrWrongType()
	}
	return l, true, nil
}

// getOrCreateList returns the list at key, inserting an empty one if absent.
func (s *Store) getOrCreateList(key string) (*value.List, error) {
	l, ok, err := s.getList(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		l = &value.List{}
		s.setValue(key, l)
	}
	return l, nil
}

// getSet loads a key and asserts it holds a set.
func (s *Store) getSet(key string) (value.Set, bool, error) {
	v, ok := s.lookup(key)
	if !ok {
		return nil, false, nil
	}
	set, ok := v.(value.Set)
	if !ok {
		return nil, false, command.ErrWrongType()
	}
	return set, true, nil
}

// getOrCreateSet returns the set at key, inserting an empty one if absent.
func (s *Store) getOrCreateSet(key string) (value.Set, error) {
	set, ok, err := s.getSet(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		set = value.Set{}
		s.setValue(key, set)
	}
	return set, nil
}

// getHash loads a key and asserts it holds a hash.
func (s *Store) getHash(key string) (value.Hash, bool, error) {
	v, ok := s.lookup(key)
	if !ok {
		return nil, false, nil
	}
	h, ok := v.(value.Hash)
	if !ok {
		return nil, false, command.ErrWrongType()
	}
	return h, true, nil
}

// getOrCreateHash returns the hash at key, inserting an empty one if absent.
func (s *Store) getOrCreateHash(key string) (value.Hash, error) {
	h, ok, err := s.getHash(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		h = value.Hash{}
		s.setValue(key, h)
	}
	return h, nil
}

// dropIfEmptyList removes a list key once its last element is popped,
// cancelling any pending expiration with it.
func (s *Store) dropIfEmptyList(key string, l *value.List) {
	if len(l.Items) == 0 {
		s.removeKey(key)
	}
}

// dropIfEmptySet removes a set key once its last member is gone.
func (s *Store) dropIfEmptySet(key string, set value.Set) {
	if len(set) == 0 {
		s.removeKey(key)
	}
}

// dropIfEmptyHash removes a hash key once its last field is gone.
func (s *Store) dropIfEmptyHash(key string, h value.Hash) {
	if len(h) == 0 {
		s.removeKey(key)
	}
}
