package store

import (
	"sort"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/tbruckmaier/redsim/lib/command"
	"github.com/tbruckmaier/redsim/lib/store/internal"
	"github.com/tbruckmaier/redsim/lib/value"
)

// keyspaceCommands implements the key-space command family: existence,
// deletion, renaming, pattern listing, TTL, type classification and the
// administrative no-ops.
type keyspaceCommands struct {
	s *Store
}

func (f *keyspaceCommands) RegisterCommands(r *command.Registry) {
	r.Register("exists", command.ExactArgs("exists", 1, f.exists))
	r.Register("del", command.MinArgs("del", 1, f.del))
	r.Register("rename", command.ExactArgs("rename", 2, f.rename))
	r.Register("renamenx", command.ExactArgs("renamenx", 2, f.renamenx))
	r.Register("expire", command.ExactArgs("expire", 2, f.expire))
	r.Register("expireat", command.ExactArgs("expireat", 2, f.expireat))
	r.Register("persist", command.ExactArgs("persist", 1, f.persist))
	r.Register("ttl", command.ExactArgs("ttl", 1, f.ttl))
	r.Register("type", command.ExactArgs("type", 1, f.typeOf))
	r.Register("keys", command.ExactArgs("keys", 1, f.keys))
	r.Register("dbsize", command.ExactArgs("dbsize", 0, f.dbsize))
	r.Register("flushdb", command.ExactArgs("flushdb", 0, f.flushdb))
	r.Register("flushall", command.ExactArgs("flushall", 0, f.flushall))
	r.Register("select", command.ExactArgs("select", 1, f.selectDB))
	r.Register("randomkey", command.ExactArgs("randomkey", 0, f.randomkey))

	// administrative no-ops with fixed acknowledgements
	r.Register("ping", command.ExactArgs("ping", 0, f.ping))
	r.Register("echo", command.ExactArgs("echo", 1, f.echo))
	r.Register("auth", command.ExactArgs("auth", 1, f.auth))
	r.Register("save", command.ExactArgs("save", 0, f.save))
	r.Register("bgsave", command.ExactArgs("bgsave", 0, f.bgsave))
	r.Register("bgrewriteaof", command.ExactArgs("bgrewriteaof", 0, f.bgrewriteaof))
	r.Register("lastsave", command.ExactArgs("lastsave", 0, f.lastsave))
}

func (f *keyspaceCommands) exists(args []string) (any, error) {
	_, ok := f.s.lookup(args[0])
	return ok, nil
}

func (f *keyspaceCommands) del(args []string) (any, error) {
	count := 0
	for _, key := range args {
		if f.s.removeKey(key) {
			count++
		}
	}
	return count, nil
}

func (f *keyspaceCommands) rename(args []string) (any, error) {
	if err := f.s.renameKey(args[0], args[1]); err != nil {
		return nil, err
	}
	return "OK", nil
}

func (f *keyspaceCommands) renamenx(args []string) (any, error) {
	src, dst := args[0], args[1]
	if src == dst {
		return nil, command.ErrSameObjects()
	}
	if _, ok := f.s.lookup(src); !ok {
		return nil, command.ErrNoSuchKey()
	}
	if _, ok := f.s.lookup(dst); ok {
		return false, nil
	}
	if err := f.s.renameKey(src, dst); err != nil {
		return nil, err
	}
	return true, nil
}

// renameKey moves the value from src to dst. The expiration ledger tracks
// key identity, not value identity, so any pending expiration of src is
// dropped, as is a pending expiration of an overwritten dst.
func (s *Store) renameKey(src, dst string) error {
	if src == dst {
		return command.ErrSameObjects()
	}
	v, ok := s.lookup(src)
	if !ok {
		return command.ErrNoSuchKey()
	}
	s.removeKey(src)
	s.replaceValue(dst, v)
	return nil
}

func (f *keyspaceCommands) expire(args []string) (any, error) {
	seconds, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	at := f.s.clock.Now().Add(time.Duration(seconds) * time.Second)
	return f.s.expireKeyAt(args[0], at), nil
}

func (f *keyspaceCommands) expireat(args []string) (any, error) {
	timestamp, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	return f.s.expireKeyAt(args[0], time.Unix(timestamp, 0)), nil
}

// expireKeyAt installs or replaces the expiration entry for an existing key.
// A deadline in the past is still recorded; the next sweep collects it.
func (s *Store) expireKeyAt(key string, at time.Time) bool {
	d := s.db()
	if _, ok := d.data.Load(key); !ok {
		return false
	}
	d.ledger.Schedule(key, at)
	return true
}

func (f *keyspaceCommands) persist(args []string) (any, error) {
	_, ok := f.s.db().ledger.Cancel(args[0])
	return ok, nil
}

func (f *keyspaceCommands) ttl(args []string) (any, error) {
	deadline, ok := f.s.db().ledger.Deadline(args[0])
	if !ok {
		return int64(-1), nil
	}
	remaining := deadline.Sub(f.s.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	return int64(remaining / time.Second), nil
}

func (f *keyspaceCommands) typeOf(args []string) (any, error) {
	v, ok := f.s.lookup(args[0])
	if !ok {
		return "none", nil
	}
	return value.TypeName(v), nil
}

func (f *keyspaceCommands) keys(args []string) (any, error) {
	re, err := internal.TranslatePattern(args[0])
	if err != nil {
		return nil, command.NewError(command.RetCProtocol, "ERR invalid pattern")
	}

	matched := make([]string, 0)
	f.s.db().data.Range(func(key string, _ value.Value) bool {
		if re.MatchString(key) {
			matched = append(matched, key)
		}
		return true
	})
	sort.Strings(matched)
	return matched, nil
}

func (f *keyspaceCommands) dbsize(_ []string) (any, error) {
	return f.s.db().data.Size(), nil
}

func (f *keyspaceCommands) flushdb(_ []string) (any, error) {
	keys := make([]string, 0)
	f.s.db().data.Range(func(key string, _ value.Value) bool {
		keys = append(keys, key)
		return true
	})
	for _, key := range keys {
		f.s.removeKey(key)
	}
	return "OK", nil
}

func (f *keyspaceCommands) flushall(_ []string) (any, error) {
	f.s.dbs = xsync.NewMapOf[int, *database]()
	f.s.curr = DefaultDB
	return "OK", nil
}

func (f *keyspaceCommands) selectDB(args []string) (any, error) {
	index, err := command.ParseInt(args[0])
	if err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, command.ErrInvalidDBIndex()
	}
	f.s.curr = int(index)
	return "OK", nil
}

func (f *keyspaceCommands) randomkey(_ []string) (any, error) {
	keys := make([]string, 0)
	f.s.db().data.Range(func(key string, _ value.Value) bool {
		keys = append(keys, key)
		return true
	})
	if len(keys) == 0 {
		return nil, nil
	}
	return keys[f.s.rnd.Intn(len(keys))], nil
}

func (f *keyspaceCommands) ping(_ []string) (any, error) {
	return "PONG", nil
}

func (f *keyspaceCommands) echo(args []string) (any, error) {
	return args[0], nil
}

func (f *keyspaceCommands) auth(_ []string) (any, error) {
	return "OK", nil
}

func (f *keyspaceCommands) save(_ []string) (any, error) {
	return "OK", nil
}

func (f *keyspaceCommands) bgsave(_ []string) (any, error) {
	return "Background saving started", nil
}

func (f *keyspaceCommands) bgrewriteaof(_ []string) (any, error) {
	return "Background append only file rewriting started", nil
}

func (f *keyspaceCommands) lastsave(_ []string) (any, error) {
	return f.s.clock.Now().Unix(), nil
}
