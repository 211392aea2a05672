package store

import (
	"strconv"
	"time"

	"github.com/tbruckmaier/redsim/lib/command"
	"github.com/tbruckmaier/redsim/lib/value"
)

// stringCommands implements the string value family.
type stringCommands struct {
	s *Store
}

func (f *stringCommands) RegisterCommands(r *command.Registry) {
	r.Register("get", command.ExactArgs("get", 1, f.get))
	r.Register("set", command.ExactArgs("set", 2, f.set))
	r.Register("getset", command.ExactArgs("getset", 2, f.getset))
	r.Register("setnx", command.ExactArgs("setnx", 2, f.setnx))
	r.Register("setex", command.ExactArgs("setex", 3, f.setex))
	r.Register("mget", command.MinArgs("mget", 1, f.mget))
	r.Register("mset", command.MinArgs("mset", 2, f.mset))
	r.Register("msetnx", command.MinArgs("msetnx", 2, f.msetnx))
	r.Register("incr", command.ExactArgs("incr", 1, f.incr))
	r.Register("incrby", command.ExactArgs("incrby", 2, f.incrby))
	r.Register("decr", command.ExactArgs("decr", 1, f.decr))
	r.Register("decrby", command.ExactArgs("decrby", 2, f.decrby))
	r.Register("append", command.ExactArgs("append", 2, f.append))
	r.Register("strlen", command.ExactArgs("strlen", 1, f.strlen))
}

func (f *stringCommands) get(args []string) (any, error) {
	str, ok, err := f.s.getString(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return string(str), nil
}

func (f *stringCommands) set(args []string) (any, error) {
	f.s.replaceValue(args[0], value.String(args[1]))
	return "OK", nil
}

func (f *stringCommands) getset(args []string) (any, error) {
	old, ok, err := f.s.getString(args[0])
	if err != nil {
		return nil, err
	}
	f.s.replaceValue(args[0], value.String(args[1]))
	if !ok {
		return nil, nil
	}
	return string(old), nil
}

func (f *stringCommands) setnx(args []string) (any, error) {
	if _, ok := f.s.lookup(args[0]); ok {
		return false, nil
	}
	f.s.replaceValue(args[0], value.String(args[1]))
	return true, nil
}

func (f *stringCommands) setex(args []string) (any, error) {
	seconds, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	f.s.replaceValue(args[0], value.String(args[2]))
	f.s.db().ledger.Schedule(args[0], f.s.clock.Now().Add(time.Duration(seconds)*time.Second))
	return "OK", nil
}

func (f *stringCommands) mget(args []string) (any, error) {
	results := make([]any, len(args))
	for i, key := range args {
		str, ok, err := f.s.getString(key)
		if err != nil || !ok {
			// mget never fails on type mismatch, it yields nil at that position
			results[i] = nil
			continue
		}
		results[i] = string(str)
	}
	return results, nil
}

func (f *stringCommands) mset(args []string) (any, error) {
	if len(args)%2 != 0 {
		return nil, command.ErrWrongArgCount("mset")
	}
	for i := 0; i < len(args); i += 2 {
		f.s.replaceValue(args[i], value.String(args[i+1]))
	}
	return "OK", nil
}

func (f *stringCommands) msetnx(args []string) (any, error) {
	if len(args)%2 != 0 {
		return nil, command.ErrWrongArgCount("msetnx")
	}
	for i := 0; i < len(args); i += 2 {
		if _, ok := f.s.lookup(args[i]); ok {
			return false, nil
		}
	}
	for i := 0; i < len(args); i += 2 {
		f.s.replaceValue(args[i], value.String(args[i+1]))
	}
	return true, nil
}

func (f *stringCommands) incr(args []string) (any, error) {
	n, err := f.s.incrementBy(args[0], 1)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (f *stringCommands) incrby(args []string) (any, error) {
	delta, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	n, err := f.s.incrementBy(args[0], delta)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (f *stringCommands) decr(args []string) (any, error) {
	n, err := f.s.incrementBy(args[0], -1)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (f *stringCommands) decrby(args []string) (any, error) {
	delta, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	n, err := f.s.incrementBy(args[0], -delta)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// incrementBy applies a signed delta to the integer stored at key, treating
// a missing key as 0. A pending expiration survives, the write is in place.
func (s *Store) incrementBy(key string, delta int64) (int64, error) {
	str, ok, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	var current int64
	if ok {
		current, err = strconv.ParseInt(string(str), 10, 64)
		if err != nil {
			return 0, command.ErrNotAnInteger()
		}
	}
	next := current + delta
	s.setValue(key, value.String(strconv.FormatInt(next, 10)))
	return next, nil
}

func (f *stringCommands) append(args []string) (any, error) {
	str, _, err := f.s.getString(args[0])
	if err != nil {
		return nil, err
	}
	next := string(str) + args[1]
	f.s.setValue(args[0], value.String(next))
	return len(next), nil
}

func (f *stringCommands) strlen(args []string) (any, error) {
	str, _, err := f.s.getString(args[0])
	if err != nil {
		return nil, err
	}
	return len(str), nil
}
