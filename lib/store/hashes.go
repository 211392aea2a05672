package store

import (
	"sort"
	"strconv"

	"github.com/tbruckmaier/redsim/lib/command"
)

// hashCommands implements the hash-of-fields value family.
type hashCommands struct {
	s *Store
}

func (f *hashCommands) RegisterCommands(r *command.Registry) {
	r.Register("hset", command.ExactArgs("hset", 3, f.hset))
	r.Register("hsetnx", command.ExactArgs("hsetnx", 3, f.hsetnx))
	r.Register("hget", command.ExactArgs("hget", 2, f.hget))
	r.Register("hmget", command.MinArgs("hmget", 2, f.hmget))
	r.Register("hmset", command.MinArgs("hmset", 3, f.hmset))
	r.Register("hdel", command.MinArgs("hdel", 2, f.hdel))
	r.Register("hexists", command.ExactArgs("hexists", 2, f.hexists))
	r.Register("hlen", command.ExactArgs("hlen", 1, f.hlen))
	r.Register("hkeys", command.ExactArgs("hkeys", 1, f.hkeys))
	r.Register("hvals", command.ExactArgs("hvals", 1, f.hvals))
	r.Register("hgetall", command.ExactArgs("hgetall", 1, f.hgetall))
	r.Register("hincrby", command.ExactArgs("hincrby", 3, f.hincrby))
}

func (f *hashCommands) hset(args []string) (any, error) {
	h, err := f.s.getOrCreateHash(args[0])
	if err != nil {
		return nil, err
	}
	_, existed := h[args[1]]
	h[args[1]] = args[2]
	if existed {
		return 0, nil
	}
	return 1, nil
}

func (f *hashCommands) hsetnx(args []string) (any, error) {
	h, err := f.s.getOrCreateHash(args[0])
	if err != nil {
		return nil, err
	}
	if _, existed := h[args[1]]; existed {
		return false, nil
	}
	h[args[1]] = args[2]
	return true, nil
}

func (f *hashCommands) hget(args []string) (any, error) {
	h, ok, err := f.s.getHash(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	fieldValue, ok := h[args[1]]
	if !ok {
		return nil, nil
	}
	return fieldValue, nil
}

func (f *hashCommands) hmget(args []string) (any, error) {
	h, _, err := f.s.getHash(args[0])
	if err != nil {
		return nil, err
	}
	results := make([]any, len(args)-1)
	for i, field := range args[1:] {
		if fieldValue, ok := h[field]; ok {
			results[i] = fieldValue
		}
	}
	return results, nil
}

func (f *hashCommands) hmset(args []string) (any, error) {
	if len(args[1:])%2 != 0 {
		return nil, command.ErrWrongArgCount("hmset")
	}
	h, err := f.s.getOrCreateHash(args[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i += 2 {
		h[args[i]] = args[i+1]
	}
	return "OK", nil
}

func (f *hashCommands) hdel(args []string) (any, error) {
	h, ok, err := f.s.getHash(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return 0, nil
	}
	deleted := 0
	for _, field := range args[1:] {
		if _, existed := h[field]; existed {
			delete(h, field)
			deleted++
		}
	}
	f.s.dropIfEmptyHash(args[0], h)
	return deleted, nil
}

func (f *hashCommands) hexists(args []string) (any, error) {
	h, ok, err := f.s.getHash(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return false, nil
	}
	_, existed := h[args[1]]
	return existed, nil
}

func (f *hashCommands) hlen(args []string) (any, error) {
	h, _, err := f.s.getHash(args[0])
	if err != nil {
		return nil, err
	}
	return len(h), nil
}

func (f *hashCommands) hkeys(args []string) (any, error) {
	h, _, err := f.s.getHash(args[0])
	if err != nil {
		return nil, err
	}
	fields := make([]string, 0, len(h))
	for field := range h {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields, nil
}

func (f *hashCommands) hvals(args []string) (any, error) {
	h, _, err := f.s.getHash(args[0])
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(h))
	for _, fieldValue := range h {
		values = append(values, fieldValue)
	}
	sort.Strings(values)
	return values, nil
}

func (f *hashCommands) hgetall(args []string) (any, error) {
	h, _, err := f.s.getHash(args[0])
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(h))
	for field, fieldValue := range h {
		out[field] = fieldValue
	}
	return out, nil
}

func (f *hashCommands) hincrby(args []string) (any, error) {
	delta, err := command.ParseInt(args[2])
	if err != nil {
		return nil, err
	}
	h, err := f.s.getOrCreateHash(args[0])
	if err != nil {
		return nil, err
	}
	var current int64
	if raw, ok := h[args[1]]; ok {
		current, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, command.ErrNotAnInteger()
		}
	}
	next := current + delta
	h[args[1]] = strconv.FormatInt(next, 10)
	return next, nil
}
