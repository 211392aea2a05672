package store

import (
	"sort"

	"github.com/tbruckmaier/redsim/lib/command"
	"github.com/tbruckmaier/redsim/lib/value"
)

// setCommands implements the set value family.
type setCommands struct {
	s *Store
}

func (f *setCommands) RegisterCommands(r *command.Registry) {
	r.Register("sadd", command.MinArgs("sadd", 2, f.sadd))
	r.Register("srem", command.MinArgs("srem", 2, f.srem))
	r.Register("sismember", command.ExactArgs("sismember", 2, f.sismember))
	r.Register("smembers", command.ExactArgs("smembers", 1, f.smembers))
	r.Register("scard", command.ExactArgs("scard", 1, f.scard))
	r.Register("spop", command.ExactArgs("spop", 1, f.spop))
	r.Register("srandmember", command.ExactArgs("srandmember", 1, f.srandmember))
	r.Register("smove", command.ExactArgs("smove", 3, f.smove))
	r.Register("sinter", command.MinArgs("sinter", 1, f.sinter))
	r.Register("sunion", command.MinArgs("sunion", 1, f.sunion))
	r.Register("sdiff", command.MinArgs("sdiff", 1, f.sdiff))
}

func (f *setCommands) sadd(args []string) (any, error) {
	set, err := f.s.getOrCreateSet(args[0])
	if err != nil {
		return nil, err
	}
	added := 0
	for _, member := range args[1:] {
		if set.Add(member) {
			added++
		}
	}
	return added, nil
}

func (f *setCommands) srem(args []string) (any, error) {
	set, ok, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return 0, nil
	}
	removed := 0
	for _, member := range args[1:] {
		if set.Remove(member) {
			removed++
		}
	}
	f.s.dropIfEmptySet(args[0], set)
	return removed, nil
}

func (f *setCommands) sismember(args []string) (any, error) {
	set, ok, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	return ok && set.Contains(args[1]), nil
}

func (f *setCommands) smembers(args []string) (any, error) {
	set, _, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	return sortedMembers(set), nil
}

func (f *setCommands) scard(args []string) (any, error) {
	set, _, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	return len(set), nil
}

func (f *setCommands) spop(args []string) (any, error) {
	set, ok, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	if !ok || len(set) == 0 {
		return nil, nil
	}
	member := f.s.pickMember(set)
	set.Remove(member)
	f.s.dropIfEmptySet(args[0], set)
	return member, nil
}

func (f *setCommands) srandmember(args []string) (any, error) {
	set, ok, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	if !ok || len(set) == 0 {
		return nil, nil
	}
	return f.s.pickMember(set), nil
}

// pickMember selects a uniformly random member of a non-empty set.
func (s *Store) pickMember(set value.Set) string {
	n := s.rnd.Intn(len(set))
	for member := range set {
		if n == 0 {
			return member
		}
		n--
	}
	panic("store: empty set in pickMember")
}

func (f *setCommands) smove(args []string) (any, error) {
	src, ok, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	if !ok || !src.Contains(args[2]) {
		return false, nil
	}
	dst, err := f.s.getOrCreateSet(args[1])
	if err != nil {
		return nil, err
	}
	src.Remove(args[2])
	dst.Add(args[2])
	f.s.dropIfEmptySet(args[0], src)
	return true, nil
}

func (f *setCommands) sinter(args []string) (any, error) {
	first, ok, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	result := value.Set{}
	for member := range first {
		result.Add(member)
	}
	for _, key := range args[1:] {
		other, ok, err := f.s.getSet(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []string{}, nil
		}
		for member := range result {
			if !other.Contains(member) {
				result.Remove(member)
			}
		}
	}
	return sortedMembers(result), nil
}

func (f *setCommands) sunion(args []string) (any, error) {
	result := value.Set{}
	for _, key := range args {
		set, _, err := f.s.getSet(key)
		if err != nil {
			return nil, err
		}
		for member := range set {
			result.Add(member)
		}
	}
	return sortedMembers(result), nil
}

func (f *setCommands) sdiff(args []string) (any, error) {
	first, ok, err := f.s.getSet(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	result := value.Set{}
	for member := range first {
		result.Add(member)
	}
	for _, key := range args[1:] {
		other, _, err := f.s.getSet(key)
		if err != nil {
			return nil, err
		}
		for member := range other {
			result.Remove(member)
		}
	}
	return sortedMembers(result), nil
}

// sortedMembers returns the members of a set in lexicographic order. A real
// server returns them unordered; sorting keeps results assertable.
func sortedMembers(set value.Set) []string {
	members := make([]string, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	sort.Strings(members)
	return members
}
