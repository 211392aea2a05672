package store

import (
	"github.com/tbruckmaier/redsim/lib/command"
)

// listCommands implements the list value family.
type listCommands struct {
	s *Store
}

func (f *listCommands) RegisterCommands(r *command.Registry) {
	r.Register("lpush", command.MinArgs("lpush", 2, f.lpush))
	r.Register("rpush", command.MinArgs("rpush", 2, f.rpush))
	r.Register("lpop", command.ExactArgs("lpop", 1, f.lpop))
	r.Register("rpop", command.ExactArgs("rpop", 1, f.rpop))
	r.Register("llen", command.ExactArgs("llen", 1, f.llen))
	r.Register("lrange", command.ExactArgs("lrange", 3, f.lrange))
	r.Register("lindex", command.ExactArgs("lindex", 2, f.lindex))
	r.Register("lset", command.ExactArgs("lset", 3, f.lset))
	r.Register("lrem", command.ExactArgs("lrem", 3, f.lrem))
	r.Register("ltrim", command.ExactArgs("ltrim", 3, f.ltrim))
	r.Register("rpoplpush", command.ExactArgs("rpoplpush", 2, f.rpoplpush))
}

func (f *listCommands) lpush(args []string) (any, error) {
	l, err := f.s.getOrCreateList(args[0])
	if err != nil {
		return nil, err
	}
	for _, elem := range args[1:] {
		l.Items = append([]string{elem}, l.Items...)
	}
	return len(l.Items), nil
}

func (f *listCommands) rpush(args []string) (any, error) {
	l, err := f.s.getOrCreateList(args[0])
	if err != nil {
		return nil, err
	}
	l.Items = append(l.Items, args[1:]...)
	return len(l.Items), nil
}

func (f *listCommands) lpop(args []string) (any, error) {
	l, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok || len(l.Items) == 0 {
		return nil, nil
	}
	head := l.Items[0]
	l.Items = l.Items[1:]
	f.s.dropIfEmptyList(args[0], l)
	return head, nil
}

func (f *listCommands) rpop(args []string) (any, error) {
	l, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok || len(l.Items) == 0 {
		return nil, nil
	}
	tail := l.Items[len(l.Items)-1]
	l.Items = l.Items[:len(l.Items)-1]
	f.s.dropIfEmptyList(args[0], l)
	return tail, nil
}

func (f *listCommands) llen(args []string) (any, error) {
	l, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return 0, nil
	}
	return len(l.Items), nil
}

func (f *listCommands) lrange(args []string) (any, error) {
	start, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	stop, err := command.ParseInt(args[2])
	if err != nil {
		return nil, err
	}

	l, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	from, to := sliceBounds(len(l.Items), start, stop)
	if from > to {
		return []string{}, nil
	}
	out := make([]string, to-from+1)
	copy(out, l.Items[from:to+1])
	return out, nil
}

// sliceBounds resolves possibly-negative start/stop indices against a list
// of length n, clamping to valid positions. stop is inclusive.
func sliceBounds(n int, start, stop int64) (int, int) {
	from := int(start)
	to := int(stop)
	if from < 0 {
		from += n
	}
	if to < 0 {
		to += n
	}
	if from < 0 {
		from = 0
	}
	if to >= n {
		to = n - 1
	}
	return from, to
}

func (f *listCommands) lindex(args []string) (any, error) {
	index, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	l, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	i := int(index)
	if i < 0 {
		i += len(l.Items)
	}
	if i < 0 || i >= len(l.Items) {
		return nil, nil
	}
	return l.Items[i], nil
}

func (f *listCommands) lset(args []string) (any, error) {
	index, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	l, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, command.ErrNoSuchKey()
	}
	i := int(index)
	if i < 0 {
		i += len(l.Items)
	}
	if i < 0 || i >= len(l.Items) {
		return nil, command.ErrIndexOutOfRange()
	}
	l.Items[i] = args[2]
	return "OK", nil
}

func (f *listCommands) lrem(args []string) (any, error) {
	count, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	l, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return 0, nil
	}

	removed := 0
	keep := make([]string, 0, len(l.Items))
	switch {
	case count >= 0:
		limit := int(count)
		for _, elem := range l.Items {
			if elem == args[2] && (limit == 0 || removed < limit) {
				removed++
				continue
			}
			keep = append(keep, elem)
		}
	default:
		// negative count removes from the tail
		limit := int(-count)
		for i := len(l.Items) - 1; i >= 0; i-- {
			elem := l.Items[i]
			if elem == args[2] && removed < limit {
				removed++
				continue
			}
			keep = append([]string{elem}, keep...)
		}
	}
	l.Items = keep
	f.s.dropIfEmptyList(args[0], l)
	return removed, nil
}

func (f *listCommands) ltrim(args []string) (any, error) {
	start, err := command.ParseInt(args[1])
	if err != nil {
		return nil, err
	}
	stop, err := command.ParseInt(args[2])
	if err != nil {
		return nil, err
	}

	l, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return "OK", nil
	}

	from, to := sliceBounds(len(l.Items), start, stop)
	if from > to {
		l.Items = nil
	} else {
		l.Items = append([]string(nil), l.Items[from:to+1]...)
	}
	f.s.dropIfEmptyList(args[0], l)
	return "OK", nil
}

func (f *listCommands) rpoplpush(args []string) (any, error) {
	src, ok, err := f.s.getList(args[0])
	if err != nil {
		return nil, err
	}
	if !ok || len(src.Items) == 0 {
		return nil, nil
	}
	// destination type is checked before the source is mutated
	dst, err := f.s.getOrCreateList(args[1])
	if err != nil {
		return nil, err
	}

	elem := src.Items[len(src.Items)-1]
	src.Items = src.Items[:len(src.Items)-1]
	dst.Items = append([]string{elem}, dst.Items...)
	f.s.dropIfEmptyList(args[0], src)
	return elem, nil
}
