package value

import "fmt"

// --------------------------------------------------------------------------
// Kind Classification
// --------------------------------------------------------------------------

// Kind classifies the variant a stored value holds.
type Kind int

const (
	KindString Kind = iota
	KindList
	KindSet
	KindHash
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindHash:
		return "hash"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Value Interface
// --------------------------------------------------------------------------

// Value is the polymorphic entry stored under a key. The keyspace core
// treats it opaquely except for classification; the value command families
// down-cast to the concrete variant they operate on.
type Value interface {
	Kind() Kind
}

// TypeName returns the protocol type name for a stored value, or "none" for
// a nil (absent) value.
//
// A value whose kind matches no known variant indicates a defect in a value
// family, not bad input, and panics.
func TypeName(v Value) string {
	if v == nil {
		return "none"
	}
	switch v.Kind() {
	case KindString, KindList, KindSet, KindHash:
		return v.Kind().String()
	default:
		panic(fmt.Sprintf("value: unknown kind %d for %T", v.Kind(), v))
	}
}

// --------------------------------------------------------------------------
// Variants
// --------------------------------------------------------------------------

// String is a plain string value.
type String string

func (String) Kind() Kind { return KindString }

// List is an ordered sequence of elements. Handlers mutate Items in place
// through the pointer stored in the database.
type List struct {
	Items []string
}

func (*List) Kind() Kind { return KindList }

// Set is an unordered collection of unique members.
type Set map[string]struct{}

func (Set) Kind() Kind { return KindSet }

// Add inserts a member and reports whether it was newly added.
func (s Set) Add(member string) bool {
	if _, ok := s[member]; ok {
		return false
	}
	s[member] = struct{}{}
	return true
}

// Remove deletes a member and reports whether it was present.
func (s Set) Remove(member string) bool {
	if _, ok := s[member]; !ok {
		return false
	}
	delete(s, member)
	return true
}

// Contains reports membership.
func (s Set) Contains(member string) bool {
	_, ok := s[member]
	return ok
}

// Hash is a field-to-value mapping.
type Hash map[string]string

func (Hash) Kind() Kind { return KindHash }
