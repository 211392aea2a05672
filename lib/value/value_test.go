package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeName(t *testing.T) {
	assert.Equal(t, "none", TypeName(nil))
	assert.Equal(t, "string", TypeName(String("x")))
	assert.Equal(t, "list", TypeName(&List{}))
	assert.Equal(t, "set", TypeName(Set{}))
	assert.Equal(t, "hash", TypeName(Hash{}))
}

type bogusValue struct{}

func (bogusValue) Kind() Kind { return Kind(99) }

func TestTypeNameUnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		TypeName(bogusValue{})
	})
}

func TestSetOperations(t *testing.T) {
	s := Set{}

	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Contains("a"))

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.False(t, s.Contains("a"))
}
