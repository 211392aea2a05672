package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHsetHget(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, 1, mustDo(t, s, "hset", "h", "f", "v1"))
	assert.Equal(t, 0, mustDo(t, s, "hset", "h", "f", "v2"))
	assert.Equal(t, "v2", mustDo(t, s, "hget", "h", "f"))

	assert.Nil(t, mustDo(t, s, "hget", "h", "missing"))
	assert.Nil(t, mustDo(t, s, "hget", "missing", "f"))
}

func TestHsetnx(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, true, mustDo(t, s, "hsetnx", "h", "f", "v1"))
	assert.Equal(t, false, mustDo(t, s, "hsetnx", "h", "f", "v2"))
	assert.Equal(t, "v1", mustDo(t, s, "hget", "h", "f"))
}

func TestHdel(t *testing.T) {
	s, _ := newTestStore(t)

	mustDo(t, s, "hset", "h", "f1", "a")
	mustDo(t, s, "hset", "h", "f2", "b")

	assert.Equal(t, 1, mustDo(t, s, "hdel", "h", "f1", "nope"))
	assert.Equal(t, false, mustDo(t, s, "hexists", "h", "f1"))
	assert.Equal(t, true, mustDo(t, s, "hexists", "h", "f2"))

	// deleting the last field removes the key
	assert.Equal(t, 1, mustDo(t, s, "hdel", "h", "f2"))
	assert.Equal(t, false, mustDo(t, s, "exists", "h"))
	assert.Equal(t, 0, mustDo(t, s, "hdel", "missing", "f"))
}

func TestHashEnumeration(t *testing.T) {
	s, _ := newTestStore(t)

	require.Equal(t, "OK", mustDo(t, s, "hmset", "h", "f1", "a", "f2", "b"))

	assert.Equal(t, 2, mustDo(t, s, "hlen", "h"))
	assert.Equal(t, []string{"f1", "f2"}, mustDo(t, s, "hkeys", "h"))
	assert.Equal(t, []string{"a", "b"}, mustDo(t, s, "hvals", "h"))
	assert.Equal(t, map[string]string{"f1": "a", "f2": "b"}, mustDo(t, s, "hgetall", "h"))
	assert.Equal(t, []any{"a", nil, "b"}, mustDo(t, s, "hmget", "h", "f1", "nope", "f2"))

	assert.Equal(t, 0, mustDo(t, s, "hlen", "missing"))
	assert.Equal(t, []string{}, mustDo(t, s, "hkeys", "missing"))
	assert.Equal(t, map[string]string{}, mustDo(t, s, "hgetall", "missing"))

	_, err := s.Do("hmset", "h", "f1", "a", "dangling")
	require.Error(t, err)
}

func TestHincrby(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, int64(5), mustDo(t, s, "hincrby", "h", "n", "5"))
	assert.Equal(t, int64(2), mustDo(t, s, "hincrby", "h", "n", "-3"))
	assert.Equal(t, "2", mustDo(t, s, "hget", "h", "n"))

	mustDo(t, s, "hset", "h", "s", "abc")
	_, err := s.Do("hincrby", "h", "s", "1")
	require.Error(t, err)
	assert.Equal(t, "ERR value is not an integer or out of range", err.Error())

	_, err = s.Do("hincrby", "h", "n", "nan")
	require.Error(t, err)
}

func TestHashWrongType(t *testing.T) {
	s, _ := newTestStore(t)

	mustDo(t, s, "set", "k", "v")
	_, err := s.Do("hset", "k", "f", "v")
	require.Error(t, err)
	assert.Equal(t, "WRONGTYPE Operation against a key holding the wrong kind of value", err.Error())
}
