package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetRoundtrip(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Nil(t, mustDo(t, s, "get", "k"))
	assert.Equal(t, "OK", mustDo(t, s, "set", "k", "v"))
	assert.Equal(t, "v", mustDo(t, s, "get", "k"))
}

func TestGetWrongType(t *testing.T) {
	s, _ := newTestStore(t)

	mustDo(t, s, "rpush", "lst", "a")
	_, err := s.Do("get", "lst")
	require.Error(t, err)
	assert.Equal(t, "WRONGTYPE Operation against a key holding the wrong kind of value", err.Error())
}

func TestGetset(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Nil(t, mustDo(t, s, "getset", "k", "v1"))
	assert.Equal(t, "v1", mustDo(t, s, "getset", "k", "v2"))
	assert.Equal(t, "v2", mustDo(t, s, "get", "k"))
}

func TestSetnx(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, true, mustDo(t, s, "setnx", "k", "v1"))
	assert.Equal(t, false, mustDo(t, s, "setnx", "k", "v2"))
	assert.Equal(t, "v1", mustDo(t, s, "get", "k"))
}

func TestSetexSchedulesExpiration(t *testing.T) {
	s, clock := newTestStore(t)

	require.Equal(t, "OK", mustDo(t, s, "setex", "k", "10", "v"))
	assert.Equal(t, int64(10), mustDo(t, s, "ttl", "k"))

	clock.Advance(11 * time.Second)
	s.SweepExpired()
	assert.Equal(t, false, mustDo(t, s, "exists", "k"))

	_, err := s.Do("setex", "k", "ten", "v")
	require.Error(t, err)
	assert.Equal(t, "ERR value is not an integer or out of range", err.Error())
}

func TestMgetMset(t *testing.T) {
	s, _ := newTestStore(t)

	require.Equal(t, "OK", mustDo(t, s, "mset", "a", "1", "b", "2"))
	assert.Equal(t, []any{"1", "2", nil}, mustDo(t, s, "mget", "a", "b", "missing"))

	// type mismatches yield nil positions, never errors
	mustDo(t, s, "rpush", "lst", "x")
	assert.Equal(t, []any{"1", nil}, mustDo(t, s, "mget", "a", "lst"))

	_, err := s.Do("mset", "a", "1", "dangling")
	require.Error(t, err)
}

func TestMsetnx(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, true, mustDo(t, s, "msetnx", "a", "1", "b", "2"))
	assert.Equal(t, false, mustDo(t, s, "msetnx", "b", "x", "c", "3"))

	// all-or-nothing: c must not have been written
	assert.Equal(t, false, mustDo(t, s, "exists", "c"))
	assert.Equal(t, "2", mustDo(t, s, "get", "b"))
}

func TestIncrDecr(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, int64(1), mustDo(t, s, "incr", "n"))
	assert.Equal(t, int64(11), mustDo(t, s, "incrby", "n", "10"))
	assert.Equal(t, int64(10), mustDo(t, s, "decr", "n"))
	assert.Equal(t, int64(7), mustDo(t, s, "decrby", "n", "3"))
	assert.Equal(t, "7", mustDo(t, s, "get", "n"))

	mustDo(t, s, "set", "s", "abc")
	_, err := s.Do("incr", "s")
	require.Error(t, err)
	assert.Equal(t, "ERR value is not an integer or out of range", err.Error())

	_, err = s.Do("incrby", "n", "nan")
	require.Error(t, err)
}

func TestIncrKeepsExpiration(t *testing.T) {
	s, _ := newTestStore(t)

	mustDo(t, s, "set", "n", "1")
	mustDo(t, s, "expire", "n", "100")
	mustDo(t, s, "incr", "n")

	assert.Equal(t, int64(100), mustDo(t, s, "ttl", "n"))
}

func TestAppendStrlen(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, 5, mustDo(t, s, "append", "k", "hello"))
	assert.Equal(t, 11, mustDo(t, s, "append", "k", " world"))
	assert.Equal(t, "hello world", mustDo(t, s, "get", "k"))
	assert.Equal(t, 11, mustDo(t, s, "strlen", "k"))
	assert.Equal(t, 0, mustDo(t, s, "strlen", "missing"))
}
