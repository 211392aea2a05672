package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTextIsVerbatim(t *testing.T) {
	tests := []struct {
		err  *Error
		text string
	}{
		{ErrDiscardWithoutMulti(), "ERR DISCARD without MULTI"},
		{ErrExecWithoutMulti(), "ERR EXEC without MULTI"},
		{ErrNestedMulti(), "ERR MULTI calls can not be nested"},
		{ErrNotAnInteger(), "ERR value is not an integer or out of range"},
		{ErrTimeoutNotAnInteger(), "ERR timeout is not an integer or out of range"},
		{ErrTimeoutNegative(), "ERR timeout is negative"},
		{ErrSameObjects(), "ERR source and destination objects are the same"},
		{ErrNoSuchKey(), "ERR no such key"},
		{ErrWrongType(), "WRONGTYPE Operation against a key holding the wrong kind of value"},
		{ErrUnknownCommand("foo"), "ERR unknown command 'foo'"},
		{ErrWrongArgCount("get"), "ERR wrong number of arguments for 'get' command"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.text, tt.err.Error())
	}
}

func TestParseInt(t *testing.T) {
	n, err := ParseInt("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = ParseInt("-7")
	require.NoError(t, err)
	assert.Equal(t, int64(-7), n)

	for _, bad := range []string{"", "x", "1.5", "1e3", " 1"} {
		_, err := ParseInt(bad)
		require.Error(t, err, "input %q", bad)
		assert.Equal(t, "ERR value is not an integer or out of range", err.Error())
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := ParseTimeout("5")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	d, err = ParseTimeout("0")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)

	_, err = ParseTimeout("nope")
	require.Error(t, err)
	assert.Equal(t, "ERR timeout is not an integer or out of range", err.Error())

	_, err = ParseTimeout("-1")
	require.Error(t, err)
	assert.Equal(t, "ERR timeout is negative", err.Error())
}
