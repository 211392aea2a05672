package txn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbruckmaier/redsim/lib/command"
	"github.com/tbruckmaier/redsim/lib/expiry"
	"github.com/tbruckmaier/redsim/lib/store"
)

func newTestStack(t *testing.T) *Middleware {
	t.Helper()
	return Wrap(expiry.Wrap(store.New(nil)))
}

func mustDo(t *testing.T, m *Middleware, name string, args ...string) any {
	t.Helper()
	result, err := m.Do(name, args...)
	require.NoError(t, err)
	return result
}

func TestIdleForwardsImmediately(t *testing.T) {
	m := newTestStack(t)

	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, "OK", mustDo(t, m, "set", "k", "v"))
	assert.Equal(t, "v", mustDo(t, m, "get", "k"))
}

func TestMultiCollects(t *testing.T) {
	m := newTestStack(t)

	require.Equal(t, "OK", mustDo(t, m, "multi"))
	assert.Equal(t, StateCollecting, m.State())

	assert.Equal(t, Queued, mustDo(t, m, "set", "k", "v"))

	// the queued command did not execute
	assert.Equal(t, StateCollecting, m.State())
	assert.Len(t, m.queue, 1)
}

func TestExecReplaysInOrder(t *testing.T) {
	m := newTestStack(t)

	mustDo(t, m, "multi")
	mustDo(t, m, "set", "k", "v")
	mustDo(t, m, "incr", "n")
	mustDo(t, m, "get", "k")

	results := mustDo(t, m, "exec").([]any)
	require.Len(t, results, 3)
	assert.Equal(t, "OK", results[0])
	assert.Equal(t, int64(1), results[1])
	assert.Equal(t, "v", results[2])

	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.queue)
}

func TestExecCapturesFailuresPositionally(t *testing.T) {
	m := newTestStack(t)

	mustDo(t, m, "set", "k", "v")
	mustDo(t, m, "multi")
	mustDo(t, m, "rename", "k", "k")
	mustDo(t, m, "set", "k2", "v2")
	mustDo(t, m, "bogus")

	results := mustDo(t, m, "exec").([]any)
	require.Len(t, results, 3)

	err, ok := results[0].(error)
	require.True(t, ok)
	assert.Equal(t, "ERR source and destination objects are the same", err.Error())

	assert.Equal(t, "OK", results[1])

	// unknown commands are only detected at replay time
	err, ok = results[2].(error)
	require.True(t, ok)
	assert.Equal(t, "ERR unknown command 'bogus'", err.Error())

	// the valid sibling still took effect
	assert.Equal(t, "v2", mustDo(t, m, "get", "k2"))
}

func TestExecEmptyQueue(t *testing.T) {
	m := newTestStack(t)

	mustDo(t, m, "multi")
	results := mustDo(t, m, "exec").([]any)
	assert.Empty(t, results)
	assert.Equal(t, StateIdle, m.State())
}

func TestExecWithoutMulti(t *testing.T) {
	m := newTestStack(t)

	_, err := m.Do("exec")
	require.Error(t, err)
	assert.Equal(t, "ERR EXEC without MULTI", err.Error())

	var cmdErr *command.Error
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, command.RetCProtocol, cmdErr.Code)
}

func TestDiscardClearsQueue(t *testing.T) {
	m := newTestStack(t)

	mustDo(t, m, "multi")
	mustDo(t, m, "set", "k", "v")
	require.Equal(t, "OK", mustDo(t, m, "discard"))

	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.queue)

	// the discarded command never ran
	assert.Equal(t, false, mustDo(t, m, "exists", "k"))

	_, err := m.Do("discard")
	require.Error(t, err)
	assert.Equal(t, "ERR DISCARD without MULTI", err.Error())
}

func TestNestedMultiLeavesQueueUntouched(t *testing.T) {
	m := newTestStack(t)

	mustDo(t, m, "multi")
	mustDo(t, m, "set", "k", "v")

	_, err := m.Do("multi")
	require.Error(t, err)
	assert.Equal(t, "ERR MULTI calls can not be nested", err.Error())
	assert.Equal(t, StateCollecting, m.State())
	assert.Len(t, m.queue, 1)
}

func TestControlVerbsAreCaseInsensitive(t *testing.T) {
	m := newTestStack(t)

	require.Equal(t, "OK", mustDo(t, m, "MULTI"))
	assert.Equal(t, Queued, mustDo(t, m, "SET", "k", "v"))
	results := mustDo(t, m, "EXEC").([]any)
	assert.Equal(t, []any{"OK"}, results)
}
