// Package storetest provides a reusable conformance suite for command
// dispatchers. Any layer of the stack that implements command.Dispatcher can
// be checked against the shared command surface; full stacks (with the
// transaction middleware on top) additionally run the transaction suite.
package storetest

import (
	"reflect"
	"testing"

	"github.com/tbruckmaier/redsim/lib/command"
)

// Factory creates a fresh, empty dispatcher for one test.
type Factory func() command.Dispatcher

// RunCommandTests exercises the keyspace and string command surface common
// to every layer.
func RunCommandTests(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("SetGet", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("ExistsDel", func(t *testing.T) {
			testExistsDel(t, factory())
		})

		t.Run("RenameIdentityGuard", func(t *testing.T) {
			testRenameIdentityGuard(t, factory())
		})

		t.Run("RenamenxNonOverwrite", func(t *testing.T) {
			testRenamenxNonOverwrite(t, factory())
		})

		t.Run("PatternMatching", func(t *testing.T) {
			testPatternMatching(t, factory())
		})

		t.Run("PersistCancelsTTL", func(t *testing.T) {
			testPersistCancelsTTL(t, factory())
		})
	})
}

// RunTransactionTests exercises MULTI/EXEC/DISCARD semantics. The factory
// must produce a dispatcher with the transaction middleware on top.
func RunTransactionTests(t *testing.T, name string, factory Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Queuing", func(t *testing.T) {
			testTransactionQueuing(t, factory())
		})

		t.Run("BatchNonAtomicity", func(t *testing.T) {
			testBatchNonAtomicity(t, factory())
		})

		t.Run("NestedMulti", func(t *testing.T) {
			testNestedMulti(t, factory())
		})

		t.Run("ControlOutsideMulti", func(t *testing.T) {
			testControlOutsideMulti(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func mustDo(t testing.TB, d command.Dispatcher, name string, args ...string) any {
	t.Helper()
	result, err := d.Do(name, args...)
	if err != nil {
		t.Fatalf("%s %v failed: %v", name, args, err)
	}
	return result
}

func wantErrText(t testing.TB, err error, text string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", text)
	}
	if err.Error() != text {
		t.Errorf("expected error %q, got %q", text, err.Error())
	}
}

// --------------------------------------------------------------------------
// Command surface tests
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, d command.Dispatcher) {
	if got := mustDo(t, d, "set", "k", "v1"); got != "OK" {
		t.Errorf("set should return OK, got %v", got)
	}

	if got := mustDo(t, d, "get", "k"); got != "v1" {
		t.Errorf("get should return v1, got %v", got)
	}

	mustDo(t, d, "set", "k", "v2")
	if got := mustDo(t, d, "get", "k"); got != "v2" {
		t.Errorf("get after overwrite should return v2, got %v", got)
	}

	if got := mustDo(t, d, "get", "missing"); got != nil {
		t.Errorf("get of missing key should return nil, got %v", got)
	}
}

func testExistsDel(t *testing.T, d command.Dispatcher) {
	mustDo(t, d, "set", "a", "1")
	mustDo(t, d, "set", "b", "2")

	if got := mustDo(t, d, "exists", "a"); got != true {
		t.Errorf("exists should report true for a, got %v", got)
	}

	if got := mustDo(t, d, "del", "a", "b", "c"); got != 2 {
		t.Errorf("del should report 2 removed keys, got %v", got)
	}

	if got := mustDo(t, d, "exists", "a"); got != false {
		t.Errorf("exists should report false after del, got %v", got)
	}
}

func testRenameIdentityGuard(t *testing.T, d command.Dispatcher) {
	for _, key := range []string{"k", "", "with spaces", "a*b"} {
		_, err := d.Do("rename", key, key)
		wantErrText(t, err, "ERR source and destination objects are the same")
	}
}

func testRenamenxNonOverwrite(t *testing.T, d command.Dispatcher) {
	mustDo(t, d, "set", "a", "va")
	mustDo(t, d, "set", "b", "vb")

	if got := mustDo(t, d, "renamenx", "a", "b"); got != false {
		t.Errorf("renamenx onto existing key should return false, got %v", got)
	}

	if got := mustDo(t, d, "get", "a"); got != "va" {
		t.Errorf("a should be unchanged, got %v", got)
	}
	if got := mustDo(t, d, "get", "b"); got != "vb" {
		t.Errorf("b should be unchanged, got %v", got)
	}
}

func testPatternMatching(t *testing.T, d command.Dispatcher) {
	for _, key := range []string{"foo", "fob", "bar"} {
		mustDo(t, d, "set", key, "x")
	}

	if got := mustDo(t, d, "keys", "fo?"); !reflect.DeepEqual(got, []string{"fob", "foo"}) {
		t.Errorf(`keys "fo?" should match {fob, foo}, got %v`, got)
	}

	if got := mustDo(t, d, "keys", "*"); !reflect.DeepEqual(got, []string{"bar", "fob", "foo"}) {
		t.Errorf(`keys "*" should match all three, got %v`, got)
	}
}

func testPersistCancelsTTL(t *testing.T, d command.Dispatcher) {
	mustDo(t, d, "set", "k", "v")

	if got := mustDo(t, d, "expire", "k", "100"); got != true {
		t.Errorf("expire should return true, got %v", got)
	}

	if got := mustDo(t, d, "persist", "k"); got != true {
		t.Errorf("persist should return true, got %v", got)
	}

	if got := mustDo(t, d, "ttl", "k"); got != int64(-1) {
		t.Errorf("ttl after persist should be -1, got %v", got)
	}
}

// --------------------------------------------------------------------------
// Transaction tests
// --------------------------------------------------------------------------

func testTransactionQueuing(t *testing.T, d command.Dispatcher) {
	mustDo(t, d, "multi")

	if got := mustDo(t, d, "set", "k", "v"); got != "QUEUED" {
		t.Fatalf("queued set should return the QUEUED marker, got %v", got)
	}
	if got := mustDo(t, d, "get", "k"); got != "QUEUED" {
		t.Fatalf("queued get should return the QUEUED marker, got %v", got)
	}

	results := mustDo(t, d, "exec").([]any)
	if !reflect.DeepEqual(results, []any{"OK", "v"}) {
		t.Errorf("exec should return [OK v], got %v", results)
	}

	if got := mustDo(t, d, "get", "k"); got != "v" {
		t.Errorf("bare get after exec should return v, got %v", got)
	}
}

func testBatchNonAtomicity(t *testing.T, d command.Dispatcher) {
	mustDo(t, d, "set", "k", "v")
	mustDo(t, d, "multi")
	mustDo(t, d, "rename", "k", "k")
	mustDo(t, d, "set", "after", "ran")

	results := mustDo(t, d, "exec").([]any)
	if len(results) != 2 {
		t.Fatalf("exec should return two outcomes, got %v", results)
	}

	err, ok := results[0].(error)
	if !ok {
		t.Fatalf("first outcome should be a captured error, got %v", results[0])
	}
	wantErrText(t, err, "ERR source and destination objects are the same")

	if results[1] != "OK" {
		t.Errorf("second outcome should be OK, got %v", results[1])
	}
	if got := mustDo(t, d, "get", "after"); got != "ran" {
		t.Errorf("effect of the valid command should be observable, got %v", got)
	}
}

func testNestedMulti(t *testing.T, d command.Dispatcher) {
	mustDo(t, d, "multi")
	mustDo(t, d, "set", "k", "v")

	_, err := d.Do("multi")
	wantErrText(t, err, "ERR MULTI calls can not be nested")

	// the first transaction's queue is untouched
	results := mustDo(t, d, "exec").([]any)
	if !reflect.DeepEqual(results, []any{"OK"}) {
		t.Errorf("exec should replay the original queue, got %v", results)
	}
}

func testControlOutsideMulti(t *testing.T, d command.Dispatcher) {
	_, err := d.Do("exec")
	wantErrText(t, err, "ERR EXEC without MULTI")

	_, err = d.Do("discard")
	wantErrText(t, err, "ERR DISCARD without MULTI")
}
