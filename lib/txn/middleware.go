package txn

import (
	"strings"

	"github.com/tbruckmaier/redsim/lib/command"
)

// Queued is the placeholder acknowledgement returned for every command
// recorded while a transaction is collecting.
const Queued = "QUEUED"

// --------------------------------------------------------------------------
// Transaction State
// --------------------------------------------------------------------------

// State is the two-state transaction protocol.
type State int

const (
	StateIdle State = iota
	StateCollecting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCollecting:
		return "collecting"
	default:
		return "unknown"
	}
}

// queuedCommand is one recorded invocation awaiting replay.
type queuedCommand struct {
	name string
	args []string
}

// --------------------------------------------------------------------------
// Middleware
// --------------------------------------------------------------------------

// Middleware implements MULTI/EXEC/DISCARD semantics on top of an inner
// dispatcher. While idle it forwards immediately; while collecting it queues
// every command and acknowledges with the Queued marker. EXEC replays the
// queue in arrival order through the same forwarding path.
//
// The layer provides ordering and isolation from interleaving by this
// caller, but deliberately no atomicity or rollback: a failing replayed
// command is captured in its result position and later commands still
// execute. This mirrors the emulated protocol's documented behavior.
type Middleware struct {
	next  command.Dispatcher
	state State
	queue []queuedCommand
}

// Wrap creates the transaction middleware around an inner dispatcher,
// starting idle with an empty queue.
func Wrap(next command.Dispatcher) *Middleware {
	return &Middleware{next: next, state: StateIdle}
}

// State returns the current transaction state.
func (m *Middleware) State() State {
	return m.state
}

// Do handles the transaction-control verbs itself and routes everything else
// according to the current state.
func (m *Middleware) Do(name string, args ...string) (any, error) {
	switch strings.ToLower(name) {
	case "multi":
		return m.multi()
	case "exec":
		return m.exec()
	case "discard":
		return m.discard()
	}

	if m.state == StateCollecting {
		m.queue = append(m.queue, queuedCommand{name: name, args: args})
		return Queued, nil
	}
	return m.next.Do(name, args...)
}

func (m *Middleware) multi() (any, error) {
	if m.state == StateCollecting {
		// state and queue are left untouched on failure
		return nil, command.ErrNestedMulti()
	}
	m.state = StateCollecting
	return "OK", nil
}

func (m *Middleware) discard() (any, error) {
	if m.state == StateIdle {
		return nil, command.ErrDiscardWithoutMulti()
	}
	m.state = StateIdle
	m.queue = nil
	return "OK", nil
}

// exec replays every queued command in original order against the inner
// dispatcher. Each outcome is captured individually: a typed failure lands
// in its position of the result sequence instead of aborting the batch.
// Internal-consistency panics are not caught; they reflect broken
// invariants, not bad input.
func (m *Middleware) exec() (any, error) {
	if m.state == StateIdle {
		return nil, command.ErrExecWithoutMulti()
	}

	queue := m.queue
	m.state = StateIdle
	m.queue = nil

	results := make([]any, 0, len(queue))
	for _, qc := range queue {
		result, err := m.next.Do(qc.name, qc.args...)
		if err != nil {
			results = append(results, err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}
