// Package txn implements the transaction-queuing layer: a two-state machine
// (idle, collecting) driven by MULTI, EXEC and DISCARD.
//
// While idle, commands pass straight through to the inner layer. MULTI
// switches to collecting; from then on every non-control command is recorded
// with its arguments and acknowledged with the "QUEUED" marker, unexecuted.
// EXEC switches back to idle and replays the queue in arrival order through
// the same inner path, so each replayed command still triggers the expiry
// sweep. DISCARD drops the queue.
//
// Replay is non-atomic on purpose: a typed failure is captured as data in
// its position of the EXEC result sequence and the remaining commands run
// anyway. Queued commands are effectively syntax-checked only at replay
// time. Client code under test must be exercised against exactly this
// behavior, so it must not be "fixed" into atomic semantics.
package txn
