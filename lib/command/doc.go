// Package command defines the dispatch contract shared by every layer of the
// emulation stack: the Dispatcher interface, a name-to-handler Registry, and
// the typed Error carrying exact protocol error text.
//
// Key Components:
//
//   - Dispatcher Interface: The single invocation contract of the whole
//     system. Each layer (store, expiry middleware, transaction middleware,
//     client facade) implements Dispatcher and forwards unhandled names down
//     by name and arguments, keeping the command set enumerable instead of
//     relying on open-ended dynamic dispatch.
//
//   - Registry: A flat, case-insensitive map from command name to handler
//     closure. Command families (keyspace, strings, lists, sets, hashes)
//     register themselves through the Family interface at construction time.
//
//   - Error: A typed failure with a return code and the verbatim
//     protocol-facing message. Error() returns the message unchanged so that
//     protocol-compatibility tests can assert on exact text.
//
//   - Parsing Helpers: ParseInt and ParseTimeout translate malformed integer
//     arguments into the exact error strings the real server uses.
//
// Error Categories:
//
//   - Protocol-shaped errors (RetCProtocol, RetCWrongType) are recoverable
//     typed failures surfaced to the caller.
//   - Unknown-command errors (RetCUnknownCommand) are raised for names no
//     layer handles, including the few names the facade withholds.
//   - Internal-consistency violations are not represented here at all: they
//     are defects, signaled by panics at the point of detection.
package command
