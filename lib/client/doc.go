// Package client provides the facade held by callers of the emulation.
//
// A Client stands in for a connection to a real key-value server during
// tests: same command names, same argument shapes, equivalent results, no
// network and no persistence. Construction wires the layers in fixed order:
//
//	caller -> Client -> txn.Middleware -> expiry.Middleware -> store.Store
//
// The facade special-cases nothing except a small withheld set (select,
// type) whose raw pass-through semantics belong to a multi-connection real
// server or to internal classification, not to a single-handle double.
// Everything else is forwarded by name and arguments.
//
// State is per-instance and discarded with the Client; create one Client per
// test for isolation.
package client
