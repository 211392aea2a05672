// Package cmd implements the command-line interface for the redsim key-value
// server emulation. The binary is a convenience wrapper around the library;
// all state lives in the process running the command.
//
// The package is organized into several subpackages:
//
//   - repl: Interactive shell dispatching commands against an in-process instance
//   - bench: Latency benchmark over the in-process command surface
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See redsim -help for a list of all commands.
package cmd
