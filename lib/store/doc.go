// Package store implements the authoritative key space of the emulation: a
// multi-database in-memory store executing the keyspace and value command
// families against the currently selected database.
//
// Key Features:
//   - Multiple independent databases, indexed by a non-negative integer and
//     created lazily on first access through a get-or-create accessor
//   - A single mutable current-database selector per Store instance
//   - A per-database expiration ledger, sorted ascending by absolute
//     expiration instant, with O(1) cancellation by key
//   - One flat command namespace assembled from separate command families
//     (keyspace, strings, lists, sets, hashes) at construction time
//
// Implementation Details:
//
//   - Command Dispatch: The store handles commands through a command.Registry
//     rather than open-ended dynamic dispatch. Each family registers its
//     handlers into the shared registry, which keeps the command set
//     enumerable and the families independently testable.
//
//   - Ledger Consistency: Every deletion path (del, flushdb, overwrite by a
//     set-style command, rename, the expiry sweep) cancels the key's ledger
//     entry, so a ledger entry never outlives its key. The sweep itself runs
//     through the store's own deletion path for the same reason.
//
//   - Clock Injection: TTL bookkeeping reads time from an injected
//     clockwork.Clock, so tests drive expiration deterministically with a
//     fake clock. No background timer exists; expiration is enforced lazily
//     by SweepExpired, which the expiry middleware invokes before every
//     forwarded command.
//
// Thread Safety:
//
//	The store is a single-caller test double. Commands are synchronous
//	call-and-return with no internal suspension points. Invoking it
//	concurrently without external synchronization is unsupported; no
//	consistency guarantee is made in that case.
package store
