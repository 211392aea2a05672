// Package expiry wraps the store with the lazy TTL enforcement layer. There
// is no background sweeper: every command dispatched through this middleware
// first collects the current database's overdue keys via the store's own
// deletion path, then forwards unchanged. The ledger is sorted by deadline,
// so each sweep is a prefix scan stopping at the first future entry.
package expiry
