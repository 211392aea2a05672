package client

import (
	"fmt"
	"strings"

	"github.com/VictoriaMetrics/metrics"
	"github.com/jonboulle/clockwork"

	"github.com/tbruckmaier/redsim/lib/command"
	"github.com/tbruckmaier/redsim/lib/expiry"
	"github.com/tbruckmaier/redsim/lib/store"
	"github.com/tbruckmaier/redsim/lib/txn"
)

// withheldCommands are names the facade deliberately keeps off its surface:
// raw database selection and low-level type introspection are meaningful to
// the store layer internally, but not to callers of a single-handle test
// double. They fail with the unknown-command error.
var withheldCommands = map[string]struct{}{
	"select": {},
	"type":   {},
}

// Client is the outward-facing handle of the emulation. It assembles the
// three layers in fixed order (transactions wrap expiry wraps store) and
// forwards every command it does not withhold.
type Client struct {
	store *store.Store
	txn   *txn.Middleware
}

// Options configures a Client during initialization.
type Options struct {
	// Clock is passed through to the store for TTL bookkeeping.
	// Defaults to the real clock.
	Clock clockwork.Clock
}

// New assembles a fresh emulation stack. Every Client owns its own store
// and its own transaction state; nothing is shared between instances.
func New(opts *Options) *Client {
	if opts == nil {
		opts = &Options{}
	}

	s := store.New(&store.Options{Clock: opts.Clock})
	return &Client{
		store: s,
		txn:   txn.Wrap(expiry.Wrap(s)),
	}
}

// Do invokes a command by name. Results are one of: bool, int, int64,
// string, []string, map[string]string, []any (for exec), or nil.
func (c *Client) Do(name string, args ...string) (any, error) {
	name = strings.ToLower(name)
	if _, ok := withheldCommands[name]; ok {
		return nil, command.ErrUnknownCommand(name)
	}

	metrics.GetOrCreateCounter(fmt.Sprintf(`redsim_commands_total{command=%q}`, name)).Inc()
	return c.txn.Do(name, args...)
}

// InTransaction reports whether a MULTI block is currently open.
func (c *Client) InTransaction() bool {
	return c.txn.State() == txn.StateCollecting
}
