package command

import "strings"

// --------------------------------------------------------------------------
// Dispatcher Interface
// --------------------------------------------------------------------------

// Dispatcher is the invocation contract shared by every layer of the stack:
// a flat namespace of lowercase command names, each taking a variadic,
// positionally-typed argument list and returning a result or a typed failure.
//
// Results are one of: bool, int, int64, string, []string, []any (for exec),
// map[string]string (hgetall), or nil for missing values.
type Dispatcher interface {
	Do(name string, args ...string) (any, error)
}

// Handler executes a single command against its owning layer.
type Handler func(args []string) (any, error)

// Family is a group of related commands (keyspace, strings, lists, ...)
// that registers its handlers into a shared registry. Families are composed
// at construction time, keeping the command namespace flat for callers while
// avoiding one monolithic command type.
type Family interface {
	RegisterCommands(r *Registry)
}

// --------------------------------------------------------------------------
// Registry
// --------------------------------------------------------------------------

// Registry maps command names to handlers. It is itself a Dispatcher, so a
// layer can either handle a name directly or forward by name and arguments
// to an inner layer's registry.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty command registry.
func NewRegistry(families ...Family) *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	for _, f := range families {
		f.RegisterCommands(r)
	}
	return r
}

// Register binds a handler to a command name. Names are case-insensitive;
// registering an already-bound name replaces the previous handler.
func (r *Registry) Register(name string, h Handler) {
	r.handlers[strings.ToLower(name)] = h
}

// Has reports whether the registry handles the given command name.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[strings.ToLower(name)]
	return ok
}

// Do dispatches a command by name. Unknown names fail with the protocol
// unknown-command error.
func (r *Registry) Do(name string, args ...string) (any, error) {
	name = strings.ToLower(name)
	h, ok := r.handlers[name]
	if !ok {
		return nil, ErrUnknownCommand(name)
	}
	return h(args)
}

// --------------------------------------------------------------------------
// Arity Guards
// --------------------------------------------------------------------------

// ExactArgs wraps a handler with an exact argument-count check.
func ExactArgs(name string, n int, h Handler) Handler {
	return func(args []string) (any, error) {
		if len(args) != n {
			return nil, ErrWrongArgCount(name)
		}
		return h(args)
	}
}

// MinArgs wraps a handler with a minimum argument-count check.
func MinArgs(name string, n int, h Handler) Handler {
	return func(args []string) (any, error) {
		if len(args) < n {
			return nil, ErrWrongArgCount(name)
		}
		return h(args)
	}
}
