package exports

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/bft-labs/logbridge/internal/domain"
)

// Kind is the type of an export parameter.
type Kind int

const (
	KindString Kind = iota
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	default:
		return "unknown"
	}
}

// Param names one parameter of an export.
type Param struct {
	Name string
	Kind Kind
}

// Func is the implementation of an export. Arguments have already been
// checked against the export's Params. Void exports return nil.
type Func func(ctx context.Context, args []any) (any, error)

// Export is one entry of the table.
type Export struct {
	Name   string
	Params []Param
	Void   bool
	Fn     Func
}

// Signature renders the export as name(p kind, ...) for listings.
func (e Export) Signature() string {
	s := e.Name + "("
	for i, p := range e.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Name + " " + p.Kind.String()
	}
	s += ")"
	if !e.Void {
		s += " string"
	}
	return s
}

// Table maps export names to functions. It is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	exports map[string]Export
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{exports: map[string]Export{}}
}

// Register adds e, replacing any export with the same name.
func (t *Table) Register(e Export) error {
	if e.Name == "" {
		return fmt.Errorf("register export: name is required")
	}
	if e.Fn == nil {
		return fmt.Errorf("register export %s: function is required", e.Name)
	}
	t.mu.Lock()
	t.exports[e.Name] = e
	t.mu.Unlock()
	return nil
}

// Lookup returns the export registered under name.
func (t *Table) Lookup(name string) (Export, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.exports[name]
	return e, ok
}

// Names returns all registered names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.exports))
	for name := range t.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the export registered under name after checking the number
// and types of args.
func (t *Table) Call(ctx context.Context, name string, args ...any) (any, error) {
	e, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownExport, name)
	}
	if len(args) != len(e.Params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", domain.ErrArity, name, len(e.Params), len(args))
	}
	for i, p := range e.Params {
		if !matches(p.Kind, args[i]) {
			return nil, fmt.Errorf("%w: %s argument %s must be %s, got %T", domain.ErrArgType, name, p.Name, p.Kind, args[i])
		}
	}
	return e.Fn(ctx, args)
}

// CallStrings is Call for hosts that only pass text, such as a command line.
// Each argument is converted to the kind its parameter declares.
func (t *Table) CallStrings(ctx context.Context, name string, raw []string) (any, error) {
	e, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownExport, name)
	}
	if len(raw) != len(e.Params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", domain.ErrArity, name, len(e.Params), len(raw))
	}
	args := make([]any, len(raw))
	for i, p := range e.Params {
		switch p.Kind {
		case KindInt:
			n, err := strconv.Atoi(raw[i])
			if err != nil {
				return nil, fmt.Errorf("%w: %s argument %s: %w", domain.ErrArgType, name, p.Name, err)
			}
			args[i] = n
		default:
			args[i] = raw[i]
		}
	}
	return t.Call(ctx, name, args...)
}

func matches(k Kind, v any) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindInt:
		_, ok := v.(int)
		return ok
	default:
		return false
	}
}
