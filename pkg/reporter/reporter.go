package reporter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
	"github.com/platinummonkey/ktlint-report/pkg/log"
)

// ErrUnknownReporter is returned when a reporter id is not registered
var ErrUnknownReporter = errors.New("unknown reporter")

// Reporter receives the violations of a run
type Reporter interface {
	OnLintError(file string, v linter.Violation, corrected bool)
	AfterFile(file string)
	AfterAll() error
}

// Options configure a reporter instance
type Options struct {
	// Verbose appends the rule id to each violation
	Verbose bool

	// GroupByFile groups plain output under a file header
	GroupByFile bool

	// Log and Level are used by reporters that write to the goal's log
	Log   log.Log
	Level log.Level

	// Stdout receives reporters opened without an output file, os.Stdout when nil
	Stdout io.Writer
}

// Kind tags the built-in reporters
type Kind int

const (
	KindMaven Kind = iota
	KindPlain
	KindJSON
	KindCheckstyle
)

func (k Kind) String() string {
	switch k {
	case KindMaven:
		return "maven"
	case KindPlain:
		return "plain"
	case KindJSON:
		return "json"
	case KindCheckstyle:
		return "checkstyle"
	default:
		return "unknown"
	}
}

// Provider creates reporters of one kind
type Provider struct {
	ID       string
	Kind     Kind
	Priority int
	New      func(out io.Writer, opts Options) Reporter
}

// Registry holds the available reporter providers
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty reporter registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// DefaultRegistry returns a registry holding the built-in reporters
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register(Provider{ID: "maven", Kind: KindMaven, Priority: 0, New: NewMaven})
	registry.Register(Provider{ID: "plain", Kind: KindPlain, Priority: 1, New: NewPlain})
	registry.Register(Provider{ID: "json", Kind: KindJSON, Priority: 2, New: NewJSON})
	registry.Register(Provider{ID: "checkstyle", Kind: KindCheckstyle, Priority: 3, New: NewCheckstyle})
	return registry
}

// Register adds a provider, replacing any provider with the same id
func (r *Registry) Register(p Provider) {
	r.providers[p.ID] = p
}

// Get retrieves a provider by id
func (r *Registry) Get(id string) (Provider, bool) {
	p, ok := r.providers[id]
	return p, ok
}

// All returns every provider ordered by priority, then id
func (r *Registry) All() []Provider {
	providers := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool {
		if providers[i].Priority != providers[j].Priority {
			return providers[i].Priority < providers[j].Priority
		}
		return providers[i].ID < providers[j].ID
	})
	return providers
}

// IDs returns the provider ids in order
func (r *Registry) IDs() []string {
	var ids []string
	for _, p := range r.All() {
		ids = append(ids, p.ID)
	}
	return ids
}

// Discover announces every provider in order and returns them
func (r *Registry) Discover(l log.Log) []Provider {
	all := r.All()
	for _, p := range all {
		l.Debug(fmt.Sprintf("Discovered reporter '%s'", p.ID))
	}
	return all
}

// Open creates a reporter writing to output, or to opts.Stdout when output is
// empty. The returned close function releases the output file.
func (r *Registry) Open(id, output string, opts Options) (Reporter, func() error, error) {
	p, ok := r.Get(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownReporter, id, strings.Join(r.IDs(), ", "))
	}

	if output == "" {
		stdout := opts.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		return p.New(stdout, opts), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report %s: %w", output, err)
	}
	return p.New(f, opts), f.Close, nil
}

// Multi reports to several reporters
type Multi struct {
	reporters []Reporter
}

// NewMulti creates a reporter that forwards every call to reporters
func NewMulti(reporters ...Reporter) *Multi {
	return &Multi{reporters: reporters}
}

// Add appends a reporter
func (m *Multi) Add(r Reporter) {
	m.reporters = append(m.reporters, r)
}

func (m *Multi) OnLintError(file string, v linter.Violation, corrected bool) {
	for _, r := range m.reporters {
		r.OnLintError(file, v, corrected)
	}
}

func (m *Multi) AfterFile(file string) {
	for _, r := range m.reporters {
		r.AfterFile(file)
	}
}

// AfterAll finishes every reporter and returns the first error
func (m *Multi) AfterAll() error {
	var firstErr error
	for _, r := range m.reporters {
		if err := r.AfterAll(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
