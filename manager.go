package fractly

import (
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// defaultRecursionLimit caps nested include depth
const defaultRecursionLimit = 10

// defaultTimeLayout is used when encoding time values to JSON
const defaultTimeLayout = time.RFC3339

type (
	//Manager holds transformation configuration shared by the scopes it
	//creates: serialization strategy, requested includes and excludes with
	//their parameters, and the include recursion limit.
	//
	//A manager is not synchronized; when shared across concurrent builders
	//its configuration calls need external synchronization or exclusive
	//ownership per request.
	Manager struct {
		serializer     Serializer
		includes       []string
		excludes       []string
		params         map[string]ParamBag
		recursionLimit int
		timeLayout     string
		log            logr.Logger
	}

	//ManagerOption represents manager option
	ManagerOption func(m *Manager)
)

// WithSerializer sets the serialization strategy
func WithSerializer(serializer Serializer) ManagerOption {
	return func(m *Manager) {
		m.serializer = serializer
	}
}

// WithRecursionLimit caps how deep nested includes may reach
func WithRecursionLimit(limit int) ManagerOption {
	return func(m *Manager) {
		if limit > 0 {
			m.recursionLimit = limit
		}
	}
}

// WithLogger sets a logger, logr.Discard is used otherwise
func WithLogger(log logr.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// WithTimeLayout sets the layout used to encode time values
func WithTimeLayout(layout string) ManagerOption {
	return func(m *Manager) {
		if layout != "" {
			m.timeLayout = layout
		}
	}
}

// NewManager creates a manager
func NewManager(opts ...ManagerOption) *Manager {
	ret := &Manager{
		recursionLimit: defaultRecursionLimit,
		timeLayout:     defaultTimeLayout,
		params:         map[string]ParamBag{},
		log:            logr.Discard(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// SetSerializer replaces the serialization strategy
func (m *Manager) SetSerializer(serializer Serializer) *Manager {
	m.serializer = serializer
	return m
}

// Serializer returns the effective serialization strategy
func (m *Manager) Serializer() Serializer {
	if m.serializer == nil {
		return ArraySerializer{}
	}
	return m.serializer
}

// ParseIncludes replaces requested includes with the parsed spec; each
// element may hold comma separated fragments with optional parameters
// i.e. "author:limit(5|1),comments". Parent segments of nested paths are
// requested implicitly and paths are trimmed to the recursion limit.
func (m *Manager) ParseIncludes(specs ...string) *Manager {
	m.includes = nil
	m.params = map[string]ParamBag{}
	for _, fragment := range splitSpec(specs) {
		path, params := parseInclude(fragment)
		if path == "" {
			continue
		}
		segments := strings.Split(path, ".")
		if len(segments) > m.recursionLimit {
			segments = segments[:m.recursionLimit]
			path = strings.Join(segments, ".")
		}
		for i := range segments {
			m.addInclude(strings.Join(segments[:i+1], "."))
		}
		if len(params) > 0 {
			m.params[path] = params
		}
		m.log.V(1).Info("requested include", "path", path)
	}
	return m
}

// ParseExcludes replaces requested excludes with the parsed spec
func (m *Manager) ParseExcludes(specs ...string) *Manager {
	m.excludes = nil
	for _, fragment := range splitSpec(specs) {
		path, _ := parseInclude(fragment)
		if path == "" {
			continue
		}
		m.addExclude(path)
	}
	return m
}

// RequestedIncludes returns normalized requested include paths
func (m *Manager) RequestedIncludes() []string {
	return m.includes
}

// RequestedExcludes returns normalized requested exclude paths
func (m *Manager) RequestedExcludes() []string {
	return m.excludes
}

// IncludeParams returns parameters requested for an include path
func (m *Manager) IncludeParams(path string) ParamBag {
	return m.params[path]
}

// IsRequested returns true when the include path was requested
func (m *Manager) IsRequested(path string) bool {
	for _, candidate := range m.includes {
		if candidate == path {
			return true
		}
	}
	return false
}

// IsExcluded returns true when the include path was excluded
func (m *Manager) IsExcluded(path string) bool {
	for _, candidate := range m.excludes {
		if candidate == path {
			return true
		}
	}
	return false
}

// CreateData creates a scope resolving the supplied resource on demand
func (m *Manager) CreateData(resource *Resource) *Scope {
	return &Scope{manager: m, resource: resource}
}

func (m *Manager) addInclude(path string) {
	if m.IsRequested(path) {
		return
	}
	m.includes = append(m.includes, path)
}

func (m *Manager) addExclude(path string) {
	if m.IsExcluded(path) {
		return
	}
	m.excludes = append(m.excludes, path)
}
