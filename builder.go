package fractly

import "fmt"

type (
	//Builder accumulates transformation configuration through a chainable
	//interface and hands production off to the manager. A builder is a
	//short-lived, single goroutine object; it may be reconfigured and
	//re-produced, no output is cached.
	Builder struct {
		manager      *Manager
		kind         ResourceKind
		data         interface{}
		transformer  Transformer
		resourceName string
		includes     []string
		excludes     []string
		meta         Fields
		serializer   Serializer
		paginator    Paginator
		cursor       Cursor
	}

	//ResourceOption represents builder data option
	ResourceOption func(b *Builder)
)

// WithTransformer sets the transformer alongside the data payload
func WithTransformer(transformer Transformer) ResourceOption {
	return func(b *Builder) {
		b.transformer = transformer
	}
}

// WithName overrides the serializer default root key
func WithName(name string) ResourceOption {
	return func(b *Builder) {
		b.resourceName = name
	}
}

// NewBuilder creates a builder delegating production to the supplied
// manager; a default manager is created when nil
func NewBuilder(manager *Manager) *Builder {
	if manager == nil {
		manager = NewManager()
	}
	return &Builder{manager: manager}
}

// Item sets a single value payload
func (b *Builder) Item(data interface{}, opts ...ResourceOption) *Builder {
	return b.Data(KindItem, data, opts...)
}

// Collection sets a sequence payload
func (b *Builder) Collection(data interface{}, opts ...ResourceOption) *Builder {
	return b.Data(KindCollection, data, opts...)
}

// Data sets resource kind and payload
func (b *Builder) Data(kind ResourceKind, data interface{}, opts ...ResourceOption) *Builder {
	b.kind = kind
	b.data = data
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// TransformWith sets or replaces the transformer
func (b *Builder) TransformWith(transformer Transformer) *Builder {
	b.transformer = transformer
	return b
}

// TransformFunc sets a function transformer
func (b *Builder) TransformFunc(transformer func(value interface{}) (Fields, error)) *Builder {
	b.transformer = TransformerFunc(transformer)
	return b
}

// SerializeWith sets the serialization strategy pushed into the manager at
// production time
func (b *Builder) SerializeWith(serializer Serializer) *Builder {
	b.serializer = serializer
	return b
}

// PaginateWith attaches a paginator, meaningful for collections only
func (b *Builder) PaginateWith(paginator Paginator) *Builder {
	b.paginator = paginator
	return b
}

// WithCursor attaches a cursor, meaningful for collections only
func (b *Builder) WithCursor(cursor Cursor) *Builder {
	b.cursor = cursor
	return b
}

// WithResourceName overrides the serializer default root key
func (b *Builder) WithResourceName(name string) *Builder {
	b.resourceName = name
	return b
}

// ParseIncludes appends include paths; each element may hold comma
// separated fragments with optional parameters, accumulated as a union
// across calls
func (b *Builder) ParseIncludes(specs ...string) *Builder {
	b.includes = appendAbsent(b.includes, splitSpec(specs))
	return b
}

// ParseExcludes appends exclude paths, accumulated as a union across calls
func (b *Builder) ParseExcludes(specs ...string) *Builder {
	b.excludes = appendAbsent(b.excludes, splitSpec(specs))
	return b
}

// Include requests nested relations by name, i.e. Include("author") is
// equivalent to ParseIncludes("author")
func (b *Builder) Include(names ...string) *Builder {
	return b.ParseIncludes(names...)
}

// Exclude suppresses nested relations by name
func (b *Builder) Exclude(names ...string) *Builder {
	return b.ParseExcludes(names...)
}

// AddMeta merges the supplied mappings into accumulated meta; existing
// keys are kept, first write wins
func (b *Builder) AddMeta(meta ...Fields) *Builder {
	if b.meta == nil {
		b.meta = Fields{}
	}
	for _, item := range meta {
		b.meta.MergeAbsent(item)
	}
	return b
}

// Resource assembles the configured resource
func (b *Builder) Resource() (*Resource, error) {
	if b.transformer == nil {
		return nil, fmt.Errorf("failed to create %v resource: %w", b.kind, ErrNoTransformer)
	}
	if !b.kind.IsValid() {
		return nil, fmt.Errorf("unknown resource kind %v: %w", b.kind, ErrInvalidTransformation)
	}
	resource := NewResource(b.kind, b.data, b.transformer, b.resourceName)
	if len(b.meta) > 0 {
		resource.SetMeta(b.meta)
	}
	if b.paginator != nil {
		resource.SetPaginator(b.paginator)
	}
	if b.cursor != nil {
		resource.SetCursor(b.cursor)
	}
	return resource, nil
}

// CreateData pushes accumulated configuration into the manager and creates
// a scope for the assembled resource
func (b *Builder) CreateData() (*Scope, error) {
	resource, err := b.Resource()
	if err != nil {
		return nil, err
	}
	if b.serializer != nil {
		b.manager.SetSerializer(b.serializer)
	}
	b.manager.ParseIncludes(b.includes...)
	b.manager.ParseExcludes(b.excludes...)
	return b.manager.CreateData(resource), nil
}

// ToArray produces the serialized field tree
func (b *Builder) ToArray() (Fields, error) {
	scope, err := b.CreateData()
	if err != nil {
		return nil, err
	}
	return scope.ToArray()
}

// ToJSON produces the encoded output
func (b *Builder) ToJSON() ([]byte, error) {
	scope, err := b.CreateData()
	if err != nil {
		return nil, err
	}
	return scope.ToJSON()
}

// MarshalJSON satisfies json.Marshaler with the same output as ToJSON
func (b *Builder) MarshalJSON() ([]byte, error) {
	return b.ToJSON()
}

func appendAbsent(dest []string, items []string) []string {
outer:
	for _, item := range items {
		for _, candidate := range dest {
			if candidate == item {
				continue outer
			}
		}
		dest = append(dest, item)
	}
	return dest
}
