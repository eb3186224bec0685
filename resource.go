package fractly

type (
	//ResourceKind represents a resource kind
	ResourceKind int

	//Resource pairs a payload with its transformer and optional meta,
	//pagination and cursor attachments
	Resource struct {
		kind        ResourceKind
		data        interface{}
		transformer Transformer
		name        string
		meta        Fields
		paginator   Paginator
		cursor      Cursor
	}
)

const (
	//KindUnspecified represents an unset resource kind
	KindUnspecified ResourceKind = iota
	//KindItem represents a single value resource
	KindItem
	//KindCollection represents a sequence resource
	KindCollection
)

// IsValid returns true for a known resource kind
func (k ResourceKind) IsValid() bool {
	return k == KindItem || k == KindCollection
}

func (k ResourceKind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindCollection:
		return "collection"
	}
	return "unspecified"
}

// Kind returns resource kind
func (r *Resource) Kind() ResourceKind {
	return r.kind
}

// Data returns resource payload
func (r *Resource) Data() interface{} {
	return r.data
}

// Transformer returns resource transformer
func (r *Resource) Transformer() Transformer {
	return r.transformer
}

// Name returns resource name overriding the serializer default root key
func (r *Resource) Name() string {
	return r.name
}

// Meta returns resource meta
func (r *Resource) Meta() Fields {
	return r.meta
}

// Paginator returns attached paginator
func (r *Resource) Paginator() Paginator {
	return r.paginator
}

// Cursor returns attached cursor
func (r *Resource) Cursor() Cursor {
	return r.cursor
}

// SetMeta replaces resource meta
func (r *Resource) SetMeta(meta Fields) *Resource {
	r.meta = meta
	return r
}

// SetPaginator attaches a paginator, meaningful for collection resources only
func (r *Resource) SetPaginator(paginator Paginator) *Resource {
	r.paginator = paginator
	return r
}

// SetCursor attaches a cursor, meaningful for collection resources only
func (r *Resource) SetCursor(cursor Cursor) *Resource {
	r.cursor = cursor
	return r
}

// NewResource creates a resource of the supplied kind
func NewResource(kind ResourceKind, data interface{}, transformer Transformer, name string) *Resource {
	return &Resource{kind: kind, data: data, transformer: transformer, name: name}
}

// NewItem creates an item resource
func NewItem(data interface{}, transformer Transformer, name string) *Resource {
	return NewResource(KindItem, data, transformer, name)
}

// NewCollection creates a collection resource
func NewCollection(data interface{}, transformer Transformer, name string) *Resource {
	return NewResource(KindCollection, data, transformer, name)
}
