package fractly

// defaultRootKey names collection output when no resource name is set
const defaultRootKey = "data"

// Serializer controls the output envelope shape: root key naming, meta
// placement and pagination rendering
type Serializer interface {
	Collection(name string, data []Fields) Fields
	Item(name string, data Fields) Fields
	Null() Fields
	Meta(meta Fields) Fields
	Paginator(paginator Paginator) Fields
	Cursor(cursor Cursor) Fields
}

// ArraySerializer inlines item fields and nests collections under the
// resource name key
type ArraySerializer struct{}

// Collection serializes collection data under the resource name key
func (s ArraySerializer) Collection(name string, data []Fields) Fields {
	if name == "" {
		name = defaultRootKey
	}
	return Fields{name: data}
}

// Item serializes item data as is
func (s ArraySerializer) Item(name string, data Fields) Fields {
	return data
}

// Null serializes missing data
func (s ArraySerializer) Null() Fields {
	return Fields{}
}

// Meta serializes meta under the meta key
func (s ArraySerializer) Meta(meta Fields) Fields {
	if len(meta) == 0 {
		return nil
	}
	return Fields{"meta": meta}
}

// Paginator serializes pagination state
func (s ArraySerializer) Paginator(paginator Paginator) Fields {
	return Fields{"pagination": Fields{
		"total":        paginator.Total(),
		"count":        paginator.Count(),
		"per_page":     paginator.PerPage(),
		"current_page": paginator.CurrentPage(),
		"total_pages":  paginator.LastPage(),
		"links":        paginationLinks(paginator),
	}}
}

// Cursor serializes cursor state
func (s ArraySerializer) Cursor(cursor Cursor) Fields {
	return Fields{"cursor": Fields{
		"current": cursor.Current(),
		"prev":    cursor.Prev(),
		"next":    cursor.Next(),
		"count":   cursor.Count(),
	}}
}

// DataArraySerializer nests both item and collection output under the data
// key regardless of resource name
type DataArraySerializer struct {
	ArraySerializer
}

// Collection serializes collection data under the data key
func (s DataArraySerializer) Collection(name string, data []Fields) Fields {
	return Fields{defaultRootKey: data}
}

// Item serializes item data under the data key
func (s DataArraySerializer) Item(name string, data Fields) Fields {
	return Fields{defaultRootKey: data}
}

// Null serializes missing data under the data key
func (s DataArraySerializer) Null() Fields {
	return Fields{defaultRootKey: nil}
}

func paginationLinks(paginator Paginator) Fields {
	links := Fields{}
	if paginator.CurrentPage() > 1 {
		links["previous"] = paginator.URL(paginator.CurrentPage() - 1)
	}
	if paginator.CurrentPage() < paginator.LastPage() {
		links["next"] = paginator.URL(paginator.CurrentPage() + 1)
	}
	return links
}
