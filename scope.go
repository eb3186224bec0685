package fractly

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/xunsafe"
)

// Scope binds a resource to its manager configuration and resolves the
// resource graph on demand; it caches nothing, reconfigure and re-resolve
// as needed
type Scope struct {
	manager  *Manager
	resource *Resource
	//identifier names the include segment this scope resolves, empty at root
	identifier string
	parent     []string
}

// Identifier returns the include segment this scope resolves
func (s *Scope) Identifier() string {
	return s.identifier
}

// Path returns the dotted include path of this scope, empty at root
func (s *Scope) Path() string {
	if s.identifier == "" {
		return ""
	}
	return strings.Join(append(append([]string{}, s.parent...), s.identifier), ".")
}

// ToArray resolves the resource into its serialized field tree
func (s *Scope) ToArray() (Fields, error) {
	serializer := s.manager.Serializer()
	resource := s.resource
	var envelope Fields
	switch resource.Kind() {
	case KindItem:
		data, err := s.transform(resource.Transformer(), resource.Data())
		if err != nil {
			return nil, err
		}
		if data == nil {
			envelope = serializer.Null()
		} else {
			envelope = serializer.Item(resource.Name(), data)
		}
	case KindCollection:
		values, err := collectionValues(resource.Data())
		if err != nil {
			return nil, err
		}
		data := make([]Fields, 0, len(values))
		for _, value := range values {
			transformed, err := s.transform(resource.Transformer(), value)
			if err != nil {
				return nil, err
			}
			data = append(data, transformed)
		}
		envelope = serializer.Collection(resource.Name(), data)
	default:
		return nil, fmt.Errorf("unknown resource kind %v: %w", resource.Kind(), ErrInvalidTransformation)
	}
	if meta := serializer.Meta(resource.Meta()); len(meta) > 0 {
		envelope.MergeAbsent(meta)
	}
	if resource.Kind() == KindCollection {
		if paginator := resource.Paginator(); paginator != nil {
			envelope.MergeAbsent(serializer.Paginator(paginator))
		}
		if cursor := resource.Cursor(); cursor != nil {
			envelope.MergeAbsent(serializer.Cursor(cursor))
		}
	}
	return envelope, nil
}

// ToJSON resolves the resource and encodes the result
func (s *Scope) ToJSON() ([]byte, error) {
	fields, err := s.ToArray()
	if err != nil {
		return nil, err
	}
	return marshalFields(fields, s.manager.timeLayout)
}

func (s *Scope) transform(transformer Transformer, value interface{}) (Fields, error) {
	if transformer == nil {
		return nil, ErrNoTransformer
	}
	fields, err := transformer.Transform(value)
	if err != nil {
		return nil, fmt.Errorf("failed to transform %v: %w", s.describe(), err)
	}
	if fields == nil {
		return nil, nil
	}
	relational, ok := transformer.(Relational)
	if !ok {
		return fields, nil
	}
	for _, name := range s.relationNames(relational) {
		includePath := s.includePath(name)
		child, err := relational.Include(name, value, s.manager.IncludeParams(includePath))
		if err != nil {
			return nil, fmt.Errorf("failed to include %v: %w", includePath, err)
		}
		if child == nil {
			continue
		}
		childScope := &Scope{
			manager:    s.manager,
			resource:   child,
			identifier: name,
			parent:     s.childParent(),
		}
		childData, err := childScope.ToArray()
		if err != nil {
			return nil, err
		}
		s.manager.log.V(1).Info("resolved include", "path", includePath)
		fields[name] = childData
	}
	return fields, nil
}

// relationNames returns include names to fire for this scope: default
// includes union requested available includes, minus excluded ones
func (s *Scope) relationNames(relational Relational) []string {
	if s.depth() >= s.manager.recursionLimit {
		return nil
	}
	var result []string
	seen := map[string]bool{}
	add := func(name string) {
		if name == "" || seen[name] || s.manager.IsExcluded(s.includePath(name)) {
			return
		}
		seen[name] = true
		result = append(result, name)
	}
	for _, name := range relational.DefaultIncludes() {
		add(name)
	}
	for _, name := range relational.AvailableIncludes() {
		if s.manager.IsRequested(s.includePath(name)) {
			add(name)
		}
	}
	return result
}

func (s *Scope) includePath(name string) string {
	if path := s.Path(); path != "" {
		return path + "." + name
	}
	return name
}

func (s *Scope) childParent() []string {
	if s.identifier == "" {
		return nil
	}
	return append(append([]string{}, s.parent...), s.identifier)
}

func (s *Scope) depth() int {
	if s.identifier == "" {
		return 0
	}
	return len(s.parent) + 1
}

func (s *Scope) describe() string {
	if path := s.Path(); path != "" {
		return fmt.Sprintf("%v resource at %v", s.resource.Kind(), path)
	}
	return fmt.Sprintf("%v resource", s.resource.Kind())
}

// collectionValues expands collection payload into individual values
func collectionValues(data interface{}) ([]interface{}, error) {
	if data == nil {
		return nil, nil
	}
	switch actual := data.(type) {
	case []interface{}:
		return actual, nil
	}
	valueType := reflect.TypeOf(data)
	if valueType.Kind() == reflect.Ptr {
		rValue := reflect.ValueOf(data)
		if rValue.IsNil() {
			return nil, nil
		}
		return collectionValues(rValue.Elem().Interface())
	}
	if valueType.Kind() != reflect.Slice {
		return nil, fmt.Errorf("collection data: expected slice, got %T: %w", data, ErrInvalidTransformation)
	}
	valuePtr := xunsafe.AsPointer(data)
	xSlice := xunsafe.NewSlice(valueType)
	sliceLen := xSlice.Len(valuePtr)
	ret := make([]interface{}, sliceLen)
	for i := 0; i < sliceLen; i++ {
		ret[i] = xSlice.ValueAt(valuePtr, i)
	}
	return ret, nil
}
