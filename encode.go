package fractly

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/francoispqt/gojay"
)

// marshalFields encodes a field tree with deterministic key order
func marshalFields(fields Fields, timeLayout string) ([]byte, error) {
	if timeLayout == "" {
		timeLayout = defaultTimeLayout
	}
	var encodeErr error
	object := &embeddedFields{fields: fields, layout: timeLayout, err: &encodeErr}
	data, err := gojay.MarshalJSONObject(object)
	if err != nil {
		return nil, err
	}
	if encodeErr != nil {
		return nil, encodeErr
	}
	return data, nil
}

type embeddedFields struct {
	fields Fields
	layout string
	err    *error
}

// IsNil returns true when there are no fields to encode
func (e *embeddedFields) IsNil() bool {
	return e == nil || e.fields == nil
}

// MarshalJSONObject encodes fields in sorted key order
func (e *embeddedFields) MarshalJSONObject(enc *gojay.Encoder) {
	keys := make([]string, 0, len(e.fields))
	for key := range e.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		e.encodeKey(enc, key, e.fields[key])
	}
}

func (e *embeddedFields) encodeKey(enc *gojay.Encoder, key string, value interface{}) {
	switch actual := value.(type) {
	case nil:
		enc.AddNullKey(key)
	case Fields:
		enc.AddObjectKey(key, &embeddedFields{fields: actual, layout: e.layout, err: e.err})
	case map[string]interface{}:
		enc.AddObjectKey(key, &embeddedFields{fields: actual, layout: e.layout, err: e.err})
	case []Fields:
		enc.AddArrayKey(key, &embeddedSlice{items: fieldsItems(actual), layout: e.layout, err: e.err})
	case []interface{}:
		enc.AddArrayKey(key, &embeddedSlice{items: actual, layout: e.layout, err: e.err})
	case string:
		enc.AddStringKey(key, actual)
	case bool:
		enc.AddBoolKey(key, actual)
	case int:
		enc.AddIntKey(key, actual)
	case int8:
		enc.AddIntKey(key, int(actual))
	case int16:
		enc.AddIntKey(key, int(actual))
	case int32:
		enc.AddIntKey(key, int(actual))
	case int64:
		enc.AddIntKey(key, int(actual))
	case uint:
		enc.AddIntKey(key, int(actual))
	case uint8:
		enc.AddIntKey(key, int(actual))
	case uint16:
		enc.AddIntKey(key, int(actual))
	case uint32:
		enc.AddIntKey(key, int(actual))
	case uint64:
		enc.AddIntKey(key, int(actual))
	case float32:
		enc.AddFloatKey(key, float64(actual))
	case float64:
		enc.AddFloatKey(key, actual)
	case time.Time:
		enc.AddStringKey(key, actual.Format(e.layout))
	case *time.Time:
		if actual == nil {
			enc.AddNullKey(key)
		} else {
			enc.AddStringKey(key, actual.Format(e.layout))
		}
	case gojay.MarshalerJSONObject:
		enc.AddObjectKey(key, actual)
	case gojay.MarshalerJSONArray:
		enc.AddArrayKey(key, actual)
	default:
		if normalized, ok := e.normalize(value); ok {
			e.encodeKey(enc, key, normalized)
			return
		}
		enc.AddNullKey(key)
	}
}

type embeddedSlice struct {
	items  []interface{}
	layout string
	err    *error
}

// IsNil returns true when there are no items to encode
func (e *embeddedSlice) IsNil() bool {
	return e == nil || e.items == nil
}

// MarshalJSONArray encodes slice items
func (e *embeddedSlice) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range e.items {
		e.encodeValue(enc, item)
	}
}

func (e *embeddedSlice) encodeValue(enc *gojay.Encoder, value interface{}) {
	switch actual := value.(type) {
	case nil:
		enc.AddNull()
	case Fields:
		enc.AddObject(&embeddedFields{fields: actual, layout: e.layout, err: e.err})
	case map[string]interface{}:
		enc.AddObject(&embeddedFields{fields: actual, layout: e.layout, err: e.err})
	case []Fields:
		enc.AddArray(&embeddedSlice{items: fieldsItems(actual), layout: e.layout, err: e.err})
	case []interface{}:
		enc.AddArray(&embeddedSlice{items: actual, layout: e.layout, err: e.err})
	case string:
		enc.AddString(actual)
	case bool:
		enc.AddBool(actual)
	case int:
		enc.AddInt(actual)
	case int8:
		enc.AddInt(int(actual))
	case int16:
		enc.AddInt(int(actual))
	case int32:
		enc.AddInt(int(actual))
	case int64:
		enc.AddInt(int(actual))
	case uint:
		enc.AddInt(int(actual))
	case uint8:
		enc.AddInt(int(actual))
	case uint16:
		enc.AddInt(int(actual))
	case uint32:
		enc.AddInt(int(actual))
	case uint64:
		enc.AddInt(int(actual))
	case float32:
		enc.AddFloat(float64(actual))
	case float64:
		enc.AddFloat(actual)
	case time.Time:
		enc.AddString(actual.Format(e.layout))
	case *time.Time:
		if actual == nil {
			enc.AddNull()
		} else {
			enc.AddString(actual.Format(e.layout))
		}
	case gojay.MarshalerJSONObject:
		enc.AddObject(actual)
	case gojay.MarshalerJSONArray:
		enc.AddArray(actual)
	default:
		holder := embeddedFields{layout: e.layout, err: e.err}
		if normalized, ok := holder.normalize(value); ok {
			e.encodeValue(enc, normalized)
			return
		}
		enc.AddNull()
	}
}

// normalize converts reflective slices and string keyed maps into their
// generic counterparts; unsupported leaves record an error
func (e *embeddedFields) normalize(value interface{}) (interface{}, bool) {
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr:
		if rValue.IsNil() {
			return nil, true
		}
		return e.normalize(rValue.Elem().Interface())
	case reflect.Slice, reflect.Array:
		items := make([]interface{}, rValue.Len())
		for i := 0; i < rValue.Len(); i++ {
			items[i] = rValue.Index(i).Interface()
		}
		return items, true
	case reflect.Map:
		if rValue.Type().Key().Kind() != reflect.String {
			break
		}
		fields := make(Fields, rValue.Len())
		for _, key := range rValue.MapKeys() {
			fields[key.String()] = rValue.MapIndex(key).Interface()
		}
		return fields, true
	case reflect.String:
		return rValue.String(), true
	case reflect.Bool:
		return rValue.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rValue.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rValue.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rValue.Float(), true
	case reflect.Struct:
		if fields, err := embeddedTransformer.Transform(value); err == nil {
			return fields, true
		}
	}
	if *e.err == nil {
		*e.err = fmt.Errorf("unsupported value type %T", value)
	}
	return nil, false
}

// embeddedTransformer expands struct leaves nested in field trees
var embeddedTransformer = NewStructTransformer()

func fieldsItems(data []Fields) []interface{} {
	items := make([]interface{}, len(data))
	for i := range data {
		items[i] = data[i]
	}
	return items
}
