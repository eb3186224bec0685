package fractly

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

type (
	//Transformer converts a single domain value into its serializable fields
	Transformer interface {
		Transform(value interface{}) (Fields, error)
	}

	//TransformerFunc adapts a function to the Transformer interface
	TransformerFunc func(value interface{}) (Fields, error)

	//Relational is implemented by transformers exposing nested relations;
	//default includes fire unconditionally, available includes fire when requested
	Relational interface {
		AvailableIncludes() []string
		DefaultIncludes() []string
		Include(name string, value interface{}, params ParamBag) (*Resource, error)
	}
)

// Transform satisfies Transformer
func (f TransformerFunc) Transform(value interface{}) (Fields, error) {
	return f(value)
}

type (
	//StructTransformer transforms struct values into fields using reflection,
	//with per-type plans cached across calls
	StructTransformer struct {
		caseFormat text.CaseFormat
		plans      *SyncMap[reflect.Type, *structPlan]
	}

	//StructTransformerOption represents struct transformer option
	StructTransformerOption func(t *StructTransformer)

	structPlan struct {
		fields []*fieldPlan
	}

	fieldPlan struct {
		name      string
		omitEmpty bool
		field     *xunsafe.Field
	}
)

// WithCaseFormat sets the output case format applied to field names
// without an explicit json or format tag name
func WithCaseFormat(caseFormat text.CaseFormat) StructTransformerOption {
	return func(t *StructTransformer) {
		t.caseFormat = caseFormat
	}
}

// NewStructTransformer creates a reflection backed transformer
func NewStructTransformer(opts ...StructTransformerOption) *StructTransformer {
	ret := &StructTransformer{
		caseFormat: text.CaseFormatUndefined,
		plans:      NewSyncMap[reflect.Type, *structPlan](),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Transform converts a struct or pointer to struct into fields
func (t *StructTransformer) Transform(value interface{}) (Fields, error) {
	if value == nil {
		return nil, nil
	}
	valueType := reflect.TypeOf(value)
	structType := valueType
	switch valueType.Kind() {
	case reflect.Ptr:
		structType = valueType.Elem()
		if reflect.ValueOf(value).IsNil() {
			return nil, nil
		}
	case reflect.Struct:
		rPointer := reflect.New(structType)
		rPointer.Elem().Set(reflect.ValueOf(value))
		value = rPointer.Interface()
	default:
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
	}
	plan := t.plan(structType)
	ptr := xunsafe.AsPointer(value)
	result := make(Fields, len(plan.fields))
	for _, item := range plan.fields {
		fieldValue := item.field.Value(ptr)
		if item.omitEmpty && isEmptyValue(fieldValue) {
			continue
		}
		result[item.name] = fieldValue
	}
	return result, nil
}

func (t *StructTransformer) plan(structType reflect.Type) *structPlan {
	if ret, ok := t.plans.Get(structType); ok {
		return ret
	}
	ret := &structPlan{}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name, omitEmpty, ignore := t.fieldName(field)
		if ignore {
			continue
		}
		ret.fields = append(ret.fields, &fieldPlan{name: name, omitEmpty: omitEmpty, field: xunsafe.NewField(field)})
	}
	t.plans.Put(structType, ret)
	return ret
}

func (t *StructTransformer) fieldName(field reflect.StructField) (string, bool, bool) {
	name := field.Name
	explicit := false
	omitEmpty := false
	if jsonTag, ok := field.Tag.Lookup("json"); ok {
		if jsonTag == "-" {
			return "", false, true
		}
		parts := strings.Split(jsonTag, ",")
		if parts[0] != "" {
			name = parts[0]
			explicit = true
		}
		for _, part := range parts[1:] {
			if part == "omitempty" {
				omitEmpty = true
			}
		}
	}
	if fTag, _ := format.Parse(field.Tag); fTag != nil {
		if fTag.Ignore {
			return "", false, true
		}
		omitEmpty = omitEmpty || fTag.Omitempty
		if !explicit && fTag.Name != "" {
			name = fTag.Name
			explicit = true
		}
	}
	if !explicit {
		name = t.formatName(name)
	}
	return name, omitEmpty, false
}

func (t *StructTransformer) formatName(name string) string {
	if t.caseFormat == "" || t.caseFormat == text.CaseFormatUndefined {
		return name
	}
	src := text.DetectCaseFormat(name)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(name, t.caseFormat)
}

func isEmptyValue(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Slice, reflect.Map:
		return rValue.Len() == 0
	}
	return rValue.IsZero()
}
