package fractly

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type (
	testAuthor struct {
		ID   int
		Name string
	}

	testComment struct {
		ID   int
		Body string
	}

	testPost struct {
		ID       int
		Title    string
		Author   *testAuthor
		Comments []*testComment
	}
)

func postTransformer() TransformerFunc {
	return func(value interface{}) (Fields, error) {
		post := value.(*testPost)
		return Fields{"id": post.ID, "title": post.Title}, nil
	}
}

func TestBuilder_ToArray(t *testing.T) {
	var testCases = []struct {
		description string
		builder     func() *Builder
		expect      Fields
		expectErr   error
	}{
		{
			description: "item with function transformer",
			builder: func() *Builder {
				return NewBuilder(nil).
					Item(&testPost{ID: 1, Title: "intro"}).
					TransformWith(postTransformer())
			},
			expect: Fields{"id": 1, "title": "intro"},
		},
		{
			description: "collection wrapped under default root key",
			builder: func() *Builder {
				posts := []*testPost{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}}
				return NewBuilder(nil).
					Collection(posts, WithTransformer(postTransformer()))
			},
			expect: Fields{"data": []Fields{
				{"id": 1, "title": "first"},
				{"id": 2, "title": "second"},
			}},
		},
		{
			description: "collection with resource name override",
			builder: func() *Builder {
				posts := []*testPost{{ID: 3, Title: "third"}}
				return NewBuilder(nil).
					Collection(posts, WithTransformer(postTransformer()), WithName("posts"))
			},
			expect: Fields{"posts": []Fields{{"id": 3, "title": "third"}}},
		},
		{
			description: "meta merged into envelope",
			builder: func() *Builder {
				return NewBuilder(nil).
					Collection([]*testPost{}, WithTransformer(postTransformer())).
					AddMeta(Fields{"total": 0})
			},
			expect: Fields{"data": []Fields{}, "meta": Fields{"total": 0}},
		},
		{
			description: "first meta write wins on key collision",
			builder: func() *Builder {
				return NewBuilder(nil).
					Item(&testPost{ID: 4, Title: "meta"}, WithTransformer(postTransformer())).
					AddMeta(Fields{"x": 1}).
					AddMeta(Fields{"x": 2, "y": 3})
			},
			expect: Fields{"id": 4, "title": "meta", "meta": Fields{"x": 1, "y": 3}},
		},
		{
			description: "data array serializer nests item output",
			builder: func() *Builder {
				return NewBuilder(nil).
					Item(&testPost{ID: 5, Title: "nested"}, WithTransformer(postTransformer())).
					SerializeWith(DataArraySerializer{})
			},
			expect: Fields{"data": Fields{"id": 5, "title": "nested"}},
		},
		{
			description: "missing transformer",
			builder: func() *Builder {
				return NewBuilder(nil).Item(&testPost{ID: 1})
			},
			expectErr: ErrNoTransformer,
		},
		{
			description: "missing transformer regardless of other configuration",
			builder: func() *Builder {
				return NewBuilder(nil).
					Collection([]*testPost{}).
					WithResourceName("posts").
					ParseIncludes("author").
					AddMeta(Fields{"k": "v"})
			},
			expectErr: ErrNoTransformer,
		},
		{
			description: "unset resource kind",
			builder: func() *Builder {
				return NewBuilder(nil).TransformWith(postTransformer())
			},
			expectErr: ErrInvalidTransformation,
		},
		{
			description: "unknown resource kind",
			builder: func() *Builder {
				return NewBuilder(nil).
					Data(ResourceKind(33), &testPost{}, WithTransformer(postTransformer()))
			},
			expectErr: ErrInvalidTransformation,
		},
		{
			description: "collection data has to be a slice",
			builder: func() *Builder {
				return NewBuilder(nil).
					Collection(&testPost{ID: 1}, WithTransformer(postTransformer()))
			},
			expectErr: ErrInvalidTransformation,
		},
	}

	for _, testCase := range testCases {
		actual, err := testCase.builder().ToArray()
		if testCase.expectErr != nil {
			assert.True(t, errors.Is(err, testCase.expectErr), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestBuilder_ParseIncludes(t *testing.T) {
	commaSpec := NewBuilder(nil).ParseIncludes("a, b,c")
	sequenceSpec := NewBuilder(nil).ParseIncludes("a", "b", "c")
	assert.EqualValues(t, commaSpec.includes, sequenceSpec.includes, "comma and sequence specs are equivalent")

	accumulated := NewBuilder(nil).ParseIncludes("a").ParseIncludes("b").ParseIncludes("a")
	assert.EqualValues(t, []string{"a", "b"}, accumulated.includes, "includes accumulate as a union")

	sugar := NewBuilder(nil).Include("author")
	explicit := NewBuilder(nil).ParseIncludes("author")
	assert.EqualValues(t, explicit.includes, sugar.includes, "Include is equivalent to ParseIncludes")

	excluded := NewBuilder(nil).Exclude("author")
	assert.EqualValues(t, []string{"author"}, excluded.excludes, "Exclude is equivalent to ParseExcludes")
}

func TestBuilder_MarshalJSON(t *testing.T) {
	builder := NewBuilder(nil).
		Collection([]*testPost{{ID: 1, Title: "first"}}, WithTransformer(postTransformer()), WithName("posts")).
		AddMeta(Fields{"page": 1})

	viaJSON, err := json.Marshal(builder)
	assert.Nil(t, err)
	viaToJSON, err := builder.ToJSON()
	assert.Nil(t, err)
	assert.EqualValues(t, string(viaToJSON), string(viaJSON), "MarshalJSON output equals ToJSON output")

	expect, err := builder.ToArray()
	assert.Nil(t, err)
	var actual Fields
	assert.Nil(t, json.Unmarshal(viaJSON, &actual))
	expectData, err := json.Marshal(map[string]interface{}(expect))
	assert.Nil(t, err)
	var normalized Fields
	assert.Nil(t, json.Unmarshal(expectData, &normalized))
	assert.EqualValues(t, normalized, actual, "MarshalJSON output equals ToArray output")
}

func TestBuilder_Reproduce(t *testing.T) {
	builder := NewBuilder(nil).
		Item(&testPost{ID: 1, Title: "first"}, WithTransformer(postTransformer()))

	first, err := builder.ToArray()
	assert.Nil(t, err)
	assert.EqualValues(t, Fields{"id": 1, "title": "first"}, first)

	//produced is not terminal: reconfigure and re-produce
	second, err := builder.Item(&testPost{ID: 2, Title: "second"}).ToArray()
	assert.Nil(t, err)
	assert.EqualValues(t, Fields{"id": 2, "title": "second"}, second)
}
