package fractly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarshalFields(t *testing.T) {
	when := time.Date(2021, 3, 5, 10, 30, 0, 0, time.UTC)

	var testCases = []struct {
		description string
		fields      Fields
		layout      string
		expect      string
		expectErr   bool
	}{
		{
			description: "keys are encoded in sorted order",
			fields:      Fields{"b": 2, "a": 1, "c": "three"},
			expect:      `{"a":1,"b":2,"c":"three"}`,
		},
		{
			description: "nested fields and slices",
			fields: Fields{
				"data": []Fields{{"id": 1}, {"id": 2}},
				"meta": Fields{"page": 1, "done": true},
			},
			expect: `{"data":[{"id":1},{"id":2}],"meta":{"done":true,"page":1}}`,
		},
		{
			description: "nil values encode as null",
			fields:      Fields{"data": nil},
			expect:      `{"data":null}`,
		},
		{
			description: "time encodes with the default layout",
			fields:      Fields{"created": when},
			expect:      `{"created":"2021-03-05T10:30:00Z"}`,
		},
		{
			description: "time encodes with a custom layout",
			fields:      Fields{"created": when},
			layout:      "2006-01-02",
			expect:      `{"created":"2021-03-05"}`,
		},
		{
			description: "typed slices and numeric widths normalize",
			fields:      Fields{"ids": []int{1, 2, 3}, "size": int64(4), "ratio": float32(0.5)},
			expect:      `{"ids":[1,2,3],"ratio":0.5,"size":4}`,
		},
		{
			description: "struct leaves expand through the embedded transformer",
			fields:      Fields{"author": struct{ Name string }{Name: "ann"}},
			expect:      `{"author":{"Name":"ann"}}`,
		},
		{
			description: "unsupported leaf type",
			fields:      Fields{"ch": make(chan int)},
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		actual, err := marshalFields(testCase.fields, testCase.layout)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, string(actual), testCase.description)
	}
}
