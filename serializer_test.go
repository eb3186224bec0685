package fractly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArraySerializer(t *testing.T) {
	serializer := ArraySerializer{}
	assert.EqualValues(t, Fields{"data": []Fields{{"id": 1}}}, serializer.Collection("", []Fields{{"id": 1}}), "default root key")
	assert.EqualValues(t, Fields{"posts": []Fields{{"id": 1}}}, serializer.Collection("posts", []Fields{{"id": 1}}), "named root key")
	assert.EqualValues(t, Fields{"id": 1}, serializer.Item("posts", Fields{"id": 1}), "item is inlined")
	assert.EqualValues(t, Fields{}, serializer.Null(), "null envelope")
	assert.Nil(t, serializer.Meta(nil), "empty meta yields no envelope")
	assert.EqualValues(t, Fields{"meta": Fields{"k": 1}}, serializer.Meta(Fields{"k": 1}))
}

func TestDataArraySerializer(t *testing.T) {
	serializer := DataArraySerializer{}
	assert.EqualValues(t, Fields{"data": []Fields{{"id": 1}}}, serializer.Collection("posts", []Fields{{"id": 1}}), "resource name is ignored")
	assert.EqualValues(t, Fields{"data": Fields{"id": 1}}, serializer.Item("posts", Fields{"id": 1}), "item nests under data")
	assert.EqualValues(t, Fields{"data": nil}, serializer.Null(), "null nests under data")
	assert.EqualValues(t, Fields{"meta": Fields{"k": 1}}, serializer.Meta(Fields{"k": 1}), "meta inherited from array serializer")
}

func TestPaginationLinks(t *testing.T) {
	pageURL := func(page int) string { return "p" }
	first := NewSlicePaginator(10, 2, 1, WithPageURL(pageURL))
	assert.EqualValues(t, Fields{"next": "p"}, paginationLinks(first), "first page has no previous link")
	last := NewSlicePaginator(10, 2, 5, WithPageURL(pageURL))
	assert.EqualValues(t, Fields{"previous": "p"}, paginationLinks(last), "last page has no next link")
}
