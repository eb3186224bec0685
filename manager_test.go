package fractly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_ParseIncludes(t *testing.T) {
	var testCases = []struct {
		description  string
		manager      func() *Manager
		specs        []string
		expect       []string
		expectParams map[string]ParamBag
	}{
		{
			description: "comma separated fragments are split and trimmed",
			manager:     func() *Manager { return NewManager() },
			specs:       []string{"a, b,c"},
			expect:      []string{"a", "b", "c"},
		},
		{
			description: "nested path requests parents implicitly",
			manager:     func() *Manager { return NewManager() },
			specs:       []string{"a.b.c"},
			expect:      []string{"a", "a.b", "a.b.c"},
		},
		{
			description: "duplicates collapse preserving first seen order",
			manager:     func() *Manager { return NewManager() },
			specs:       []string{"b", "a", "b", "a.b"},
			expect:      []string{"b", "a", "a.b"},
		},
		{
			description: "paths are trimmed to the recursion limit",
			manager:     func() *Manager { return NewManager(WithRecursionLimit(2)) },
			specs:       []string{"a.b.c.d"},
			expect:      []string{"a", "a.b"},
		},
		{
			description:  "parameters are captured per include path",
			manager:      func() *Manager { return NewManager() },
			specs:        []string{"comments:limit(5|1):sort(created|desc)", "author"},
			expect:       []string{"comments", "author"},
			expectParams: map[string]ParamBag{"comments": {"limit": {"5", "1"}, "sort": {"created", "desc"}}},
		},
		{
			description: "empty spec clears previous state",
			manager:     func() *Manager { return NewManager().ParseIncludes("a,b") },
			specs:       nil,
			expect:      nil,
		},
	}

	for _, testCase := range testCases {
		manager := testCase.manager()
		manager.ParseIncludes(testCase.specs...)
		assert.EqualValues(t, testCase.expect, manager.RequestedIncludes(), testCase.description)
		for path, expect := range testCase.expectParams {
			assert.EqualValues(t, expect, manager.IncludeParams(path), testCase.description)
		}
	}
}

func TestManager_ParseExcludes(t *testing.T) {
	manager := NewManager()
	manager.ParseExcludes("author, comments.votes", "author")
	assert.EqualValues(t, []string{"author", "comments.votes"}, manager.RequestedExcludes())
	assert.True(t, manager.IsExcluded("author"))
	assert.False(t, manager.IsExcluded("comments"))
}

func TestManager_ParseIncludes_Replaces(t *testing.T) {
	manager := NewManager()
	manager.ParseIncludes("a")
	manager.ParseIncludes("b")
	assert.EqualValues(t, []string{"b"}, manager.RequestedIncludes(), "manager state reflects the latest push")
}
