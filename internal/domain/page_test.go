package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageRequest(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       PageRequest
	}{
		{"defaults", 0, 0, PageRequest{Page: 0, Size: DefaultPageSize}},
		{"negative page", -3, 5, PageRequest{Page: 0, Size: 5}},
		{"size clamped", 2, 1000, PageRequest{Page: 2, Size: MaxPageSize}},
		{"negative size", 1, -1, PageRequest{Page: 1, Size: DefaultPageSize}},
		{"huge page capped", math.MaxInt, 10, PageRequest{Page: math.MaxInt / 10, Size: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewPageRequest(tc.page, tc.size))
		})
	}

	assert.Equal(t, 20, NewPageRequest(2, 10).Offset())
}

func TestPageRequestOffsetNeverNegative(t *testing.T) {
	for _, size := range []int{0, 1, 7, 10, MaxPageSize, MaxPageSize + 1} {
		p := NewPageRequest(math.MaxInt, size)
		assert.GreaterOrEqual(t, p.Offset(), 0, "size %d", size)
	}
}

func TestTaskPageTotalPages(t *testing.T) {
	assert.Equal(t, 0, TaskPage{Size: 10, TotalElements: 0}.TotalPages())
	assert.Equal(t, 1, TaskPage{Size: 10, TotalElements: 10}.TotalPages())
	assert.Equal(t, 2, TaskPage{Size: 10, TotalElements: 11}.TotalPages())
	assert.Equal(t, 0, TaskPage{Size: 0, TotalElements: 11}.TotalPages())
}
