package paginator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumPages(t *testing.T) {
	assert.Equal(t, 1, Paginator{Count: 0, PerPage: 10}.NumPages())
	assert.Equal(t, 1, Paginator{Count: 10, PerPage: 10}.NumPages())
	assert.Equal(t, 2, Paginator{Count: 13, PerPage: 10}.NumPages())
	assert.Equal(t, 3, Paginator{Count: 21, PerPage: 10}.NumPages())
}

func TestNumber(t *testing.T) {
	p := Paginator{Count: 13, PerPage: 10}

	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"1", 1},
		{"2", 2},
		{"3", 2},
		{"0", 2},
		{"-4", 2},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Number(tt.raw))
		})
	}
}

func TestOffset(t *testing.T) {
	p := Paginator{Count: 13, PerPage: 10}
	assert.Equal(t, 0, p.Offset(1))
	assert.Equal(t, 10, p.Offset(2))
	assert.Equal(t, 0, p.Offset(0))
}

func TestPageNavigation(t *testing.T) {
	first := &Page[int]{Items: make([]int, 10), Number: 1, Paginator: Paginator{Count: 13, PerPage: 10}}
	assert.Equal(t, 10, first.Len())
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.Equal(t, 2, first.NextNumber())

	last := &Page[int]{Items: make([]int, 3), Number: 2, Paginator: first.Paginator}
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())
	assert.Equal(t, 1, last.PreviousNumber())
	assert.True(t, last.HasOtherPages())

	only := &Page[int]{Number: 1, Paginator: Paginator{PerPage: 10}}
	assert.False(t, only.HasOtherPages())
	assert.Equal(t, 1, only.NumPages())
}
