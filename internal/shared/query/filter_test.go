package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageFilter(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", 0, 0, 1, 20, 0},
		{"third page", 3, 10, 3, 10, 20},
		{"size capped", 2, 500, 2, 100, 100},
		{"negative page", -4, 5, 1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewPageFilter(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantSize, f.PageSize)
			assert.Equal(t, tt.wantOffset, f.Offset())
		})
	}
}

func TestPageFilter_ZeroValue(t *testing.T) {
	var f PageFilter
	assert.Equal(t, 0, f.Offset())
	assert.Equal(t, 20, f.Limit())
}
