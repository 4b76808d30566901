package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ClampsInvalidValues(t *testing.T) {
	params := Normalize(0, 0)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
	assert.Equal(t, 0, params.Offset)

	params = Normalize(-3, 1000)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, MaxLimit, params.Limit)
}

func TestNormalize_ComputesOffset(t *testing.T) {
	params := Normalize(3, 9)
	assert.Equal(t, 18, params.Offset)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{20, 9, 3}, // 3x3 card grid over 20 records
		{18, 9, 2},
		{19, 9, 3},
		{0, 9, 0},
		{1, 9, 1},
		{9, 9, 1},
		{10, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit),
			"TotalPages(%d, %d)", tt.total, tt.limit)
	}
}

func TestGetMeta_HasNextHasPrev(t *testing.T) {
	meta := GetMeta(Normalize(2, 9), 20)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(Normalize(3, 9), 20)
	assert.False(t, meta.HasNext)

	meta = GetMeta(Normalize(1, 9), 20)
	assert.False(t, meta.HasPrev)
}
