package sizing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOverflow = errors.New("overflow")

func TestToInt64(t *testing.T) {
	t.Parallel()

	v, err := ToInt64(42, errOverflow)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = ToInt64(math.MaxInt64, errOverflow)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), v)

	_, err = ToInt64(math.MaxInt64+1, errOverflow)
	require.ErrorIs(t, err, errOverflow)
}

func TestAddUint64(t *testing.T) {
	t.Parallel()

	sum, ok := AddUint64(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), sum)

	_, ok = AddUint64(math.MaxUint64, 1)
	assert.False(t, ok)
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		off, want uint64
		end       int64
		expected  uint64
	}{
		{"fits", 10, 5, 100, 5},
		{"clipped", 90, 50, 100, 10},
		{"at end", 100, 5, 100, 0},
		{"past end", 200, 5, 100, 0},
		{"empty source", 0, 5, 0, 0},
		{"zero want", 10, 0, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Remaining(tt.off, tt.want, tt.end))
		})
	}
}
