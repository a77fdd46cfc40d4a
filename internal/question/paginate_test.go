package question

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginateSecondPageOfFifteen(t *testing.T) {
	got := Paginate(seq(15), 2, 10)
	assert.Equal(t, []int{11, 12, 13, 14, 15}, got)
}

func TestPaginateBoundsAndContiguity(t *testing.T) {
	items := seq(37)
	for _, size := range []int{1, 3, 10, 50} {
		for page := 0; page <= 40; page++ {
			got := Paginate(items, page, size)
			assert.LessOrEqual(t, len(got), size)
			for i := 1; i < len(got); i++ {
				assert.Equal(t, got[i-1]+1, got[i], "page %d size %d not contiguous", page, size)
			}
			if len(got) > 0 {
				p := page
				if p <= 0 {
					p = 1
				}
				assert.Equal(t, (p-1)*size+1, got[0])
			}
		}
	}
}

func TestPaginateOutOfRangeIsEmpty(t *testing.T) {
	got := Paginate(seq(5), 3, 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, Paginate([]int{}, 1, 10))
	assert.Empty(t, Paginate[int](nil, 1, 10))
}

func TestPaginateHugePageDoesNotWrap(t *testing.T) {
	// (page-1)*10 wraps to 2 on 64-bit ints
	assert.Empty(t, Paginate(seq(15), 5534023222112865486, 10))
	assert.Empty(t, Paginate(seq(15), math.MaxInt, 10))
	assert.Empty(t, Paginate(seq(15), 2, math.MaxInt))
	assert.Equal(t, seq(15), Paginate(seq(15), 1, math.MaxInt))
}

func TestPaginateDefaults(t *testing.T) {
	items := seq(25)
	assert.Equal(t, seq(10), Paginate(items, 0, 0))
	assert.Equal(t, seq(10), Paginate(items, -3, 10))
	assert.Len(t, Paginate(items, 1, -1), DefaultPageSize)
}

func TestPaginateDoesNotAlias(t *testing.T) {
	items := seq(5)
	got := Paginate(items, 1, 3)
	got[0] = 99
	assert.Equal(t, 1, items[0])
}
