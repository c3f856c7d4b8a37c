package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 3))
	assert.Equal(t, 1, CalculateTotalPages(3, 3))
	assert.Equal(t, 3, CalculateTotalPages(7, 3))
	assert.Equal(t, 0, CalculateTotalPages(7, 0))
}

func TestPaginateSevenItemsByThree(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, []int{1, 2, 3}, Paginate(items, 3, 1))
	assert.Equal(t, []int{4, 5, 6}, Paginate(items, 3, 2))
	assert.Equal(t, []int{7}, Paginate(items, 3, 3))
	assert.Empty(t, Paginate(items, 3, 4))
	assert.NotNil(t, Paginate(items, 3, 4))
}

func TestPaginatePartitionsTheInput(t *testing.T) {
	for n := 0; n <= 20; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}

		for size := 1; size <= 6; size++ {
			var joined []int
			pages := CalculateTotalPages(int64(n), size)
			for p := 1; p <= pages; p++ {
				page := Paginate(items, size, p)
				assert.LessOrEqual(t, len(page), size)
				assert.NotEmpty(t, page)
				joined = append(joined, page...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, items, joined, "n=%d size=%d", n, size)
			assert.Empty(t, Paginate(items, size, pages+1))
		}
	}
}

func TestPaginateInvalidArguments(t *testing.T) {
	items := []string{"a", "b"}

	assert.Empty(t, Paginate(items, 0, 1))
	assert.Empty(t, Paginate(items, 2, 0))
	assert.Empty(t, Paginate(items, 2, -3))
	assert.Empty(t, Paginate([]string(nil), 2, 1))
}

func TestPaginateReturnsACopy(t *testing.T) {
	items := []int{1, 2, 3}

	page := Paginate(items, 2, 1)
	page[0] = 99

	assert.Equal(t, 1, items[0])
}

func TestShowControls(t *testing.T) {
	assert.False(t, ShowControls(0))
	assert.False(t, ShowControls(1))
	assert.True(t, ShowControls(2))
}

func TestPaginateHugePageIsEmpty(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Empty(t, Paginate(items, 10, math.MaxInt))
	assert.Empty(t, Paginate(items, 3, math.MaxInt/2))
	assert.Equal(t, items, Paginate(items, math.MaxInt, 1))
	assert.Equal(t, math.MaxInt, CalculateOffset(math.MaxInt, 10))
}
