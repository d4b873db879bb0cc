package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {

	cases := []struct {
		name     string
		current  int
		total    int
		pages    []int
		prev     bool
		next     bool
		ellipsis bool
	}{
		{"single page", 1, 1, []int{1}, false, false, false},
		{"three pages middle", 2, 3, []int{1, 2, 3}, true, true, false},
		{"five pages last", 5, 5, []int{1, 2, 3, 4, 5}, true, false, false},
		{"ten pages first", 1, 10, []int{1, 2, 3, 4, 5}, false, true, true},
		{"ten pages third", 3, 10, []int{1, 2, 3, 4, 5}, true, true, true},
		{"ten pages centered", 5, 10, []int{3, 4, 5, 6, 7}, true, true, true},
		{"ten pages near end", 8, 10, []int{6, 7, 8, 9, 10}, true, true, false},
		{"ten pages last", 10, 10, []int{6, 7, 8, 9, 10}, true, false, false},
		{"six pages fourth", 4, 6, []int{2, 3, 4, 5, 6}, true, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			win := New(tc.current, tc.total)

			assert.Equal(t, tc.pages, win.Pages)
			assert.Equal(t, tc.prev, win.Prev)
			assert.Equal(t, tc.next, win.Next)
			assert.Equal(t, tc.ellipsis, win.Ellipsis)
		})
	}
}

func TestNewSmallTotals(t *testing.T) {

	for total := 1; total <= WindowSize; total++ {
		for current := 1; current <= total; current++ {
			win := New(current, total)

			assert.Len(t, win.Pages, total)
			for i, page := range win.Pages {
				assert.Equal(t, i+1, page)
			}
			assert.False(t, win.Ellipsis)
		}
	}
}

func TestNewOutOfRange(t *testing.T) {

	win := New(0, 0)
	assert.Equal(t, []int{1}, win.Pages)
	assert.Equal(t, 1, win.Current)
	assert.False(t, win.Prev)
	assert.False(t, win.Next)

	win = New(42, 10)
	assert.Equal(t, 10, win.Current)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, win.Pages)
}

func TestTotalPages(t *testing.T) {

	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 10, TotalPages(100, 10))
	assert.Equal(t, 1, TotalPages(5, 0))
}

func TestClamp(t *testing.T) {

	assert.Equal(t, 1, Clamp(0, 3))
	assert.Equal(t, 1, Clamp(-7, 3))
	assert.Equal(t, 2, Clamp(2, 3))
	assert.Equal(t, 3, Clamp(99, 3))
	assert.Equal(t, 1, Clamp(5, 0))
}

func TestRender(t *testing.T) {

	out := New(5, 10).Render()
	assert.Contains(t, out, "[5]")
	assert.Contains(t, out, "…")
	assert.Contains(t, out, "10")

	out = New(10, 10).Render()
	assert.Contains(t, out, "[10]")
	assert.NotContains(t, out, "…")
}
