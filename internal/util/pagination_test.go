package util

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page, size int
		want       PageRequest
	}{
		{name: "defaults", page: 0, size: 0, want: PageRequest{Page: 1, PageSize: DefaultPageSize}},
		{name: "negative page", page: -3, size: 10, want: PageRequest{Page: 1, PageSize: 10}},
		{name: "oversized", page: 2, size: 1000, want: PageRequest{Page: 2, PageSize: MaxPageSize}},
		{name: "in range", page: 3, size: 25, want: PageRequest{Page: 3, PageSize: 25}},
		{name: "huge page", page: math.MaxInt, size: 100, want: PageRequest{Page: MaxPage, PageSize: 100}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizePage(tt.page, tt.size))
		})
	}
}

func TestNormalizePage_HugePageStaysPastTheEnd(t *testing.T) {
	t.Parallel()

	p := NormalizePage(math.MaxInt, 100)
	assert.Positive(t, p.Offset())

	page := NewPage([]int{}, 250, p)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestNewPage_Envelope(t *testing.T) {
	t.Parallel()

	p := NewPage([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 25, PageRequest{Page: 2, PageSize: 10})
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPage([]int{1, 2, 3, 4, 5}, 25, PageRequest{Page: 3, PageSize: 10})
	assert.False(t, last.HasNext)

	empty := NewPage[int](nil, 0, PageRequest{Page: 1, PageSize: 20})
	require.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestMapPage_KeepsEnvelope(t *testing.T) {
	t.Parallel()

	p := NewPage([]int{1, 2}, 12, PageRequest{Page: 1, PageSize: 2})
	out := MapPage(p, func(v int) string { return string(rune('a' + v - 1)) })
	assert.Equal(t, []string{"a", "b"}, out.Items)
	assert.Equal(t, p.Total, out.Total)
	assert.Equal(t, p.TotalPages, out.TotalPages)
	assert.Equal(t, p.HasNext, out.HasNext)
}

func TestParseOptionalTime(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseOptionalTime(""))
	assert.Nil(t, ParseOptionalTime("not-a-date"))

	d := ParseOptionalTime("2024-03-05")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *d)

	end := ParseOptionalEndTime("2024-03-05")
	require.NotNil(t, end)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC), *end)

	ts := ParseOptionalEndTime("2024-03-05T10:00:00Z")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), *ts)
}

func TestParseOptionalScalars(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseOptionalUint("x"))
	require.NotNil(t, ParseOptionalUint("4"))
	assert.EqualValues(t, 4, *ParseOptionalUint("4"))

	assert.Nil(t, ParseOptionalBool("maybe"))
	require.NotNil(t, ParseOptionalBool("true"))
	assert.True(t, *ParseOptionalBool("true"))

	assert.Equal(t, 9, ParseIntDefault("oops", 9))
}
