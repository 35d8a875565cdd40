package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationDefaults(t *testing.T) {
	p := ParsePagination(url.Values{})
	assert.Equal(t, 15, p.Limit)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.Offset)
}

func TestParsePaginationBounds(t *testing.T) {
	q := url.Values{"limit": {"100"}, "page": {"3"}}
	p := ParsePagination(q)
	assert.Equal(t, 30, p.Limit, "limit is capped at 30")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 60, p.Offset)

	q = url.Values{"limit": {"-5"}, "page": {"0"}}
	p = ParsePagination(q)
	assert.Equal(t, 15, p.Limit)
	assert.Equal(t, 1, p.Page)
}

func TestComputeMeta(t *testing.T) {
	p := Pagination{Limit: 10, Page: 2, Offset: 10}
	p.ComputeMeta(25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestSlice(t *testing.T) {
	p := Pagination{Limit: 10, Page: 1, Offset: 0}
	from, to := p.Slice(4)
	assert.Equal(t, 0, from)
	assert.Equal(t, 4, to)

	p = Pagination{Limit: 10, Page: 3, Offset: 20}
	from, to = p.Slice(4)
	assert.Equal(t, 4, from)
	assert.Equal(t, 4, to)
}
