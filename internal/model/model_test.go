package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequest_Normalize(t *testing.T) {
	p := PageRequest{Page: -1, Size: 0}.Normalize()
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, DefaultPageSize, p.Size)

	p = PageRequest{Page: 3, Size: 500}.Normalize()
	assert.Equal(t, MaxPageSize, p.Size)
	assert.Equal(t, 300, p.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage([]int{1, 2}, PageRequest{Page: 1, Size: 2}, 5)

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 5, page.TotalElements)
	assert.True(t, page.HasContent())

	empty := NewPage[int](nil, PageRequest{Size: 10}, 0)
	assert.NotNil(t, empty.Content)
	assert.False(t, empty.HasContent())
	assert.Equal(t, 0, empty.TotalPages)
}

func TestDate_JSON(t *testing.T) {
	var c Course
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2025-03-01","endDate":"2025-04-01"}`), &c))
	assert.Equal(t, NewDate(2025, time.March, 1), c.StartDate)

	b, err := json.Marshal(c.EndDate)
	require.NoError(t, err)
	assert.Equal(t, `"2025-04-01"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"startDate":"01/03/2025"}`), &c))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 5, 6, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-05-06", d.String())

	require.NoError(t, d.Scan("2024-12-31"))
	assert.Equal(t, "2024-12-31", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.IsType(t, time.Time{}, v)
}

func TestCourseStatus_Terminal(t *testing.T) {
	assert.False(t, CourseStatusPlanned.Terminal())
	assert.False(t, CourseStatusActive.Terminal())
	assert.True(t, CourseStatusCompleted.Terminal())
	assert.True(t, CourseStatusCancelled.Terminal())
}
