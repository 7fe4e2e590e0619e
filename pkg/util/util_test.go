package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInPlaceFilter(t *testing.T) {
	values := []int{5, 2, 8, 1, 9}
	InPlaceFilter(&values, func(v int) bool { return v > 2 })

	assert.Equal(t, []int{5, 8, 9}, values)
}

func TestParseWindow(t *testing.T) {
	may12 := time.Date(2017, time.May, 12, 0, 0, 0, 0, time.UTC)
	may21 := time.Date(2017, time.May, 21, 0, 0, 0, 0, time.UTC)

	start, end, err := ParseWindow("2017-05-12", "2017-05-21", "")
	require.NoError(t, err)
	assert.Equal(t, may12, start)
	assert.Equal(t, may21, end)

	start, end, err = ParseWindow("2017-05-12", "", "P10D")
	require.NoError(t, err)
	assert.Equal(t, may12, start)
	assert.Equal(t, may21, end)

	start, end, err = ParseWindow("2017-05-12", "", "")
	require.NoError(t, err)
	assert.Equal(t, may12, start)
	assert.Equal(t, may12, end)

	_, _, err = ParseWindow("2017-05-12", "2017-05-11", "")
	assert.Error(t, err)

	_, _, err = ParseWindow("12.05.2017", "", "")
	assert.Error(t, err)

	_, _, err = ParseWindow("2017-05-12", "2017-05-13", "P1D")
	assert.Error(t, err)

	_, _, err = ParseWindow("2017-05-12", "", "ten days")
	assert.Error(t, err)
}

func TestGetEnvironmentVariable(t *testing.T) {
	t.Setenv("GTFS_EXTRACT_TEST_VALUE", "set")

	assert.Equal(t, "set", GetEnvironmentVariable("TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnvironmentVariable("TEST_UNSET_VALUE", "fallback"))
}
