package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 4.5, ParseFloat("4.5"))
	assert.Zero(t, ParseFloat(""))
	assert.Zero(t, ParseFloat("abc"))
}

func TestParseDate(t *testing.T) {
	d := ParseDate("2026-08-28")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), *d)

	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("28/08/2026"))
}

func TestParsePagination(t *testing.T) {
	offset, limit := ParsePagination("20", "50")
	assert.Equal(t, 20, offset)
	assert.Equal(t, 50, limit)

	offset, limit = ParsePagination("", "")
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = ParsePagination("-5", "0")
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)
}
