package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2026-03-01T14:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 14, got.Hour())

	// Zone-less timestamps are accepted too.
	got, err = ParseDate("2026-03-01T08:00:00")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())

	_, err = ParseDate("03/01/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
