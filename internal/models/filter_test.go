package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStateFilter(t *testing.T) {
	cases := []struct {
		raw  string
		want StateFilter
	}{
		{"", FilterAll},
		{"ALL", FilterAll},
		{"all", FilterAll},
		{"Current", FilterCurrent},
		{"PAST", FilterPast},
		{"future", FilterFuture},
		{"WAITING", FilterWaiting},
		{"rejected", FilterRejected},
	}

	for _, tc := range cases {
		got, err := ParseStateFilter(tc.raw)
		require.NoError(t, err, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestParseStateFilter_Unknown(t *testing.T) {
	_, err := ParseStateFilter("SOMETIMES")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOMETIMES")
}
