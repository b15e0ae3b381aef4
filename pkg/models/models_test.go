package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Location
		wantErr  bool
	}{
		{"plain", "39.78,-89.65", Location{Lat: 39.78, Lon: -89.65}, false},
		{"spaces", " 39.78 , -89.65 ", Location{Lat: 39.78, Lon: -89.65}, false},
		{"integers", "1,2", Location{Lat: 1, Lon: 2}, false},
		{"no comma", "39.78 -89.65", Location{}, true},
		{"bad latitude", "north,-89.65", Location{}, true},
		{"bad longitude", "39.78,", Location{}, true},
		{"nan", "NaN,1", Location{}, true},
		{"inf", "1,+Inf", Location{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := ParseLocation(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLocation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, loc)
		})
	}
}
