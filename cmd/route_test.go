package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/route-cli/internal/geo"
)

func TestParseBBox(t *testing.T) {
	box, err := parseBBox("26.27, 50.20, 26.31, 50.24")
	require.NoError(t, err)
	assert.Equal(t, geo.BoundingBox{South: 26.27, West: 50.20, North: 26.31, East: 50.24}, box)
}

func TestParseBBox_Invalid(t *testing.T) {
	cases := []string{
		"",
		"1,2,3",
		"a,b,c,d",
		"26.31,50.20,26.27,50.24", // south > north
	}
	for _, s := range cases {
		_, err := parseBBox(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestParseCoordinate(t *testing.T) {
	c, err := parseCoordinate("26.28, 50.21")
	require.NoError(t, err)
	assert.Equal(t, geo.Coordinate{Lat: 26.28, Lon: 50.21}, c)
}

func TestParseCoordinate_Invalid(t *testing.T) {
	cases := []string{"", "26.28", "x,50.21", "26.28,y", "91,0", "0,181"}
	for _, s := range cases {
		_, err := parseCoordinate(s)
		assert.Error(t, err, "input %q", s)
	}
}
