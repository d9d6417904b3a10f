package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine_ZeroDistance(t *testing.T) {
	c := Coordinate{Lat: 26.3, Lon: 50.2}
	assert.Zero(t, Haversine(c, c))
}

func TestHaversine_KnownDistances(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
		want float64
	}{
		{
			name: "one degree of latitude",
			a:    Coordinate{Lat: 0, Lon: 0},
			b:    Coordinate{Lat: 1, Lon: 0},
			want: 111.19,
		},
		{
			name: "riyadh to dammam",
			a:    Coordinate{Lat: 24.7136, Lon: 46.6753},
			b:    Coordinate{Lat: 26.4207, Lon: 50.0888},
			want: 389.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, tt.want*0.01)
		})
	}
}

func TestHaversine_Symmetric(t *testing.T) {
	a := Coordinate{Lat: 26.28, Lon: 50.21}
	b := Coordinate{Lat: 26.43, Lon: 50.10}
	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-12)
}

func TestBoundingBox_Validate(t *testing.T) {
	valid := BoundingBox{South: 26.17, West: 50.13, North: 26.38, East: 50.28}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name string
		box  BoundingBox
	}{
		{"inverted latitudes", BoundingBox{South: 26.38, West: 50.13, North: 26.17, East: 50.28}},
		{"inverted longitudes", BoundingBox{South: 26.17, West: 50.28, North: 26.38, East: 50.13}},
		{"latitude out of range", BoundingBox{South: -95, West: 0, North: 10, East: 1}},
		{"longitude out of range", BoundingBox{South: 0, West: 170, North: 10, East: 190}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.box.Validate())
		})
	}
}

func TestBoundingBox_String(t *testing.T) {
	b := BoundingBox{South: 26.17, West: 50.13, North: 26.38, East: 50.28}
	assert.Equal(t, "26.17,50.13,26.38,50.28", b.String())
}
