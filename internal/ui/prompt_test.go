package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/graph"
)

type fakeGeocoder struct {
	box geo.BoundingBox
	ok  bool
	err error
}

func (f *fakeGeocoder) SearchBoundingBox(_ string) (geo.BoundingBox, bool, error) {
	return f.box, f.ok, f.err
}

func testPlaces() []graph.Place {
	return []graph.Place{
		{ID: 1, Name: "Corniche Cafe", Category: "cafe", Street: "King Saud Rd", NearestNode: 11},
		{ID: 2, Name: "City Mall", Category: "mall", NearestNode: 12},
		{ID: 3, Name: "Harbor Restaurant", Category: "restaurant", NearestNode: 13},
		{ID: 4, Name: "Beach Cafe", Category: "cafe", NearestNode: 14},
	}
}

func TestSelectRegion_Preset(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("1\n7\n"), &out)

	box, err := p.SelectRegion(&fakeGeocoder{})
	require.NoError(t, err)
	assert.Equal(t, geo.BoundingBox{South: 26.27, West: 50.20, North: 26.31, East: 50.24}, box)
	assert.Contains(t, out.String(), "Khobar Corniche (Small)")
}

func TestSelectRegion_CitySearch(t *testing.T) {
	want := geo.BoundingBox{South: 26.17, West: 50.13, North: 26.38, East: 50.28}
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\nKhobar\n"), &out)

	box, err := p.SelectRegion(&fakeGeocoder{box: want, ok: true})
	require.NoError(t, err)
	assert.Equal(t, want, box)
}

func TestSelectRegion_CitySearchNoResultsThenPreset(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\nNowhereville\n1\n1\n"), &out)

	box, err := p.SelectRegion(&fakeGeocoder{ok: false})
	require.NoError(t, err)
	assert.NoError(t, box.Validate())
	assert.Contains(t, out.String(), `No results for "Nowhereville"`)
}

func TestSelectRegion_Manual(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("3\n26.27, 50.20, 26.31, 50.24\n"), &out)

	box, err := p.SelectRegion(&fakeGeocoder{})
	require.NoError(t, err)
	assert.Equal(t, geo.BoundingBox{South: 26.27, West: 50.20, North: 26.31, East: 50.24}, box)
}

func TestSelectRegion_ManualInvalidThenRetry(t *testing.T) {
	// south > north is rejected, then a valid preset pick succeeds
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("3\n26.31,50.20,26.27,50.24\n1\n1\n"), &out)

	box, err := p.SelectRegion(&fakeGeocoder{})
	require.NoError(t, err)
	assert.NoError(t, box.Validate())
	assert.Contains(t, out.String(), "Invalid bounding box")
}

func TestSelectRegion_InputClosed(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.SelectRegion(&fakeGeocoder{})
	assert.ErrorIs(t, err, ErrAborted)
}

func TestSelectRegion_GeocoderError(t *testing.T) {
	p := NewPrompter(strings.NewReader("2\nKhobar\n"), &bytes.Buffer{})
	_, err := p.SelectRegion(&fakeGeocoder{err: errors.New("boom")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "city search")
}

func TestSelectPlace_BrowseByCategory(t *testing.T) {
	var out bytes.Buffer
	// categories sorted: cafe, mall, restaurant; cafe list sorted:
	// Beach Cafe, Corniche Cafe
	p := NewPrompter(strings.NewReader("1\n1\n2\n"), &out)

	place, err := p.SelectPlace(testPlaces(), "start")
	require.NoError(t, err)
	assert.Equal(t, "Corniche Cafe", place.Name)
	assert.Contains(t, out.String(), "cafe (2 places)")
	assert.Contains(t, out.String(), "King Saud Rd")
}

func TestSelectPlace_SearchByName(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\nharbor\n1\n"), &out)

	place, err := p.SelectPlace(testPlaces(), "destination")
	require.NoError(t, err)
	assert.Equal(t, "Harbor Restaurant", place.Name)
}

func TestSelectPlace_SearchNoMatchThenBrowse(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("2\nxyzzy\n1\n2\n1\n"), &out)

	place, err := p.SelectPlace(testPlaces(), "start")
	require.NoError(t, err)
	assert.Equal(t, "City Mall", place.Name)
	assert.Contains(t, out.String(), `No places match "xyzzy"`)
}

func TestSelectPlace_Empty(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.SelectPlace(nil, "start")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no places")
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"Yes\n", true},
		{"n\n", false},
		{"no\n", false},
	}
	for _, tc := range cases {
		p := NewPrompter(strings.NewReader(tc.input), &bytes.Buffer{})
		got, err := p.Confirm("Continue?")
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}
