package render

import (
	"fmt"
	"testing"

	"campus-navigator/catalog"
	"campus-navigator/model"
	"campus-navigator/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapView_RecordsRendererCalls(t *testing.T) {
	m := NewMapView()
	m.SetMarkers(catalog.DefaultLocations())
	m.Highlight(8)
	m.CenterOn(catalog.CampusCenter, 17)

	v := m.View()
	require.Len(t, v.Markers, 12)
	assert.Equal(t, "https://maps.google.com/mapfiles/ms/icons/blue-dot.png", v.Markers[0].Icon)
	assert.Equal(t, "https://maps.google.com/mapfiles/ms/icons/purple-dot.png", v.Markers[7].Icon)
	assert.True(t, v.Markers[7].Highlighted)
	assert.False(t, v.Markers[0].Highlighted)
	assert.Equal(t, 8, v.Highlighted)
	assert.Equal(t, catalog.CampusCenter, v.Center)
	assert.Equal(t, 17, v.Zoom)
	assert.Nil(t, v.Route)

	m.DrawRoute(&model.Route{Path: []model.Point{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}}})
	v = m.View()
	require.NotNil(t, v.Route)
	assert.Len(t, v.Route.Path, 2)
	assert.Equal(t, DefaultRouteStyle, v.Route.Style)

	m.DrawRoute(nil)
	assert.Nil(t, m.View().Route)
}

func TestMapView_DrivenByController(t *testing.T) {
	m := NewMapView()
	ctrl := navigation.NewController(catalog.Default(), nil, nil, navigation.Options{Fallback: catalog.CampusCenter})
	b := navigation.Bind(ctrl, m, catalog.CampusCenter)

	require.NoError(t, b.MarkerClicked(3))

	v := m.View()
	assert.Equal(t, 3, v.Highlighted)
	assert.Equal(t, model.Point{Lat: 12.8225, Lng: 80.0440}, v.Center)
	assert.Equal(t, navigation.LocationZoom, v.Zoom)
}

func TestNoticeLog(t *testing.T) {
	l := NewNoticeLog(2)
	assert.Empty(t, l.Drain())

	for i := 0; i < 3; i++ {
		l.Notify(navigation.Notice{Title: fmt.Sprintf("n%d", i)})
	}

	got := l.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "n1", got[0].Title)
	assert.Equal(t, "n2", got[1].Title)
	assert.False(t, got[0].At.IsZero())
	assert.Empty(t, l.Drain())
}
