package utils

import (
	"testing"

	"campus-navigator/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	library := model.Point{Lat: 12.8225, Lng: 80.0440}
	sports := model.Point{Lat: 12.8250, Lng: 80.0470}

	assert.InDelta(t, 0, HaversineDistance(library, library), 1e-9)
	// 约 430 米
	assert.InDelta(t, 429, HaversineDistance(library, sports), 5)
	assert.InDelta(t, HaversineDistance(library, sports), HaversineDistance(sports, library), 1e-9)
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf()
	assert.False(t, ok)

	b, ok := BoundsOf(
		model.Point{Lat: 12.8225, Lng: 80.0440},
		model.Point{Lat: 12.8250, Lng: 80.0470},
		model.Point{Lat: 12.8228, Lng: 80.0428},
	)
	require.True(t, ok)
	assert.Equal(t, model.Point{Lat: 12.8225, Lng: 80.0428}, b.SouthWest)
	assert.Equal(t, model.Point{Lat: 12.8250, Lng: 80.0470}, b.NorthEast)
	assert.InDelta(t, 12.82375, b.Center().Lat, 1e-9)
	assert.InDelta(t, 80.0449, b.Center().Lng, 1e-9)
}

func TestZoomForSpan(t *testing.T) {
	assert.Equal(t, MaxZoom, ZoomForSpan(0))
	assert.Equal(t, 16, ZoomForSpan(300))
	assert.Equal(t, 15, ZoomForSpan(500))
	assert.Equal(t, MinZoom, ZoomForSpan(1e8))
}
