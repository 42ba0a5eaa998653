package navigation

import (
	"context"
	"testing"

	"campus-navigator/catalog"
	"campus-navigator/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBind_PlacesMarkersAndCentersOnCampus(t *testing.T) {
	f := newFixture(t, &fakeGeo{p: devicePoint}, &mockDirections{})
	r := &recordingRenderer{}

	Bind(f.ctrl, r, catalog.CampusCenter)

	assert.Equal(t, []string{"markers", "center"}, r.ops())
	assert.Equal(t, 12, r.calls[0].markers)
	assert.Equal(t, catalog.CampusCenter, r.calls[1].center)
	assert.Equal(t, LocationZoom, r.calls[1].zoom)
}

func TestBind_FollowsSessionChanges(t *testing.T) {
	path := []model.Point{devicePoint, {Lat: 12.8240, Lng: 80.0460}, {Lat: 12.8250, Lng: 80.0470}}
	dir := &mockDirections{}
	dir.On("Route", mock.Anything, mock.Anything).
		Return(&model.Route{DistanceMeters: 430, DurationSeconds: 330, Path: path}, nil)
	f := newFixture(t, &fakeGeo{p: devicePoint}, dir)
	r := &recordingRenderer{}
	b := Bind(f.ctrl, r, catalog.CampusCenter)
	ctx := context.Background()

	f.ctrl.AcquireUserPosition(ctx)
	r.reset()

	// 标记点击走控制器
	require.NoError(t, b.MarkerClicked(8))
	assert.Equal(t, []string{"highlight", "center"}, r.ops())
	hl, _ := r.last("highlight")
	assert.Equal(t, 8, hl.id)
	c, _ := r.last("center")
	assert.Equal(t, location(t, 8).Position, c.center)
	assert.Equal(t, 8, f.ctrl.Snapshot().Selected.ID)

	r.reset()
	_, err := f.ctrl.RequestDirections(ctx)
	require.NoError(t, err)
	drawn, ok := r.last("route")
	require.True(t, ok)
	require.NotNil(t, drawn.route)
	assert.Len(t, drawn.route.Path, 3)
	fit, ok := r.last("center")
	require.True(t, ok)
	assert.Greater(t, fit.zoom, 14)

	r.reset()
	f.ctrl.ClearRoute()
	cleared, ok := r.last("route")
	require.True(t, ok)
	assert.Nil(t, cleared.route)

	// 重复选择同一地点也会重新居中
	r.reset()
	require.NoError(t, b.MarkerClicked(8))
	assert.Equal(t, []string{"highlight", "center"}, r.ops())

	assert.ErrorIs(t, b.MarkerClicked(99), catalog.ErrLocationNotFound)
}

func TestBind_IgnoresOutOfOrderSnapshots(t *testing.T) {
	f := newFixture(t, &fakeGeo{p: devicePoint}, &mockDirections{})
	r := &recordingRenderer{}
	b := Bind(f.ctrl, r, catalog.CampusCenter)

	f.ctrl.SelectLocation(location(t, 3))
	latest := f.ctrl.Snapshot()
	r.reset()

	stale := latest
	stale.Version = latest.Version - 1
	stale.Selection = latest.Selection + 1
	b.SessionChanged(stale)

	assert.Empty(t, r.ops())
}
