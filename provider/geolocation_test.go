package provider

import (
	"context"
	"testing"

	"campus-navigator/model"
	"campus-navigator/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReported(t *testing.T) {
	p := model.Point{Lat: 12.8221, Lng: 80.0435}

	got, err := Reported{Point: &p}.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = Reported{}.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, ErrGeolocationUnsupported)

	// 错误码优先于坐标
	_, err = Reported{Point: &p, Code: CodePermissionDenied}.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCodeError(t *testing.T) {
	for _, code := range []string{CodePermissionDenied, CodeTimeout, CodePositionUnavailable, CodeUnsupported, "weird"} {
		assert.ErrorIs(t, CodeError(code), navigation.ErrGeoUnavailable, code)
	}
	assert.ErrorIs(t, CodeError(CodeTimeout), ErrPositionTimeout)
}

func TestFixedGeolocation(t *testing.T) {
	p := model.Point{Lat: 1, Lng: 2}
	got, err := FixedGeolocation{Point: p}.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p, got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FixedGeolocation{Point: p}.CurrentPosition(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Unsupported{}.CurrentPosition(context.Background())
	assert.ErrorIs(t, err, navigation.ErrGeoUnavailable)
}
