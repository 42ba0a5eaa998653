package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePolyline(t *testing.T) {
	// Google 文档中的示例
	points, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@", 5)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.InDelta(t, 38.5, points[0].Lat, 1e-9)
	assert.InDelta(t, -120.2, points[0].Lng, 1e-9)
	assert.InDelta(t, 40.7, points[1].Lat, 1e-9)
	assert.InDelta(t, -120.95, points[1].Lng, 1e-9)
	assert.InDelta(t, 43.252, points[2].Lat, 1e-9)
	assert.InDelta(t, -126.453, points[2].Lng, 1e-9)
}

func TestDecodePolyline_Precision6(t *testing.T) {
	points, err := DecodePolyline("_p~iF~ps|U", 6)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 3.85, points[0].Lat, 1e-9)
	assert.InDelta(t, -12.02, points[0].Lng, 1e-9)
}

func TestDecodePolyline_EmptyAndTruncated(t *testing.T) {
	points, err := DecodePolyline("", 5)
	require.NoError(t, err)
	assert.Empty(t, points)

	_, err = DecodePolyline("_p~iF~ps|", 5)
	assert.Error(t, err)
}
