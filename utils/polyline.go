package utils

import (
	"fmt"
	"math"

	"campus-navigator/model"
)

// DecodePolyline 解码 Encoded Polyline (Google 精度 5, Valhalla 精度 6)
func DecodePolyline(encoded string, precision int) ([]model.Point, error) {
	if encoded == "" {
		return []model.Point{}, nil
	}

	factor := math.Pow10(precision)
	var points []model.Point
	lat, lng := 0, 0
	index := 0

	next := func() (int, error) {
		shift, result := 0, 0
		for {
			if index >= len(encoded) {
				return 0, fmt.Errorf("polyline truncated at byte %d", index)
			}
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		// 最低位是符号位
		if result&1 != 0 {
			return ^(result >> 1), nil
		}
		return result >> 1, nil
	}

	for index < len(encoded) {
		dLat, err := next()
		if err != nil {
			return nil, err
		}
		dLng, err := next()
		if err != nil {
			return nil, err
		}
		lat += dLat
		lng += dLng
		points = append(points, model.Point{
			Lat: float64(lat) / factor,
			Lng: float64(lng) / factor,
		})
	}

	return points, nil
}
