package utils

import (
	"math"

	"campus-navigator/model"
)

// EarthRadius WGS84 参考椭球长半轴 (米)
const EarthRadius = 6378137.0

// 地图缩放级别范围
const (
	MinZoom = 3
	MaxZoom = 19
)

// DegreesToRadians 角度转弧度
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// HaversineDistance Haversine 公式 (直接计算两点间球面距离, 米)
func HaversineDistance(p1, p2 model.Point) float64 {
	lat1 := DegreesToRadians(p1.Lat)
	lon1 := DegreesToRadians(p1.Lng)
	lat2 := DegreesToRadians(p2.Lat)
	lon2 := DegreesToRadians(p2.Lng)

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	// a = sin²(Δlat/2) + cos(lat1) * cos(lat2) * sin²(Δlon/2)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// c = 2 * atan2(√a, √(1-a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// Bounds 经纬度包围盒
type Bounds struct {
	SouthWest model.Point `json:"south_west"`
	NorthEast model.Point `json:"north_east"`
}

// Center 包围盒中心
func (b Bounds) Center() model.Point {
	return model.Point{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2,
	}
}

// Span 对角线长度 (米)
func (b Bounds) Span() float64 {
	return HaversineDistance(b.SouthWest, b.NorthEast)
}

// BoundsOf 计算一组点的包围盒，空输入返回 false
func BoundsOf(points ...model.Point) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b := Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
		b.SouthWest.Lng = math.Min(b.SouthWest.Lng, p.Lng)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
		b.NorthEast.Lng = math.Max(b.NorthEast.Lng, p.Lng)
	}
	return b, true
}

// ZoomForSpan 根据要显示的距离估算缩放级别
// 按 Web Mercator 每级翻倍计算：zoom 0 时一屏约 40000 km，视口按 ~600px 宽，留一倍余量
func ZoomForSpan(meters float64) int {
	if meters <= 0 {
		return MaxZoom
	}
	zoom := int(math.Floor(math.Log2(2 * math.Pi * EarthRadius / (meters * 2))))
	return max(MinZoom, min(MaxZoom, zoom))
}
