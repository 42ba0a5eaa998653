package render

import (
	"fmt"
	"sync"

	"campus-navigator/model"
)

// MarkerIconURL 标记图标 (按类别颜色)
const MarkerIconURL = "https://maps.google.com/mapfiles/ms/icons/%s-dot.png"

// RouteStyle 路线折线样式
type RouteStyle struct {
	StrokeColor   string  `json:"stroke_color"`
	StrokeWeight  int     `json:"stroke_weight"`
	StrokeOpacity float64 `json:"stroke_opacity"`
}

// DefaultRouteStyle 默认路线样式
var DefaultRouteStyle = RouteStyle{StrokeColor: "#4285F4", StrokeWeight: 5, StrokeOpacity: 0.8}

// Marker 地图标记
type Marker struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Position    model.Point    `json:"position"`
	Category    model.Category `json:"category"`
	Icon        string         `json:"icon"`
	Highlighted bool           `json:"highlighted"`
}

// RouteOverlay 地图上的路线
type RouteOverlay struct {
	Path  []model.Point `json:"path"`
	Style RouteStyle    `json:"style"`
}

// View 前端渲染地图所需的全部数据
type View struct {
	Markers     []Marker      `json:"markers"`
	Highlighted int           `json:"highlighted_id,omitempty"`
	Route       *RouteOverlay `json:"route,omitempty"`
	Center      model.Point   `json:"center"`
	Zoom        int           `json:"zoom"`
}

// MapView 服务端的地图组件：记录绘制指令，由 SPA 拉取后渲染
type MapView struct {
	mu          sync.RWMutex
	markers     []Marker
	highlighted int
	route       *RouteOverlay
	center      model.Point
	zoom        int
}

// NewMapView 创建空地图
func NewMapView() *MapView {
	return &MapView{}
}

func (m *MapView) SetMarkers(locations []model.Location) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.markers = make([]Marker, 0, len(locations))
	for _, loc := range locations {
		m.markers = append(m.markers, Marker{
			ID:       loc.ID,
			Name:     loc.Name,
			Position: loc.Position,
			Category: loc.Category,
			Icon:     fmt.Sprintf(MarkerIconURL, loc.Category.MarkerColor()),
		})
	}
}

func (m *MapView) Highlight(locationID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highlighted = locationID
}

func (m *MapView) DrawRoute(route *model.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if route == nil {
		m.route = nil
		return
	}
	m.route = &RouteOverlay{
		Path:  append([]model.Point(nil), route.Path...),
		Style: DefaultRouteStyle,
	}
}

func (m *MapView) CenterOn(center model.Point, zoom int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
	m.zoom = zoom
}

// View 当前地图状态的副本
func (m *MapView) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v := View{
		Markers:     make([]Marker, len(m.markers)),
		Highlighted: m.highlighted,
		Center:      m.center,
		Zoom:        m.zoom,
	}
	for i, marker := range m.markers {
		marker.Highlighted = marker.ID == m.highlighted
		v.Markers[i] = marker
	}
	if m.route != nil {
		overlay := *m.route
		overlay.Path = append([]model.Point(nil), m.route.Path...)
		v.Route = &overlay
	}
	return v
}
