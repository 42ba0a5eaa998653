package navigation

import (
	"sync"

	"campus-navigator/model"
	"campus-navigator/utils"
)

// LocationZoom 选中地点时的缩放级别
const LocationZoom = 17

// MapBinding 把会话快照翻译成地图组件的调用
// 地图只观察会话，标记点击通过 MarkerClicked 回到控制器
type MapBinding struct {
	ctrl     *Controller
	renderer MapRenderer

	mu          sync.Mutex
	lastVersion uint64
	seen        bool
	selection   uint64
	routeDrawn  bool
}

// Bind 创建绑定：放置全部标记、居中到校园中心，然后订阅会话变化
func Bind(ctrl *Controller, renderer MapRenderer, center model.Point) *MapBinding {
	b := &MapBinding{ctrl: ctrl, renderer: renderer}
	renderer.SetMarkers(ctrl.Catalog().All())
	renderer.CenterOn(center, LocationZoom)
	ctrl.Subscribe(b)
	return b
}

// MarkerClicked 地图标记被点击
func (b *MapBinding) MarkerClicked(locationID int) error {
	return b.ctrl.SelectLocationByID(locationID)
}

// SessionChanged 实现 Observer
func (b *MapBinding) SessionChanged(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// 乱序到达的旧快照直接忽略
	if b.seen && s.Version <= b.lastVersion {
		return
	}
	b.seen = true
	b.lastVersion = s.Version

	// 每次选择 (包括重复选择同一地点) 都重新高亮并居中
	if s.Selected != nil && s.Selection != b.selection {
		b.selection = s.Selection
		b.renderer.Highlight(s.Selected.ID)
		b.renderer.CenterOn(s.Selected.Position, LocationZoom)
	}

	switch {
	case s.Route != nil:
		b.renderer.DrawRoute(s.Route)
		b.routeDrawn = true
		b.fitRoute(s)
	case b.routeDrawn:
		b.renderer.DrawRoute(nil)
		b.routeDrawn = false
	}
}

// fitRoute 平移缩放到能看到整条路线
func (b *MapBinding) fitRoute(s Snapshot) {
	points := append([]model.Point(nil), s.Route.Path...)
	if s.Position != nil {
		points = append(points, s.Position.Position)
	}
	if s.Selected != nil {
		points = append(points, s.Selected.Position)
	}

	bounds, ok := utils.BoundsOf(points...)
	if !ok {
		return
	}
	b.renderer.CenterOn(bounds.Center(), utils.ZoomForSpan(bounds.Span()))
}
