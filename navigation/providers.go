package navigation

import (
	"context"

	"campus-navigator/model"
)

// GeolocationProvider 定位服务 (浏览器/系统定位)，每次调用只取一次位置
type GeolocationProvider interface {
	CurrentPosition(ctx context.Context) (model.Point, error)
}

// RouteRequest 路线请求 (起点、终点两个途经点)
type RouteRequest struct {
	Origin      model.Point
	Destination model.Point
	Mode        model.TravelMode
}

// DirectionsProvider 外部方向服务
// 找不到路径时返回的错误应包装 ErrRouteNotFound
type DirectionsProvider interface {
	Route(ctx context.Context, req RouteRequest) (*model.Route, error)
}

// MapRenderer 地图组件 (放置标记、绘制路线、平移缩放)
type MapRenderer interface {
	SetMarkers(locations []model.Location)
	Highlight(locationID int)
	DrawRoute(route *model.Route) // nil 表示清除路线
	CenterOn(center model.Point, zoom int)
}

// Observer 会话变化的观察者 (地图、摘要面板)，只读
type Observer interface {
	SessionChanged(s Snapshot)
}

// NoticeVariant 提示类型
type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

// Notice 给用户看的提示 (toast)
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Variant     NoticeVariant `json:"variant"`
}

// Notifier 接收提示
type Notifier interface {
	Notify(n Notice)
}

// Recorder 记录导航指标
type Recorder interface {
	DirectionsResult(outcome string)
	PositionAcquired(source model.PositionSource)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}

type nopRecorder struct{}

func (nopRecorder) DirectionsResult(string)               {}
func (nopRecorder) PositionAcquired(model.PositionSource) {}
