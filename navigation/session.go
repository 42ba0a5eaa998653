package navigation

import "campus-navigator/model"

// State 导航会话状态
type State string

const (
	StateIdle              State = "idle"
	StateLocationSelected  State = "location_selected"
	StateDirectionsLoading State = "directions_loading"
	StateRouteActive       State = "route_active"
)

// Session 导航会话，只由 Controller 修改
type Session struct {
	Selected          *model.Location
	RouteActive       bool
	Route             *model.Route
	LoadingDirections bool
}

// State 由会话字段推导当前状态
func (s Session) State() State {
	switch {
	case s.Selected == nil:
		return StateIdle
	case s.LoadingDirections:
		return StateDirectionsLoading
	case s.RouteActive:
		return StateRouteActive
	default:
		return StateLocationSelected
	}
}

// Snapshot 会话的只读快照，Version 单调递增，观察者据此丢弃乱序的旧快照
type Snapshot struct {
	Version           uint64              `json:"version"`
	Selection         uint64              `json:"selection"` // 第几次选择地点
	State             State               `json:"state"`
	Selected          *model.Location     `json:"selected_location"`
	Position          *model.UserPosition `json:"user_position"`
	RouteActive       bool                `json:"route_active"`
	Route             *model.Route        `json:"route"`
	LoadingDirections bool                `json:"is_loading_directions"`
	Display           *Display            `json:"display,omitempty"`
}

// Display 摘要面板展示的数据
type Display struct {
	Distance  string   `json:"distance"`
	Duration  string   `json:"duration"`
	Steps     []string `json:"steps,omitempty"`
	MoreSteps string   `json:"more_steps,omitempty"`
}

func cloneRoute(r *model.Route) *model.Route {
	if r == nil {
		return nil
	}
	out := *r
	out.Steps = append([]model.Step(nil), r.Steps...)
	out.Path = append([]model.Point(nil), r.Path...)
	return &out
}
