package model

import "time"

// PositionSource 用户位置的来源
type PositionSource string

const (
	SourceDevice   PositionSource = "device-reported"  // 设备/浏览器上报
	SourceFallback PositionSource = "fallback-default" // 定位失败时使用校园中心
)

// UserPosition 用户当前位置
type UserPosition struct {
	Position   Point          `json:"position"`
	Source     PositionSource `json:"source"`
	AcquiredAt time.Time      `json:"acquired_at"`
}

// IsFallback 是否为兜底坐标
func (p UserPosition) IsFallback() bool {
	return p.Source == SourceFallback
}
