package model

// TravelMode 出行方式，校园导航只用步行
type TravelMode string

const ModeWalking TravelMode = "walking"

// Step 导航中的单步指引
type Step struct {
	Instruction     string  `json:"instruction"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Route 方向服务返回的路线
type Route struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	Steps           []Step  `json:"steps,omitempty"`
	Path            []Point `json:"path,omitempty"` // 折线坐标, 用于地图绘制
}
