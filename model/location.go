package model

import "fmt"

// Point 代表一个经纬度点 (WGS84)
type Point struct {
	Lat float64 `json:"lat" toml:"lat"` // 纬度
	Lng float64 `json:"lng" toml:"lng"` // 经度
}

// Valid 检查坐标是否在合法范围内
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// String 以 "lat,lng" 形式输出 (方向服务的查询参数也用这个格式)
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// Category 地点类别，只允许下面四种
type Category string

const (
	CategoryAcademic   Category = "academic"
	CategoryFacility   Category = "facility"
	CategoryResidence  Category = "residence"
	CategoryRecreation Category = "recreation"
)

// Categories 返回所有合法类别 (按展示顺序)
func Categories() []Category {
	return []Category{
		CategoryAcademic,
		CategoryFacility,
		CategoryResidence,
		CategoryRecreation,
	}
}

// IsValid 检查类别是否属于封闭枚举
func (c Category) IsValid() bool {
	switch c {
	case CategoryAcademic, CategoryFacility, CategoryResidence, CategoryRecreation:
		return true
	default:
		return false
	}
}

// MarkerColor 地图标记颜色
func (c Category) MarkerColor() string {
	switch c {
	case CategoryAcademic:
		return "blue"
	case CategoryFacility:
		return "yellow"
	case CategoryResidence:
		return "green"
	default:
		return "purple"
	}
}

// Location 对应校园地图上的一个兴趣点 (教学楼、宿舍、食堂...)
// 启动时加载一次，之后只读
type Location struct {
	ID       int      `json:"id" toml:"id" gorm:"primaryKey;autoIncrement:false"`
	Name     string   `json:"name" toml:"name" gorm:"index;not null"`
	Position Point    `json:"position" toml:"position" gorm:"embedded"`
	Category Category `json:"category" toml:"category" gorm:"index;not null"`
}
