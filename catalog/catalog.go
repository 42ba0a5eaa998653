package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"campus-navigator/model"
	"campus-navigator/utils"

	"github.com/BurntSushi/toml"
)

// ErrLocationNotFound 目录中没有该 ID
var ErrLocationNotFound = errors.New("location not found")

// DataError 目录数据非法 (加载时致命错误)
type DataError struct {
	Index  int // 在原始列表中的位置
	ID     int
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("invalid catalog entry #%d (id=%d): %s", e.Index, e.ID, e.Reason)
}

// Catalog 校园地点目录，有序且只读
type Catalog struct {
	locations []model.Location
	byID      map[int]int // ID -> 下标
}

// New 校验并构建目录，任何一条非法数据都会导致整个目录加载失败
func New(locations []model.Location) (*Catalog, error) {
	c := &Catalog{
		locations: make([]model.Location, 0, len(locations)),
		byID:      make(map[int]int, len(locations)),
	}

	for i, loc := range locations {
		if err := validate(i, loc); err != nil {
			return nil, err
		}
		if _, dup := c.byID[loc.ID]; dup {
			return nil, &DataError{Index: i, ID: loc.ID, Reason: "duplicate id"}
		}
		c.byID[loc.ID] = len(c.locations)
		c.locations = append(c.locations, loc)
	}

	return c, nil
}

func validate(i int, loc model.Location) error {
	switch {
	case strings.TrimSpace(loc.Name) == "":
		return &DataError{Index: i, ID: loc.ID, Reason: "empty name"}
	case !loc.Category.IsValid():
		return &DataError{Index: i, ID: loc.ID, Reason: fmt.Sprintf("unknown category %q", loc.Category)}
	case !loc.Position.Valid():
		return &DataError{Index: i, ID: loc.ID, Reason: fmt.Sprintf("coordinate out of range (%s)", loc.Position)}
	}
	return nil
}

// LoadFromFile 按扩展名加载目录文件 (.json 或 .toml)
func LoadFromFile(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadFromTOML(path)
	case ".json":
		return LoadFromJSON(path)
	default:
		return nil, fmt.Errorf("不支持的目录文件格式: %s", path)
	}
}

// LoadFromTOML 从 TOML 文件加载目录
//
//	[[locations]]
//	id = 1
//	name = "Main Building"
//	category = "academic"
//	position = { lat = 12.8230, lng = 80.0444 }
func LoadFromTOML(path string) (*Catalog, error) {
	var data struct {
		Locations []model.Location `toml:"locations"`
	}
	if _, err := toml.DecodeFile(path, &data); err != nil {
		return nil, fmt.Errorf("解析目录 TOML 失败: %w", err)
	}
	return New(data.Locations)
}

// LoadFromJSON 从 JSON 文件加载目录
// 文件格式: {"locations": [{"id":1,"name":"...","position":{"lat":..,"lng":..},"category":"academic"}]}
func LoadFromJSON(path string) (*Catalog, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取目录文件失败: %w", err)
	}

	var data struct {
		Locations []model.Location `json:"locations"`
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("解析目录 JSON 失败: %w", err)
	}

	return New(data.Locations)
}

// All 返回整个目录的副本 (保持目录顺序)
func (c *Catalog) All() []model.Location {
	out := make([]model.Location, len(c.locations))
	copy(out, c.locations)
	return out
}

// Len 地点数量
func (c *Catalog) Len() int { return len(c.locations) }

// Get 根据 ID 获取地点
func (c *Catalog) Get(id int) (model.Location, error) {
	idx, ok := c.byID[id]
	if !ok {
		return model.Location{}, fmt.Errorf("%w: %d", ErrLocationNotFound, id)
	}
	return c.locations[idx], nil
}

// Search 按名称搜索 (不区分大小写的子串匹配)
// 空查询返回完整目录，结果保持目录顺序
func (c *Catalog) Search(query string) []model.Location {
	if query == "" {
		return c.All()
	}

	q := strings.ToLower(query)
	results := make([]model.Location, 0)
	for _, loc := range c.locations {
		if strings.Contains(strings.ToLower(loc.Name), q) {
			results = append(results, loc)
		}
	}
	return results
}

// Filter 在搜索结果上再按类别过滤，category 为空表示不过滤
func (c *Catalog) Filter(query string, category model.Category) []model.Location {
	results := c.Search(query)
	if category == "" {
		return results
	}

	filtered := results[:0]
	for _, loc := range results {
		if loc.Category == category {
			filtered = append(filtered, loc)
		}
	}
	return filtered
}

// Nearest 找到离给定坐标最近的地点，返回直线距离 (米)；目录为空时 ok 为 false
func (c *Catalog) Nearest(p model.Point) (loc model.Location, meters float64, ok bool) {
	minDist := -1.0
	for _, l := range c.locations {
		dist := utils.HaversineDistance(p, l.Position)
		if minDist < 0 || dist < minDist {
			minDist = dist
			loc = l
		}
	}
	return loc, minDist, minDist >= 0
}
