package catalog

import "campus-navigator/model"

// CampusCenter SRM Kattankulathur 校区中心坐标 (定位失败时的兜底位置)
var CampusCenter = model.Point{Lat: 12.8230, Lng: 80.0444}

// DefaultLocations 内置的校园地点数据 (首次启动时写入数据库)
func DefaultLocations() []model.Location {
	return []model.Location{
		{ID: 1, Name: "Main Building", Position: model.Point{Lat: 12.8230, Lng: 80.0444}, Category: model.CategoryAcademic},
		{ID: 2, Name: "Tech Park", Position: model.Point{Lat: 12.8235, Lng: 80.0450}, Category: model.CategoryAcademic},
		{ID: 3, Name: "University Library", Position: model.Point{Lat: 12.8225, Lng: 80.0440}, Category: model.CategoryAcademic},
		{ID: 4, Name: "Student Center", Position: model.Point{Lat: 12.8240, Lng: 80.0445}, Category: model.CategoryFacility},
		{ID: 5, Name: "Hostel Block A", Position: model.Point{Lat: 12.8220, Lng: 80.0460}, Category: model.CategoryResidence},
		{ID: 6, Name: "Hostel Block B", Position: model.Point{Lat: 12.8225, Lng: 80.0465}, Category: model.CategoryResidence},
		{ID: 7, Name: "Food Court", Position: model.Point{Lat: 12.8245, Lng: 80.0448}, Category: model.CategoryFacility},
		{ID: 8, Name: "Sports Complex", Position: model.Point{Lat: 12.8250, Lng: 80.0470}, Category: model.CategoryRecreation},
		{ID: 9, Name: "Engineering Block", Position: model.Point{Lat: 12.8232, Lng: 80.0455}, Category: model.CategoryAcademic},
		{ID: 10, Name: "Science Block", Position: model.Point{Lat: 12.8237, Lng: 80.0460}, Category: model.CategoryAcademic},
		{ID: 11, Name: "Medical Center", Position: model.Point{Lat: 12.8243, Lng: 80.0438}, Category: model.CategoryFacility},
		{ID: 12, Name: "Auditorium", Position: model.Point{Lat: 12.8228, Lng: 80.0428}, Category: model.CategoryFacility},
	}
}

// Default 内置目录
func Default() *Catalog {
	c, err := New(DefaultLocations())
	if err != nil {
		panic(err)
	}
	return c
}
