package handler

import (
	"errors"
	"net/http"
	"strconv"

	"campus-navigator/catalog"
	"campus-navigator/model"

	"github.com/gin-gonic/gin"
)

// LocationHandler 地点查询接口
type LocationHandler struct {
	catalog *catalog.Catalog
}

func NewLocationHandler(cat *catalog.Catalog) *LocationHandler {
	return &LocationHandler{catalog: cat}
}

// List 搜索地点: GET /api/locations?q=lib&category=academic
func (h *LocationHandler) List(c *gin.Context) {
	query := c.Query("q")
	category := model.Category(c.Query("category"))
	if category != "" && !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的地点类别", "categories": model.Categories()})
		return
	}

	results := h.catalog.Filter(query, category)
	c.JSON(http.StatusOK, gin.H{
		"count":     len(results),
		"locations": results,
	})
}

// Get 获取指定地点
func (h *LocationHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "地点 ID 无效"})
		return
	}

	loc, err := h.catalog.Get(id)
	if errors.Is(err, catalog.ErrLocationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "地点不存在"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, loc)
}
