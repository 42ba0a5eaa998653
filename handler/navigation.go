package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"campus-navigator/catalog"
	"campus-navigator/metrics"
	"campus-navigator/model"
	"campus-navigator/navigation"
	"campus-navigator/provider"
	"campus-navigator/render"

	"github.com/gin-gonic/gin"
)

// NavConfig 导航接口配置
type NavConfig struct {
	Fallback           model.Point
	GeolocationTimeout time.Duration
	// Geolocation 浏览器没有上报定位时使用，默认 provider.Unsupported (直接兜底)
	Geolocation navigation.GeolocationProvider
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
	// SessionTTL 会话空闲多久后回收，0 表示使用 DefaultSessionTTL
	SessionTTL time.Duration
}

// DefaultSessionTTL 会话默认空闲回收时间
const DefaultSessionTTL = 30 * time.Minute

// navSession 每个用户一份：控制器、地图和提示队列
type navSession struct {
	ctrl    *navigation.Controller
	binding *navigation.MapBinding
	view    *render.MapView
	notices *render.NoticeLog

	lastUsed time.Time // 由 NavHandler.mu 保护
}

// NavHandler 导航接口，按用户持有导航会话
type NavHandler struct {
	catalog    *catalog.Catalog
	directions navigation.DirectionsProvider
	cfg        NavConfig

	mu       sync.Mutex
	sessions map[string]*navSession
}

// NewNavHandler 创建导航处理器
func NewNavHandler(cat *catalog.Catalog, directions navigation.DirectionsProvider, cfg NavConfig) *NavHandler {
	if cfg.Geolocation == nil {
		cfg.Geolocation = provider.Unsupported{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	return &NavHandler{
		catalog:    cat,
		directions: directions,
		cfg:        cfg,
		sessions:   make(map[string]*navSession),
	}
}

// Register 注册 /nav 路由 (需要已经过认证中间件)
func (h *NavHandler) Register(g *gin.RouterGroup) {
	g.GET("/session", h.GetSession)
	g.POST("/select", h.Select)
	g.POST("/position", h.Position)
	g.POST("/directions", h.Directions)
	g.DELETE("/route", h.ClearRoute)
	g.GET("/map", h.Map)
	g.POST("/map/markers/:id/click", h.MarkerClick)
	g.GET("/notices", h.Notices)
}

// session 取当前用户的会话，不存在时创建
func (h *NavHandler) session(c *gin.Context) *navSession {
	userID := c.GetString("user_id")

	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.sessions[userID]; ok {
		s.lastUsed = time.Now()
		return s
	}

	notices := render.NewNoticeLog(render.DefaultNoticeCapacity)
	opts := navigation.Options{
		Fallback:           h.cfg.Fallback,
		GeolocationTimeout: h.cfg.GeolocationTimeout,
		Logger:             h.cfg.Logger.With("user_id", userID),
		Notifier:           notices,
	}
	if h.cfg.Metrics != nil {
		opts.Recorder = h.cfg.Metrics
		h.cfg.Metrics.ActiveSessions.Inc()
	}

	ctrl := navigation.NewController(h.catalog, h.cfg.Geolocation, h.directions, opts)
	view := render.NewMapView()
	s := &navSession{
		ctrl:     ctrl,
		binding:  navigation.Bind(ctrl, view, h.cfg.Fallback),
		view:     view,
		notices:  notices,
		lastUsed: time.Now(),
	}
	h.sessions[userID] = s
	h.cfg.Logger.Debug("创建导航会话", "user_id", userID)
	return s
}

// EvictIdle 回收在 now 之前已空闲超过 SessionTTL 的会话，返回回收数量
func (h *NavHandler) EvictIdle(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	evicted := 0
	for userID, s := range h.sessions {
		if now.Sub(s.lastUsed) < h.cfg.SessionTTL {
			continue
		}
		delete(h.sessions, userID)
		evicted++
		if h.cfg.Metrics != nil {
			h.cfg.Metrics.ActiveSessions.Dec()
		}
	}
	if evicted > 0 {
		h.cfg.Logger.Info("回收空闲导航会话", "count", evicted, "remaining", len(h.sessions))
	}
	return evicted
}

// RunEviction 定期回收空闲会话，直到 ctx 结束
func (h *NavHandler) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.EvictIdle(now)
		}
	}
}

// GetSession 当前会话快照
func (h *NavHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).ctrl.Snapshot())
}

// SelectRequest 选择目的地
type SelectRequest struct {
	LocationID int `json:"location_id" binding:"required"`
}

// Select 选择目的地
func (h *NavHandler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	s := h.session(c)
	if err := s.ctrl.SelectLocationByID(req.LocationID); err != nil {
		h.locationError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.ctrl.Snapshot())
}

// PositionRequest 浏览器上报的定位结果；定位失败时只带 error 错误码
type PositionRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

// Position 获取用户位置，失败时退回校园中心
func (h *NavHandler) Position(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat 和 lng 必须同时提供"})
		return
	}

	geo := h.cfg.Geolocation
	if req.Lat != nil || req.Error != "" {
		reported := provider.Reported{Code: req.Error}
		if req.Lat != nil {
			reported.Point = &model.Point{Lat: *req.Lat, Lng: *req.Lng}
		}
		geo = reported
	}

	s := h.session(c)
	pos := s.ctrl.AcquireUserPositionFrom(c.Request.Context(), geo)
	resp := gin.H{
		"position": pos,
		"session":  s.ctrl.Snapshot(),
	}
	if loc, meters, ok := h.catalog.Nearest(pos.Position); ok {
		resp["nearest"] = gin.H{"location": loc, "distance_m": meters}
	}
	c.JSON(http.StatusOK, resp)
}

// Directions 请求到选中地点的步行路线
func (h *NavHandler) Directions(c *gin.Context) {
	s := h.session(c)
	route, err := s.ctrl.RequestDirections(c.Request.Context())
	if err != nil {
		// 服务错误的细节只写日志，返回固定文案
		status, msg := directionsError(err)
		c.JSON(status, gin.H{
			"error":   msg,
			"session": s.ctrl.Snapshot(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"route":   route,
		"display": navigation.NewDisplay(route),
		"session": s.ctrl.Snapshot(),
	})
}

// directionsError 路线错误对应的 HTTP 状态码和提示
func directionsError(err error) (int, string) {
	switch {
	case errors.Is(err, navigation.ErrBusy):
		return http.StatusConflict, "已有路线请求在进行中"
	case errors.Is(err, navigation.ErrSuperseded):
		return http.StatusConflict, "目的地已变化，请重新获取路线"
	case errors.Is(err, navigation.ErrNoDestination):
		return http.StatusBadRequest, "请先选择目的地"
	case errors.Is(err, navigation.ErrNoPosition):
		return http.StatusBadRequest, "请先获取当前位置"
	case navigation.IsPrecondition(err):
		return http.StatusBadRequest, "无法获取路线"
	case errors.Is(err, navigation.ErrRouteNotFound):
		return http.StatusNotFound, "找不到到该地点的路线"
	default:
		return http.StatusBadGateway, "获取路线失败"
	}
}

// ClearRoute 清除路线
func (h *NavHandler) ClearRoute(c *gin.Context) {
	s := h.session(c)
	s.ctrl.ClearRoute()
	c.JSON(http.StatusOK, s.ctrl.Snapshot())
}

// Map 地图视图 (标记、高亮、路线、中心点)
func (h *NavHandler) Map(c *gin.Context) {
	c.JSON(http.StatusOK, h.session(c).view.View())
}

// MarkerClick 地图标记被点击
func (h *NavHandler) MarkerClick(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "地点 ID 无效"})
		return
	}

	s := h.session(c)
	if err := s.binding.MarkerClicked(id); err != nil {
		h.locationError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.view.View())
}

// Notices 取出并清空提示
func (h *NavHandler) Notices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notices": h.session(c).notices.Drain()})
}

func (h *NavHandler) locationError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrLocationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "地点不存在"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
