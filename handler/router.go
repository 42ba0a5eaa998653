package handler

import (
	"net/http"

	"campus-navigator/metrics"

	"github.com/gin-gonic/gin"
)

// Router 路由依赖
type Router struct {
	Auth         *Auth
	Locations    *LocationHandler
	Nav          *NavHandler
	Metrics      *metrics.Metrics
	AssistantURL string
}

// Setup 配置路由
func (rt Router) Setup(r *gin.Engine) {
	r.Use(CORS())
	if rt.Metrics != nil {
		r.Use(rt.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(rt.Metrics.Handler()))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	// API 路由组
	api := r.Group("/api")
	{
		// 公开接口 (无需认证)
		api.POST("/login", rt.Auth.Login)
		api.POST("/register", rt.Auth.Register)

		api.GET("/locations", rt.Locations.List)
		api.GET("/locations/:id", rt.Locations.Get)
		api.GET("/assistant", Assistant(rt.AssistantURL))

		// 导航会话按用户区分，需要认证
		nav := api.Group("/nav")
		nav.Use(rt.Auth.Middleware())
		rt.Nav.Register(nav)
	}
}

// CORS 跨域中间件
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
