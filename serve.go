package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campus-navigator/catalog"
	"campus-navigator/config"
	"campus-navigator/db"
	"campus-navigator/handler"
	"campus-navigator/logging"
	"campus-navigator/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	log := logging.Init(cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. 初始化数据库 (连接、迁移，第一次运行时导入地点数据)
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}

	// 2. 从数据库加载地点目录，数据有误时拒绝启动
	cat, err := seedCatalog(gdb, cfg.Catalog)
	if err != nil {
		return fmt.Errorf("加载地点目录失败: %w", err)
	}
	log.Info("地点目录加载成功", "locations", cat.Len())

	// 3. 路线服务
	directions, err := newDirections(cfg.Directions)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	nav := handler.NewNavHandler(cat, directions, handler.NavConfig{
		Fallback:           cfg.Geolocation.Fallback(),
		GeolocationTimeout: cfg.Geolocation.Timeout,
		Metrics:            m,
		Logger:             log,
		SessionTTL:         cfg.SessionTTL,
	})
	go nav.RunEviction(context.Background(), time.Minute)

	// 4. 配置路由
	r := gin.New()
	r.Use(gin.Recovery())
	handler.Router{
		Auth:         handler.NewAuth(db.NewUserStore(gdb), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Locations:    handler.NewLocationHandler(cat),
		Nav:          nav,
		Metrics:      m,
		AssistantURL: cfg.AssistantURL,
	}.Setup(r)

	// 5. 启动服务器
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info("服务器启动", "addr", addr, "directions", cfg.Directions.Provider)
	if err := r.Run(addr); err != nil {
		return fmt.Errorf("服务器启动失败: %w", err)
	}
	return nil
}

// seedCatalog 地点表为空时导入初始数据 (文件或内置目录)，然后读回
func seedCatalog(gdb *gorm.DB, file string) (*catalog.Catalog, error) {
	var (
		n   int
		err error
	)
	if file != "" {
		n, err = db.ImportLocations(gdb, file)
	} else {
		n, err = db.SeedLocations(gdb, catalog.DefaultLocations())
	}
	if err != nil {
		return nil, err
	}
	if n > 0 {
		slog.Info("地点数据导入成功", "count", n)
	}
	return db.LoadCatalog(gdb)
}
