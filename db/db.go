package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campus-navigator/catalog"
	"campus-navigator/config"
	"campus-navigator/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RetryInterval 两次连接尝试之间的间隔
var RetryInterval = 2 * time.Second

// Open 连接 PostgreSQL 并迁移表结构
// Docker 启动时数据库可能还没准备好，所以带重试
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	return OpenDialector(postgres.Open(cfg.DSN()), cfg.MaxRetries)
}

// OpenDialector 用任意 gorm 方言连接 (测试里用 sqlite)
func OpenDialector(dialector gorm.Dialector, maxRetries int) (*gorm.DB, error) {
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var (
		gdb *gorm.DB
		err error
	)
	for i := 0; i < maxRetries; i++ {
		gdb, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		slog.Warn("等待数据库就绪...", "attempt", i+1, "max", maxRetries, "error", err)
		if i < maxRetries-1 {
			time.Sleep(RetryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	slog.Info("数据库连接并初始化成功")
	return gdb, nil
}

// Migrate 自动迁移 (自动创建表结构)
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&model.User{}, &model.Location{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// SeedLocations 地点表为空时写入初始数据，返回写入条数
func SeedLocations(gdb *gorm.DB, locations []model.Location) (int, error) {
	var count int64
	if err := gdb.Model(&model.Location{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计地点失败: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	// 先校验，避免把坏数据写进库
	if _, err := catalog.New(locations); err != nil {
		return 0, err
	}

	slog.Info("检测到地点表为空，正在导入初始数据", "count", len(locations))
	if err := gdb.CreateInBatches(locations, 100).Error; err != nil {
		return 0, fmt.Errorf("插入地点失败: %w", err)
	}
	return len(locations), nil
}

// ImportLocations 从目录文件 (JSON/TOML) 导入地点 (仅在表为空时)
func ImportLocations(gdb *gorm.DB, path string) (int, error) {
	cat, err := catalog.LoadFromFile(path)
	if err != nil {
		return 0, err
	}
	return SeedLocations(gdb, cat.All())
}

// LoadCatalog 按 ID 顺序读出全部地点并校验
func LoadCatalog(gdb *gorm.DB) (*catalog.Catalog, error) {
	var locations []model.Location
	if err := gdb.Order("id").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("读取地点失败: %w", err)
	}
	return catalog.New(locations)
}

var (
	ErrUserExists   = errors.New("用户名已存在")
	ErrUserNotFound = errors.New("用户不存在")
)

// UserStore 用户表
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(gdb *gorm.DB) *UserStore {
	return &UserStore{db: gdb}
}

// Create 新建用户，用户名重复时返回 ErrUserExists
// 依赖 username 唯一索引判重，并发注册同名用户时只有一个成功
func (s *UserStore) Create(u *model.User) error {
	err := s.db.Create(u).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || s.exists(u.Username) {
		return ErrUserExists
	}
	return fmt.Errorf("创建用户失败: %w", err)
}

func (s *UserStore) exists(username string) bool {
	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

// FindByUsername 按用户名查找
func (s *UserStore) FindByUsername(username string) (*model.User, error) {
	var u model.User
	err := s.db.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &u, nil
}
