package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-navigator/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 方向服务
const (
	ProviderGoogle   = "google"
	ProviderValhalla = "valhalla"
)

// Config 服务配置
type Config struct {
	Port    int    `mapstructure:"port"`
	Debug   bool   `mapstructure:"debug"`
	Catalog string `mapstructure:"catalog_file"` // 为空时使用数据库/内置目录

	DB          DBConfig          `mapstructure:"db"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Directions  DirectionsConfig  `mapstructure:"directions"`
	Geolocation GeolocationConfig `mapstructure:"geolocation"`

	AssistantURL string        `mapstructure:"assistant_url"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"` // 导航会话空闲回收时间
}

// DBConfig PostgreSQL 连接
type DBConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// DSN gorm postgres 连接串
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=Asia/Kolkata",
		d.Host, d.User, d.Password, d.Name, d.Port,
	)
}

// AuthConfig JWT
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// DirectionsConfig 外部路线服务
type DirectionsConfig struct {
	Provider      string        `mapstructure:"provider"`
	GoogleAPIKey  string        `mapstructure:"google_api_key"`
	GoogleBaseURL string        `mapstructure:"google_base_url"`
	ValhallaURL   string        `mapstructure:"valhalla_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// GeolocationConfig 定位与兜底坐标
type GeolocationConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	FallbackLat float64       `mapstructure:"fallback_lat"`
	FallbackLng float64       `mapstructure:"fallback_lng"`
}

// Fallback 定位失败时使用的坐标
func (g GeolocationConfig) Fallback() model.Point {
	return model.Point{Lat: g.FallbackLat, Lng: g.FallbackLng}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("debug", false)
	v.SetDefault("catalog_file", "")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "campus")
	v.SetDefault("db.password", "campus")
	v.SetDefault("db.name", "campus")
	v.SetDefault("db.max_retries", 30)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("directions.provider", ProviderGoogle)
	v.SetDefault("directions.google_api_key", "")
	v.SetDefault("directions.google_base_url", "https://maps.googleapis.com/maps/api/directions/json")
	v.SetDefault("directions.valhalla_url", "http://localhost:8002")
	v.SetDefault("directions.timeout", 10*time.Second)

	v.SetDefault("geolocation.timeout", 10*time.Second)
	v.SetDefault("geolocation.fallback_lat", 12.8230)
	v.SetDefault("geolocation.fallback_lng", 80.0444)

	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("assistant_url", "https://partyrock.aws/u/AMARNATH269/T1dMkUA1k/WISE-UP")
}

// Load 读取配置：默认值 < 配置文件 < .env < 环境变量 (CAMPUS_ 前缀)
// 不做校验，由各命令按需调用 Validate / ValidateDirections
func Load(cfgFile string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CAMPUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &cfg, nil
}

// Validate 检查服务运行所需的全部配置
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port 无效: %d", c.Port)
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret 不能为空 (CAMPUS_AUTH_JWT_SECRET)")
	}
	return c.ValidateDirections()
}

// ValidateDirections 只检查路线和定位相关配置 (命令行查询路线时用)
func (c *Config) ValidateDirections() error {
	switch c.Directions.Provider {
	case ProviderGoogle:
		if c.Directions.GoogleAPIKey == "" {
			return errors.New("directions.google_api_key 不能为空 (CAMPUS_DIRECTIONS_GOOGLE_API_KEY)")
		}
	case ProviderValhalla:
		if c.Directions.ValhallaURL == "" {
			return errors.New("directions.valhalla_url 不能为空")
		}
	default:
		return fmt.Errorf("未知的方向服务: %q", c.Directions.Provider)
	}
	if !c.Geolocation.Fallback().Valid() {
		return fmt.Errorf("兜底坐标无效: %s", c.Geolocation.Fallback())
	}
	return nil
}
