package config

import (
	"errors"
	"os"
	"time"

	pkgconfig "lifetracker/pkg/config"
)

type AppConfig struct {
	Env string `yaml:"env"` // development | production
}

type AuthConfig struct {
	MaxLoginAttempts int           `yaml:"max_login_attempts"`
	LoginWindow      time.Duration `yaml:"login_window"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type TrackingConfig struct {
	DefaultDays              int    `yaml:"default_days"`
	SmokingMissingDay        string `yaml:"smoking_missing_day"`
	SmokingMissingCigarettes int    `yaml:"smoking_missing_cigarettes"`
}

// FoodAPIConfig 外部食物搜索接口，AppID 为空时只使用内置目录
type FoodAPIConfig struct {
	BaseURL string        `yaml:"base_url"`
	AppID   string        `yaml:"app_id"`
	AppKey  string        `yaml:"app_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	App       AppConfig              `yaml:"app"`
	Server    pkgconfig.ServerConfig `yaml:"server"`
	DB        pkgconfig.DBConfig     `yaml:"db"`
	Redis     pkgconfig.RedisConfig  `yaml:"redis"`
	JWT       pkgconfig.JWTConfig    `yaml:"jwt"`
	Auth      AuthConfig             `yaml:"auth"`
	RateLimit RateLimitConfig        `yaml:"ratelimit"`
	Tracking  TrackingConfig         `yaml:"tracking"`
	FoodAPI   FoodAPIConfig          `yaml:"food_api"`
	Log       pkgconfig.LogConfig    `yaml:"log"`
}

// Load 读取 base.yaml + <CONFIG_ENV>.yaml + secrets.env，再应用环境变量覆盖
func Load(configDir string) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.LoadInto(pkgconfig.GetConfigEnv(), configDir, cfg); err != nil {
		return nil, err
	}

	overrideFromEnv(cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	pkgconfig.OverrideDBFromEnv(&cfg.DB)
	pkgconfig.OverrideRedisFromEnv(&cfg.Redis)
	pkgconfig.OverrideJWTFromEnv(&cfg.JWT)
	pkgconfig.OverrideServerFromEnv(&cfg.Server)
	pkgconfig.OverrideLogFromEnv(&cfg.Log)

	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.App.Env = env
	}
	if id := os.Getenv("FOOD_API_APP_ID"); id != "" {
		cfg.FoodAPI.AppID = id
	}
	if key := os.Getenv("FOOD_API_APP_KEY"); key != "" {
		cfg.FoodAPI.AppKey = key
	}
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "development"
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "postgres"
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = time.Hour
	}
	if c.Auth.MaxLoginAttempts == 0 {
		c.Auth.MaxLoginAttempts = 5
	}
	if c.Auth.LoginWindow == 0 {
		c.Auth.LoginWindow = 15 * time.Minute
	}
	if c.Tracking.DefaultDays == 0 {
		c.Tracking.DefaultDays = 30
	}
	if c.Tracking.SmokingMissingCigarettes == 0 {
		c.Tracking.SmokingMissingCigarettes = 1
	}
	if c.FoodAPI.BaseURL == "" {
		c.FoodAPI.BaseURL = "https://api.edamam.com/api/food-database/v2/parser"
	}
	if c.FoodAPI.Timeout == 0 {
		c.FoodAPI.Timeout = 5 * time.Second
	}
}

// Validate 启动前检查必需配置
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required (set JWT_SECRET)")
	}
	switch c.DB.Driver {
	case "postgres", "memory":
	default:
		return errors.New("db.driver must be postgres or memory")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
