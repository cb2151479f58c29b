package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Upload   UploadConfig   `mapstructure:"upload"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Order    OrderConfig    `mapstructure:"order"`
	Email    EmailConfig    `mapstructure:"email"`
	Captcha  CaptchaConfig  `mapstructure:"captcha"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      string `mapstructure:"port"`
	Mode      string `mapstructure:"mode"` // debug / release
	PublicDir string `mapstructure:"public_dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver         string             `mapstructure:"driver"` // mongo / sqlite / postgres
	DSN            string             `mapstructure:"dsn"`
	Name           string             `mapstructure:"name"` // mongo 数据库名
	TimeoutSeconds int                `mapstructure:"timeout_seconds"`
	Pool           DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// UploadConfig 图片上传配置
type UploadConfig struct {
	Backend         string           `mapstructure:"backend"`    // local / cloudinary_stream / cloudinary_staged
	InputMode       string           `mapstructure:"input_mode"` // multipart / base64
	Field           string           `mapstructure:"field"`
	MaxSize         int64            `mapstructure:"max_size"`
	AllowedTypes    []string         `mapstructure:"allowed_types"`
	LocalDir        string           `mapstructure:"local_dir"`
	PublicURLPrefix string           `mapstructure:"public_url_prefix"`
	StagingDir      string           `mapstructure:"staging_dir"`
	TimeoutSeconds  int              `mapstructure:"timeout_seconds"`
	Cloudinary      CloudinaryConfig `mapstructure:"cloudinary"`
}

// CloudinaryConfig Cloudinary 凭据
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
	PasswordPolicy PasswordPolicyConfig `mapstructure:"password_policy"`
}

// LoginRateLimitConfig 登录限流配置
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// PasswordPolicyConfig 密码策略配置
type PasswordPolicyConfig struct {
	MinLength      int  `mapstructure:"min_length"`
	RequireUpper   bool `mapstructure:"require_upper"`
	RequireLower   bool `mapstructure:"require_lower"`
	RequireNumber  bool `mapstructure:"require_number"`
	RequireSpecial bool `mapstructure:"require_special"`
}

// AuthConfig 管理员注册配置
type AuthConfig struct {
	AllowRegistration bool `mapstructure:"allow_registration"`
}

// OrderConfig 订单配置
type OrderConfig struct {
	EnforceTransitions bool `mapstructure:"enforce_transitions"`
	NotifyStatusEmail  bool `mapstructure:"notify_status_email"`
}

// EmailConfig 邮件服务配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	UseTLS   bool   `mapstructure:"use_tls"`
	UseSSL   bool   `mapstructure:"use_ssl"`
	NotifyTo string `mapstructure:"notify_to"`
}

// CaptchaConfig 图片验证码配置
type CaptchaConfig struct {
	LoginEnabled  bool `mapstructure:"login_enabled"`
	Length        int  `mapstructure:"length"`
	Width         int  `mapstructure:"width"`
	Height        int  `mapstructure:"height"`
	NoiseCount    int  `mapstructure:"noise_count"`
	ShowLine      int  `mapstructure:"show_line"`
	ExpireSeconds int  `mapstructure:"expire_seconds"`
	MaxStore      int  `mapstructure:"max_store"`
}

// AdminConfig 默认管理员
type AdminConfig struct {
	DefaultName     string `mapstructure:"default_name"`
	DefaultEmail    string `mapstructure:"default_email"`
	DefaultPassword string `mapstructure:"default_password"`
}

// Load 从 .env 与 config.yml 加载配置
func Load() *Config {
	// .env 仅补充尚未设置的环境变量
	if err := godotenv.Load(); err == nil {
		logger.Infow("dotenv_loaded", "file", ".env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")   // 如果从 cmd/server 运行
	v.AddConfigPath("./etc") // etc 文件夹

	SetDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // jwt.secret -> JWT_SECRET

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	cfg.Normalize()
	return &cfg
}

// SetDefaults 写入默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.public_dir", "public")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", constants.DBDriverMongo)
	v.SetDefault("database.dsn", "mongodb://127.0.0.1:27017")
	v.SetDefault("database.name", "foodie")
	v.SetDefault("database.timeout_seconds", 10)
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	// jwt.secret 没有默认值，缺失时启动失败
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expire_hours", 168)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "foodie")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 5)
	v.SetDefault("queue.queues", map[string]int{
		constants.QueueDefault:  10,
		constants.QueueCritical: 5,
	})
	v.SetDefault("upload.backend", constants.UploadBackendLocal)
	v.SetDefault("upload.input_mode", constants.UploadInputMultipart)
	v.SetDefault("upload.field", "image")
	v.SetDefault("upload.max_size", constants.MaxImageSize)
	v.SetDefault("upload.allowed_types", constants.AllowedImageTypes)
	v.SetDefault("upload.local_dir", "public/images")
	v.SetDefault("upload.public_url_prefix", "/public/images")
	v.SetDefault("upload.staging_dir", "uploads")
	v.SetDefault("upload.timeout_seconds", 30)
	v.SetDefault("upload.cloudinary.cloud_name", "")
	v.SetDefault("upload.cloudinary.api_key", "")
	v.SetDefault("upload.cloudinary.api_secret", "")
	v.SetDefault("upload.cloudinary.folder", "foodie")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Authorization",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_attempts", 10)
	v.SetDefault("security.login_rate_limit.block_seconds", 900)
	v.SetDefault("security.password_policy.min_length", 6)
	v.SetDefault("security.password_policy.require_upper", false)
	v.SetDefault("security.password_policy.require_lower", false)
	v.SetDefault("security.password_policy.require_number", false)
	v.SetDefault("security.password_policy.require_special", false)
	v.SetDefault("auth.allow_registration", true)
	v.SetDefault("order.enforce_transitions", false)
	v.SetDefault("order.notify_status_email", false)
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.host", "")
	v.SetDefault("email.port", 587)
	v.SetDefault("email.username", "")
	v.SetDefault("email.password", "")
	v.SetDefault("email.from", "")
	v.SetDefault("email.from_name", "Foodie")
	v.SetDefault("email.use_tls", true)
	v.SetDefault("email.use_ssl", false)
	v.SetDefault("email.notify_to", "")
	v.SetDefault("captcha.login_enabled", false)
	v.SetDefault("captcha.length", 5)
	v.SetDefault("captcha.width", 240)
	v.SetDefault("captcha.height", 80)
	v.SetDefault("captcha.noise_count", 2)
	v.SetDefault("captcha.show_line", 2)
	v.SetDefault("captcha.expire_seconds", 300)
	v.SetDefault("captcha.max_store", 10240)
	v.SetDefault("admin.default_name", "Super Admin")
	v.SetDefault("admin.default_email", "")
	v.SetDefault("admin.default_password", "")
}

// Normalize 规整枚举类配置
func (c *Config) Normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Upload.Backend = strings.ToLower(strings.TrimSpace(c.Upload.Backend))
	c.Upload.InputMode = strings.ToLower(strings.TrimSpace(c.Upload.InputMode))
	c.JWT.SecretKey = strings.TrimSpace(c.JWT.SecretKey)
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = 168
	}
	if c.Upload.MaxSize <= 0 {
		c.Upload.MaxSize = constants.MaxImageSize
	}
	if len(c.Upload.AllowedTypes) == 0 {
		c.Upload.AllowedTypes = constants.AllowedImageTypes
	}
	if strings.TrimSpace(c.Upload.Field) == "" {
		c.Upload.Field = "image"
	}
}

// Validate 校验启动必需配置
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.JWT.SecretKey == "" {
		return errors.New("jwt.secret is required (set JWT_SECRET)")
	}
	switch c.Database.Driver {
	case constants.DBDriverMongo, constants.DBDriverSQLite, constants.DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported database.driver: %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("database.dsn is required")
	}
	switch c.Upload.InputMode {
	case constants.UploadInputMultipart, constants.UploadInputBase64:
	default:
		return fmt.Errorf("unsupported upload.input_mode: %q", c.Upload.InputMode)
	}
	switch c.Upload.Backend {
	case constants.UploadBackendLocal:
	case constants.UploadBackendCloudinaryStream, constants.UploadBackendCloudinaryStaged:
		cl := c.Upload.Cloudinary
		if cl.CloudName == "" || cl.APIKey == "" || cl.APISecret == "" {
			return fmt.Errorf("upload.backend %s requires cloudinary credentials", c.Upload.Backend)
		}
	default:
		return fmt.Errorf("unsupported upload.backend: %q", c.Upload.Backend)
	}
	return nil
}

// IsWeakSecret 判断 JWT 密钥是否过弱
func IsWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
