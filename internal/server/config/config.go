// Package config отвечает за:
// - чтение server.yaml
// - подстановку переменных окружения вида ${JWT_KEY}
// - переопределения из окружения (PORT, DB_*, JWT_KEY, GOOGLE_API_KEY, REDIS_URL)
// - проставление дефолтов
// - валидацию (чтобы сервер не стартовал с дырявыми настройками)
//
// Config собирается один раз при старте и дальше только передаётся в конструкторы.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// Config — корневая структура всего конфига сервера.
type Config struct {
	Env        string           `yaml:"env"` // dev|stage|prod
	Server     ServerConfig     `yaml:"server"`
	TLS        TLSConfig        `yaml:"tls"`
	DB         DBConfig         `yaml:"db"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Auth       AuthConfig       `yaml:"auth"`
	Password   PasswordConfig   `yaml:"password"`
	Uploads    UploadsConfig    `yaml:"uploads"`
	Geocoding  GeocodingConfig  `yaml:"geocoding"`
	CORS       CORSConfig       `yaml:"cors"`
	Security   SecurityConfig   `yaml:"security"`
	Redis      RedisConfig      `yaml:"redis"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig — настройки HTTP-сервера.
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	TrustProxy        bool          `yaml:"trust_proxy"` // доверять ли заголовкам X-Forwarded-*
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
	MaxHeaderBytes    int           `yaml:"max_header_bytes"` // лимит размера заголовков
}

// TLSConfig — настройки HTTPS.
type TLSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	MinVersion string `yaml:"min_version"` // "1.2"|"1.3"
}

// DBConfig — настройки подключения к базе данных.
//
// Если DSN пустой, он собирается из DB_USER/DB_PASSWORD/DB_HOST/DB_NAME.
type DBConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	PingTimeout     time.Duration `yaml:"ping_timeout"`
}

// MigrationsConfig — настройки миграций БД.
type MigrationsConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Path        string        `yaml:"path"`         // file://migrations/postgres
	LockTimeout time.Duration `yaml:"lock_timeout"` // сколько ждать advisory lock на миграции
}

// AuthConfig — настройки выпуска и проверки access-токенов.
type AuthConfig struct {
	Issuer    string        `yaml:"issuer"`
	Audience  string        `yaml:"audience"`
	AccessTTL time.Duration `yaml:"access_ttl"`
	JWT       JWTConfig     `yaml:"jwt"`
}

// JWTConfig — как подписываем JWT.
type JWTConfig struct {
	Algorithm  string `yaml:"algorithm"`   // поддерживаем только HS256
	SigningKey string `yaml:"signing_key"` // может содержать ${JWT_KEY}
}

// PasswordConfig — настройки хэширования паролей пользователей.
type PasswordConfig struct {
	Hasher string       `yaml:"hasher"` // bcrypt|argon2id
	Argon2 Argon2Config `yaml:"argon2"`
	Bcrypt BcryptConfig `yaml:"bcrypt"`
}

// Argon2Config — параметры argon2id.
type Argon2Config struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
	KeyLen    uint32 `yaml:"key_len"`
	SaltLen   uint32 `yaml:"salt_len"`
}

// BcryptConfig — параметры bcrypt.
type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

// UploadsConfig — куда и какого размера принимаем картинки.
type UploadsConfig struct {
	Dir          string `yaml:"dir"`            // uploads/images
	PublicPath   string `yaml:"public_path"`    // /uploads/images
	MaxFileBytes int64  `yaml:"max_file_bytes"` // 500000
}

// GeocodingConfig — Google Geocoding API.
type GeocodingConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// CORSConfig — заголовки CORS для фронтенда.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	AllowedMethods []string `yaml:"allowed_methods"`
	MaxAge         int      `yaml:"max_age"` // секунды
}

// SecurityConfig — ограничения/защита.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig — token bucket в Redis (по IP или по пользователю).
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
	Key     string  `yaml:"key"` // ip|user
}

// RedisConfig — подключение к Redis (нужен только rate limit).
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
}

// LogConfig — настройки логирования (zap).
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // json|console
	Dir    string `yaml:"dir"`
	Stdout bool   `yaml:"stdout"`
}

// envOverrides — переменные окружения, которые перекрывают yaml.
type envOverrides struct {
	Port         int    `env:"PORT"`
	DBUser       string `env:"DB_USER"`
	DBPassword   string `env:"DB_PASSWORD"`
	DBHost       string `env:"DB_HOST" envDefault:"localhost:5432"`
	DBName       string `env:"DB_NAME"`
	DBSSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	JWTKey       string `env:"JWT_KEY"`
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`
	RedisURL     string `env:"REDIS_URL"`
}

var envVarRe = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// Load читает YAML, подставляет переменные окружения вида ${VAR},
// парсит в структуру, применяет переопределения из окружения,
// проставляет дефолты и валидирует.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
	}

	return Parse(raw)
}

// Parse делает то же, что Load, но из уже прочитанных байт.
func Parse(raw []byte) (*Config, error) {
	expanded := ExpandEnvStrict(string(raw))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана — оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := envVarRe.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyEnvOverrides переопределяет настройки из окружения без ${...} в yaml.
// Например PORT=9090 переопределит server.port.
func (c *Config) ApplyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("не удалось прочитать переменные окружения: %w", err)
	}

	if o.Port > 0 {
		c.Server.Port = o.Port
	}
	if o.JWTKey != "" {
		c.Auth.JWT.SigningKey = o.JWTKey
	}
	if o.GoogleAPIKey != "" {
		c.Geocoding.APIKey = o.GoogleAPIKey
	}
	if o.RedisURL != "" {
		c.Redis.URL = o.RedisURL
	}
	// DSN из частей только если в yaml его нет
	if strings.TrimSpace(c.DB.DSN) == "" && o.DBName != "" {
		u := url.URL{
			Scheme:   "postgres",
			Host:     o.DBHost,
			Path:     "/" + o.DBName,
			RawQuery: "sslmode=" + url.QueryEscape(o.DBSSLMode),
		}
		if o.DBUser != "" {
			u.User = url.UserPassword(o.DBUser, o.DBPassword)
		}
		c.DB.DSN = u.String()
	}
	return nil
}

// ApplyDefaults — дефолтные значения, если в yaml поле не задано.
func ApplyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.DB.PingTimeout == 0 {
		cfg.DB.PingTimeout = 5 * time.Second
	}
	if cfg.Migrations.Path == "" {
		cfg.Migrations.Path = "file://migrations/postgres"
	}
	if cfg.Auth.AccessTTL == 0 {
		cfg.Auth.AccessTTL = time.Hour
	}
	if cfg.Auth.JWT.Algorithm == "" {
		cfg.Auth.JWT.Algorithm = "HS256"
	}
	if cfg.Password.Hasher == "" {
		cfg.Password.Hasher = "bcrypt"
	}
	if cfg.Password.Bcrypt.Cost == 0 {
		cfg.Password.Bcrypt.Cost = 12
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = "uploads/images"
	}
	if cfg.Uploads.PublicPath == "" {
		cfg.Uploads.PublicPath = "/uploads/images"
	}
	if cfg.Uploads.MaxFileBytes == 0 {
		cfg.Uploads.MaxFileBytes = 500000
	}
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = "https://maps.googleapis.com"
	}
	if cfg.Geocoding.Timeout == 0 {
		cfg.Geocoding.Timeout = 5 * time.Second
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "PATCH", "DELETE"}
	}
	if cfg.Security.RateLimit.Key == "" {
		cfg.Security.RateLimit.Key = "ip"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate проверяет, что конфиг заполнен корректно и безопасно.
// Если что-то не так — возвращаем ошибку и сервер НЕ стартует.
func (c *Config) Validate() error {
	// Базовая проверка сервера
	if c.Server.Host == "" {
		return errors.New("server.host обязателен")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}

	// TLS/HTTPS
	if c.TLS.Enabled {
		if c.TLS.CertFile == "" || c.TLS.KeyFile == "" {
			return errors.New("tls.cert_file и tls.key_file обязательны при tls.enabled=true")
		}
		if c.TLS.MinVersion == "" {
			c.TLS.MinVersion = "1.2"
		}
		// TLS 1.0/1.1 считаются небезопасными — запрещаем
		if c.TLS.MinVersion == "1.0" || c.TLS.MinVersion == "1.1" {
			return fmt.Errorf("tls.min_version=%s небезопасен; используй 1.2 или 1.3", c.TLS.MinVersion)
		}
	}

	// База данных
	if strings.TrimSpace(c.DB.DSN) == "" {
		return errors.New("db.dsn обязателен (или DB_USER/DB_PASSWORD/DB_HOST/DB_NAME)")
	}
	if strings.Contains(c.DB.DSN, "${") {
		return fmt.Errorf("db.dsn содержит неподставленную переменную: %q", c.DB.DSN)
	}

	// JWT
	alg := strings.ToUpper(strings.TrimSpace(c.Auth.JWT.Algorithm))
	if alg != "HS256" {
		return fmt.Errorf("auth.jwt.algorithm должен быть HS256 (сейчас %q)", c.Auth.JWT.Algorithm)
	}

	key := strings.TrimSpace(c.Auth.JWT.SigningKey)
	if key == "" {
		return errors.New("auth.jwt.signing_key обязателен (через ${JWT_KEY} или прямо строкой)")
	}
	// Если ${JWT_KEY} не подставился — значит переменная окружения не задана
	if strings.Contains(key, "${") && strings.Contains(key, "}") {
		return fmt.Errorf("auth.jwt.signing_key содержит неподставленную переменную: %q (нужно задать JWT_KEY)", key)
	}
	// Для HS256 ключ должен быть длинным и случайным
	if len(key) < 32 {
		return fmt.Errorf("auth.jwt.signing_key слишком короткий (%d символов); нужно >= 32", len(key))
	}
	if c.Auth.AccessTTL < 0 {
		return errors.New("auth.access_ttl не может быть отрицательным")
	}

	// Хэширование паролей
	switch strings.ToLower(c.Password.Hasher) {
	case "argon2id":
		if c.Password.Argon2.Time == 0 || c.Password.Argon2.MemoryKiB == 0 || c.Password.Argon2.Threads == 0 ||
			c.Password.Argon2.KeyLen == 0 || c.Password.Argon2.SaltLen == 0 {
			return errors.New("password.argon2 должен быть настроен для argon2id")
		}
	case "bcrypt":
		if c.Password.Bcrypt.Cost < 4 || c.Password.Bcrypt.Cost > 31 {
			return fmt.Errorf("password.bcrypt.cost вне диапазона 4..31: %d", c.Password.Bcrypt.Cost)
		}
	default:
		return fmt.Errorf("password.hasher должен быть bcrypt|argon2id (сейчас %q)", c.Password.Hasher)
	}

	// Загрузка файлов
	if c.Uploads.MaxFileBytes <= 0 {
		return errors.New("uploads.max_file_bytes должен быть > 0")
	}
	if !strings.HasPrefix(c.Uploads.PublicPath, "/") {
		return fmt.Errorf("uploads.public_path должен начинаться с /: %q", c.Uploads.PublicPath)
	}

	// Геокодинг
	apiKey := strings.TrimSpace(c.Geocoding.APIKey)
	if apiKey == "" || strings.Contains(apiKey, "${") {
		return errors.New("geocoding.api_key обязателен (GOOGLE_API_KEY)")
	}

	// Rate limit
	if c.Security.RateLimit.Enabled {
		if c.Security.RateLimit.RPS <= 0 {
			return errors.New("security.rate_limit.rps должен быть > 0 при включённом rate_limit")
		}
		if c.Security.RateLimit.Burst <= 0 {
			return errors.New("security.rate_limit.burst должен быть > 0 при включённом rate_limit")
		}
		if c.Security.RateLimit.Key != "ip" && c.Security.RateLimit.Key != "user" {
			return fmt.Errorf("security.rate_limit.key должен быть ip|user (сейчас %q)", c.Security.RateLimit.Key)
		}
		if c.Redis.URL == "" {
			return errors.New("redis.url обязателен при включённом rate_limit")
		}
	}

	return nil
}

// Addr — адрес для http.Server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
