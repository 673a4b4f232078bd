package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Exercise  ExerciseConfig  `mapstructure:"exercise"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port" validate:"required"`
	ReadTimeout  int    `mapstructure:"read_timeout" validate:"min=1"`
	WriteTimeout int    `mapstructure:"write_timeout" validate:"min=1"`
	// AllowedOrigins: список origin для CORS
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname" validate:"required"`
	SSLMode  string `mapstructure:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	// MigrationsPath: путь к SQL-миграциям
	MigrationsPath string `mapstructure:"migrations_path" validate:"required"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode" validate:"oneof=single sentinel cluster"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	// Используется, если Mode="single" и Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения (-1 - бесконечно).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: Минимальный интервал между попытками (в миллисекундах).
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: Максимальный интервал между попытками (в миллисекундах).
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// JWTConfig содержит настройки проверки токенов.
// Токены выпускает внешний сервис авторизации, здесь они только проверяются.
type JWTConfig struct {
	Secret string `mapstructure:"secret" validate:"required,min=16"`
	Issuer string `mapstructure:"issuer"`
	// CookieName: имя cookie, из которой читается токен, если нет заголовка Authorization
	CookieName string `mapstructure:"cookie_name" validate:"required"`
}

// ExerciseConfig содержит настройки упражнений
type ExerciseConfig struct {
	// StoreTimeout: таймаут чтения прогресса при сборке упражнения
	StoreTimeout time.Duration `mapstructure:"store_timeout" validate:"min=1"`
	// DistractorMaxDifficulty: потолок сложности для вариантов ответа
	DistractorMaxDifficulty int `mapstructure:"distractor_max_difficulty" validate:"min=1,max=3"`
	// DashboardCacheTTL: время жизни кеша дашборда
	DashboardCacheTTL time.Duration `mapstructure:"dashboard_cache_ttl" validate:"min=0"`
}

// RateLimitConfig содержит настройки ограничения частоты ответов
type RateLimitConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxRequests int           `mapstructure:"max_requests" validate:"min=1"`
	Window      time.Duration `mapstructure:"window" validate:"min=1"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения и проверяет её целиком
func Load(configPath string) (*Config, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	if os.Getenv("GIN_MODE") == "release" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("database password is required in production mode (check DATABASE_PASSWORD env var)")
	}

	return cfg, nil
}

// LoadDatabase загружает конфигурацию, но проверяет только секцию database.
// Используется утилитой миграций, которой не нужны JWT и Redis.
func LoadDatabase(configPath string) (*DatabaseConfig, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(&cfg.Database); err != nil {
		return nil, err
	}
	return &cfg.Database, nil
}

func read(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "migrations")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")
	vip.SetDefault("jwt.cookie_name", "auth-token")
	vip.SetDefault("exercise.store_timeout", 3*time.Second)
	vip.SetDefault("exercise.distractor_max_difficulty", 3)
	vip.SetDefault("exercise.dashboard_cache_ttl", 5*time.Minute)
	vip.SetDefault("rate_limit.enabled", true)
	vip.SetDefault("rate_limit.max_requests", 120)
	vip.SetDefault("rate_limit.window", time.Minute)

	// 2. Привязываем переменные окружения ЯВНО
	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.migrations_path", "DATABASE_MIGRATIONS_PATH")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// Привязка для секции JWT
	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.issuer", "JWT_ISSUER")
	vip.BindEnv("jwt.cookie_name", "JWT_COOKIE_NAME")

	// Привязка для Server
	vip.BindEnv("server.port", "SERVER_PORT")

	// Привязка для упражнений и лимитов
	vip.BindEnv("exercise.store_timeout", "EXERCISE_STORE_TIMEOUT")
	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	vip.BindEnv("rate_limit.max_requests", "RATE_LIMIT_MAX_REQUESTS")

	// 3. Читаем файл конфигурации (не страшно, если его нет, т.к. есть BindEnv)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию (Viper объединит значения из файла и привязанных env vars)
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// REDIS_ADDRS приходит одной строкой через запятую
	if len(cfg.Redis.Addrs) == 1 && strings.Contains(cfg.Redis.Addrs[0], ",") {
		cfg.Redis.Addrs = strings.Split(cfg.Redis.Addrs[0], ",")
	}

	// 5. Логирование конфигурации (только в debug режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Redis Mode: %s", cfg.Redis.Mode)
		log.Printf("JWT Secret Set: %t", cfg.JWT.Secret != "")
		log.Printf("Exercise Store Timeout: %s", cfg.Exercise.StoreTimeout)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate проверяет конфигурацию по тегам validate
func Validate(cfg *Config) error {
	return validateStruct(cfg)
}

func validateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return fmt.Errorf("config validation: %w", err)
		}
		msgs := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			msgs = append(msgs, fmt.Sprintf("%s (%s=%s)", fe.Namespace(), fe.Tag(), fe.Param()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	return nil
}
