package config

import (
	"context"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"os"
	"storefront/repository"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port          string `yaml:"port"`
	PublicBaseURL string `yaml:"publicBaseURL"`
	Mode          string `yaml:"mode"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
	LogLevel string `yaml:"logLevel"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	Database int           `yaml:"database"`
	TTL      time.Duration `yaml:"ttl"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	PasswordResetTopic string   `yaml:"passwordResetTopic"`
	// LogOnly logs password reset events instead of failing when no brokers are set.
	LogOnly bool `yaml:"logOnly"`
}

type StorageConfig struct {
	Driver        string `yaml:"driver"`
	Dir           string `yaml:"dir"`
	MaxImages     int    `yaml:"maxImages"`
	MaxImageSize  int64  `yaml:"maxImageSize"`
	S3Bucket      string `yaml:"s3Bucket"`
	S3Prefix      string `yaml:"s3Prefix"`
	S3BaseURL     string `yaml:"s3BaseURL"`
	CloudinaryURL string `yaml:"cloudinaryURL"`
	Folder        string `yaml:"folder"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

type AdminSeed struct {
	Adminname string `yaml:"adminname"`
	Adminpass string `yaml:"adminpass"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	Admins   []AdminSeed    `yaml:"admins"`
}

func defaults() Config {
	return Config{
		Server:   ServerConfig{Port: "5002", Mode: "release"},
		Database: DatabaseConfig{Driver: "mysql", Host: "127.0.0.1", Port: "3306", LogLevel: "warn"},
		Redis:    RedisConfig{TTL: 10 * time.Minute},
		Kafka:    KafkaConfig{PasswordResetTopic: "password-reset"},
		Storage:  StorageConfig{Driver: "disk", Dir: "./uploads", MaxImages: 5, MaxImageSize: 5 << 20},
		Log:      LogConfig{Level: "info"},
	}
}

// LoadConfig reads filename over the defaults, then applies environment overrides
// (a .env file is loaded first when present). A missing file is not an error.
func LoadConfig(filename string) (Config, error) {
	config := defaults()

	file, err := os.Open(filename)
	if err != nil && !os.IsNotExist(err) {
		return config, err
	}
	if err == nil {
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("decode %s: %w", filename, err)
		}
	}

	_ = godotenv.Load()
	if err := config.applyEnv(); err != nil {
		return config, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.PublicBaseURL, "PUBLIC_BASE_URL")
	setString(&c.Server.Mode, "GIN_MODE")
	setString(&c.Database.Driver, "DATABASE_DRIVER")
	setString(&c.Database.DSN, "DATABASE_DSN")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Storage.Dir, "UPLOAD_DIR")
	setString(&c.Storage.S3Bucket, "S3_BUCKET")
	setString(&c.Storage.CloudinaryURL, "CLOUDINARY_URL")
	setString(&c.Log.Level, "LOG_LEVEL")

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Kafka.Brokers = strings.Split(brokers, ",")
	}
	if logOnly := os.Getenv("KAFKA_LOG_ONLY"); logOnly != "" {
		v, err := strconv.ParseBool(logOnly)
		if err != nil {
			return fmt.Errorf("KAFKA_LOG_ONLY: %w", err)
		}
		c.Kafka.LogOnly = v
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.Redis.Database = n
	}
	return nil
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

// DatabaseDSN returns the configured DSN, or builds one for the driver from the parts.
func (c DatabaseConfig) DatabaseDSN() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.Username,
			c.Password,
			c.Host,
			c.Port,
			c.Database,
		), nil
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.Host,
			c.Username,
			c.Password,
			c.Database,
			c.Port,
		), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", c.Driver)
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// SetupDatabaseConnection opens the configured database and migrates every model.
func SetupDatabaseConnection(config DatabaseConfig) (*gorm.DB, error) {
	dsn, err := config.DatabaseDSN()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch config.Driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel(config.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := repository.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("driver", config.Driver).Msg("connected to database")
	return db, nil
}

// SetupRedisConnection returns nil when no address is configured.
func SetupRedisConnection(ctx context.Context, config RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.Database,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().Str("addr", config.Addr).Msg("connected to redis")
	return redisClient, nil
}

// SetupLogger configures the global zerolog logger.
func SetupLogger(config LogConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if config.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return nil
}
