// Ininicializing common application configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	App    AppConfig    `mapstructure:"app"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	AppVersion      string        `mapstructure:"appVersion"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Timeout         time.Duration `mapstructure:"timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Env             string        `mapstructure:"environment"`
	Mode            string        `mapstructure:"mode"`
}

type AppConfig struct {
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
	MaxPixels      int64         `mapstructure:"max_pixels"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	ImagesPath     string        `mapstructure:"images_path"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	TemplatesDir   string        `mapstructure:"templates_dir"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Addr returns the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LoadConfig reads ./config/config.yaml when present. Environment variables
// such as SERVER_PORT or KAFKA_ENABLED take precedence over file values.
func LoadConfig() (*viper.Viper, error) {
	return loadFrom("./config")
}

func loadFrom(paths ...string) (*viper.Viper, error) {
	viperInstance := viper.New()

	for _, p := range paths {
		viperInstance.AddConfigPath(p)
	}
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	setDefaults(viperInstance)

	err := viperInstance.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if c.App.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("app.max_upload_bytes must be positive, got %d", c.App.MaxUploadBytes)
	}
	if c.App.MaxPixels <= 0 {
		return nil, fmt.Errorf("app.max_pixels must be positive, got %d", c.App.MaxPixels)
	}
	if !strings.HasPrefix(c.App.ImagesPath, "/") {
		return nil, fmt.Errorf("app.images_path must start with '/', got %q", c.App.ImagesPath)
	}
	c.App.ImagesPath = strings.TrimRight(c.App.ImagesPath, "/")
	if c.App.ImagesPath == "" {
		return nil, errors.New("app.images_path must not be the root path")
	}
	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// setDefaults устанавливает значения по умолчанию
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.appVersion", "1.0.0")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("app.max_upload_bytes", 16<<20)
	v.SetDefault("app.max_pixels", 1<<24)
	v.SetDefault("app.request_timeout", 30*time.Second)
	v.SetDefault("app.images_path", "/images")
	v.SetDefault("app.cors_origins", []string{"*"})
	v.SetDefault("app.templates_dir", "")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9094"})
	v.SetDefault("kafka.topic", "image-stored")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
