package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultEndpoint    = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryPeriod = 600 * time.Second
	DefaultHTTPTimeout = 10 * time.Second
	DefaultLogLevel    = "info"
)

// ErrMissingTokens возвращается, если не задана хотя бы одна обязательная переменная окружения
var ErrMissingTokens = errors.New("отсутствуют обязательные переменные окружения")

// Config содержит все конфигурационные параметры бота
type Config struct {
	PracticumToken string        `mapstructure:"practicum_token"`
	TelegramToken  string        `mapstructure:"telegram_token"`
	ChatID         string        `mapstructure:"telegram_chat_id"`
	Endpoint       string        `mapstructure:"practicum_endpoint"`
	RetryPeriod    time.Duration `mapstructure:"retry_period"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	LogLevel       string        `mapstructure:"log_level"`
}

// envKeys - соответствие ключей конфигурации переменным окружения
var envKeys = map[string]string{
	"practicum_token":    "PRACTICUM_TOKEN",
	"telegram_token":     "TELEGRAM_TOKEN",
	"telegram_chat_id":   "TELEGRAM_CHAT_ID",
	"practicum_endpoint": "PRACTICUM_ENDPOINT",
	"retry_period":       "RETRY_PERIOD",
	"http_timeout":       "HTTP_TIMEOUT",
	"log_level":          "LOG_LEVEL",
}

// LoadConfig читает .env (если он есть) и переменные окружения.
// Наличие секретов здесь не проверяется, для этого есть Validate.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("ошибка привязки переменной %s: %w", env, err)
		}
	}

	v.SetDefault("practicum_endpoint", DefaultEndpoint)
	v.SetDefault("retry_period", DefaultRetryPeriod)
	v.SetDefault("http_timeout", DefaultHTTPTimeout)
	v.SetDefault("log_level", DefaultLogLevel)

	// число без единиц измерения считается секундами: RETRY_PERIOD=600
	for _, key := range []string{"retry_period", "http_timeout"} {
		if seconds, err := strconv.Atoi(strings.TrimSpace(v.GetString(key))); err == nil {
			v.Set(key, time.Duration(seconds)*time.Second)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	cfg.ChatID = strings.TrimSpace(cfg.ChatID)

	return &cfg, nil
}

// Validate проверяет наличие всех токенов
func (c *Config) Validate() error {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, envKeys["practicum_token"])
	}
	if c.TelegramToken == "" {
		missing = append(missing, envKeys["telegram_token"])
	}
	if c.ChatID == "" {
		missing = append(missing, envKeys["telegram_chat_id"])
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTokens, strings.Join(missing, ", "))
	}

	if c.RetryPeriod <= 0 {
		return fmt.Errorf("некорректный RETRY_PERIOD: %s", c.RetryPeriod)
	}

	return nil
}
