package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"areyoualive"`

	// Redis 配置（唯一的持久化存储，按天滚动的 KV）
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"ayal"`

	// 签到配置
	// 所有"今天"的计算使用固定时区偏移，不读服务器本地时区
	TimezoneOffsetHours int `env:"TIMEZONE_OFFSET_HOURS" envDefault:"8"`
	RemindHour          int `env:"REMIND_HOUR" envDefault:"18"` // 晚于此小时未签到视为超时
	CheckinTTLSeconds   int `env:"CHECKIN_TTL_SECONDS" envDefault:"86400"`

	// Resend 邮件通知配置
	ResendAPIKey   string `env:"RESEND_API_KEY"`
	ResendEndpoint string `env:"RESEND_ENDPOINT" envDefault:"https://api.resend.com/emails"`
	NotifyFrom     string `env:"NOTIFY_FROM" envDefault:"老人签到系统 <notify@9527878.xyz>"`
	NotifyEmail    string `env:"NOTIFY_EMAIL"` // 家属接收通知的邮箱

	// Snowflake ID 生成器配置（通知 dispatch_id 使用）
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4317"`
	TracingSampler  float64 `env:"TRACING_SAMPLER" envDefault:"0.1"`

	// 速率限制配置, 配置在中间件内
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPM     int  `env:"RATE_LIMIT_RPM" envDefault:"30"` // 每分钟签到请求数上限（按 IP）
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.ResendAPIKey == "" {
		log.Printf("WARN: RESEND_API_KEY is not set, check-in notifications will not be delivered")
	}

	if Cfg.NotifyEmail == "" {
		log.Printf("WARN: NOTIFY_EMAIL is not set, check-in notifications will not be delivered")
	}

	if Cfg.RemindHour < 0 || Cfg.RemindHour > 23 {
		log.Fatal("REMIND_HOUR must be within 0-23")
	}

	if Cfg.CheckinTTLSeconds <= 0 {
		log.Fatal("CHECKIN_TTL_SECONDS must be positive")
	}
}

// CheckinRetentionSeconds 记录的实际保留窗口，取一天的两倍：
// 昨天的记录不会泄漏进今天的状态判断，又留足展示余量
func (c *Config) CheckinRetentionSeconds() int {
	return c.CheckinTTLSeconds * 2
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
