package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"suimei/internal/bazi"
	"suimei/internal/calendar"
)

type Config struct {
	Port     int
	LogLevel string

	RedisURL         string
	CalendarCacheTTL time.Duration
	CalendarTimezone string
	HourPolicy       bazi.HourPolicy
	PillarCrossCheck bool
	LuckPillarCount  int
	TimelineMaxYears int
	TracingEnabled   bool
	TelegramBotToken string

	MCPTransport          string
	MCPHTTPEnabled        bool
	MCPHTTPBind           string
	MCPHTTPPort           int
	MCPAuthToken          string
	MCPRequestTimeoutSecs int
	MCPRateLimitPerMin    int

	OpenAIAPIKey string
	OpenAIModel  string

	SSHEnabled     bool
	SSHAddr        string
	SSHHostKeyPath string
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		RedisURL:         strings.TrimSpace(os.Getenv("REDIS_URL")),
		MCPAuthToken:     os.Getenv("MCP_AUTH_TOKEN"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, bot will be disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, calendar cache will be disabled")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, advisor will be disabled")
	}

	cfg.Port = positiveInt("PORT", 8080)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.CalendarCacheTTL = time.Duration(positiveInt("CALENDAR_CACHE_TTL_HOURS", 24*30)) * time.Hour

	cfg.CalendarTimezone = strings.TrimSpace(os.Getenv("CALENDAR_TIMEZONE"))
	if cfg.CalendarTimezone == "" {
		cfg.CalendarTimezone = calendar.DefaultTimezone
	}
	if _, err := time.LoadLocation(cfg.CalendarTimezone); err != nil {
		log.Printf("Warning: unknown CALENDAR_TIMEZONE=%q, defaulting to %s", cfg.CalendarTimezone, calendar.DefaultTimezone)
		cfg.CalendarTimezone = calendar.DefaultTimezone
	}

	policy, err := bazi.ParseHourPolicy(strings.ToLower(strings.TrimSpace(os.Getenv("HOUR_ROLLOVER"))))
	if err != nil {
		log.Printf("Warning: %v, defaulting to %s", err, bazi.HourSameDay)
		policy = bazi.HourSameDay
	}
	cfg.HourPolicy = policy
	cfg.PillarCrossCheck = boolFlag("PILLAR_CROSS_CHECK", false)

	cfg.LuckPillarCount = positiveInt("LUCK_PILLAR_COUNT", bazi.DefaultLuckCount)
	cfg.TimelineMaxYears = positiveInt("TIMELINE_MAX_YEARS", 120)
	cfg.TracingEnabled = boolFlag("TRACING_ENABLED", true)

	cfg.MCPTransport = strings.ToLower(strings.TrimSpace(os.Getenv("MCP_TRANSPORT")))
	if cfg.MCPTransport == "" {
		cfg.MCPTransport = "stdio"
	}
	if cfg.MCPTransport != "stdio" && cfg.MCPTransport != "http" {
		log.Printf("Warning: unsupported MCP_TRANSPORT=%q, defaulting to stdio", cfg.MCPTransport)
		cfg.MCPTransport = "stdio"
	}

	cfg.MCPHTTPEnabled = boolFlag("MCP_HTTP_ENABLED", false)
	cfg.MCPHTTPBind = strings.TrimSpace(os.Getenv("MCP_HTTP_BIND"))
	if cfg.MCPHTTPBind == "" {
		cfg.MCPHTTPBind = "127.0.0.1"
	}
	cfg.MCPHTTPPort = positiveInt("MCP_HTTP_PORT", 8090)
	cfg.MCPRequestTimeoutSecs = positiveInt("MCP_REQUEST_TIMEOUT_SECS", 5)
	cfg.MCPRateLimitPerMin = positiveInt("MCP_RATE_LIMIT_PER_MIN", 60)

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.SSHEnabled = boolFlag("SSH_ENABLED", false)
	cfg.SSHAddr = strings.TrimSpace(os.Getenv("SSH_ADDR"))
	if cfg.SSHAddr == "" {
		cfg.SSHAddr = ":2222"
	}
	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/suimei_ed25519"
	}

	return cfg
}

func positiveInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, defaulting to %d", key, v, fallback)
		return fallback
	}
	return n
}

func boolFlag(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	switch {
	case strings.EqualFold(v, "true"):
		return true
	case strings.EqualFold(v, "false"):
		return false
	}
	return fallback
}
