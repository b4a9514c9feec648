package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/nations-league/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	DBURL              string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	SeedDemoData       bool
	RandomSeed         int64
	LogLevel           logging.Level

	FiregateBaseURL             string
	FiregateAPIKey              string
	FiregateTimeout             time.Duration
	FiregateMaxRetries          int
	FiregateCacheTTL            time.Duration
	FiregateCircuitEnabled      bool
	FiregateCircuitFailureCount int
	FiregateCircuitOpenTimeout  time.Duration
	FiregateCircuitHalfOpenMax  int

	GeminiEnabled             bool
	GeminiBaseURL             string
	GeminiAPIKey              string
	GeminiModel               string
	GeminiTimeout             time.Duration
	GeminiMaxRetries          int
	GeminiCircuitEnabled      bool
	GeminiCircuitFailureCount int
	GeminiCircuitOpenTimeout  time.Duration
	GeminiCircuitHalfOpenMax  int

	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	seedDefault := "true"
	if appEnv == EnvProd {
		seedDefault = "false"
	}
	seedDemoData, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", seedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_DEMO_DATA: %w", err)
	}

	randomSeed := int64(0)
	if raw := strings.TrimSpace(os.Getenv("RANDOM_SEED")); raw != "" {
		randomSeed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse RANDOM_SEED: %w", err)
		}
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	firegateTimeout, err := time.ParseDuration(getEnv("FIREGATE_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREGATE_TIMEOUT: %w", err)
	}
	firegateMaxRetries, err := getEnvAsInt("FIREGATE_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREGATE_MAX_RETRIES: %w", err)
	}
	if firegateMaxRetries < 0 {
		return Config{}, fmt.Errorf("FIREGATE_MAX_RETRIES must be >= 0")
	}
	firegateCacheTTL, err := time.ParseDuration(getEnv("FIREGATE_CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREGATE_CACHE_TTL: %w", err)
	}
	if firegateCacheTTL <= 0 {
		return Config{}, fmt.Errorf("FIREGATE_CACHE_TTL must be > 0")
	}
	firegateCircuitEnabled, err := strconv.ParseBool(getEnv("FIREGATE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREGATE_CIRCUIT_ENABLED: %w", err)
	}
	firegateCircuitFailureCount, err := getEnvAsInt("FIREGATE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREGATE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if firegateCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("FIREGATE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	firegateCircuitOpenTimeout, err := time.ParseDuration(getEnv("FIREGATE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREGATE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if firegateCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("FIREGATE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	firegateCircuitHalfOpenMax, err := getEnvAsInt("FIREGATE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIREGATE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if firegateCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("FIREGATE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	geminiEnabled, err := strconv.ParseBool(getEnv("GEMINI_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_ENABLED: %w", err)
	}
	geminiAPIKey := strings.TrimSpace(getEnv("GEMINI_API_KEY", ""))
	if geminiEnabled && geminiAPIKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is required when GEMINI_ENABLED=true")
	}
	geminiTimeout, err := time.ParseDuration(getEnv("GEMINI_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_TIMEOUT: %w", err)
	}
	if geminiTimeout <= 0 {
		return Config{}, fmt.Errorf("GEMINI_TIMEOUT must be > 0")
	}
	geminiMaxRetries, err := getEnvAsInt("GEMINI_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_MAX_RETRIES: %w", err)
	}
	if geminiMaxRetries < 0 {
		return Config{}, fmt.Errorf("GEMINI_MAX_RETRIES must be >= 0")
	}
	geminiCircuitEnabled, err := strconv.ParseBool(getEnv("GEMINI_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_ENABLED: %w", err)
	}
	geminiCircuitFailureCount, err := getEnvAsInt("GEMINI_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if geminiCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	geminiCircuitOpenTimeout, err := time.ParseDuration(getEnv("GEMINI_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if geminiCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	geminiCircuitHalfOpenMax, err := getEnvAsInt("GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if geminiCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("GEMINI_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	smtpEnabled, err := strconv.ParseBool(getEnv("SMTP_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SMTP_ENABLED: %w", err)
	}
	smtpHost := strings.TrimSpace(getEnv("SMTP_HOST", ""))
	smtpPort, err := getEnvAsInt("SMTP_PORT", 587)
	if err != nil {
		return Config{}, fmt.Errorf("parse SMTP_PORT: %w", err)
	}
	if smtpPort < 1 || smtpPort > 65535 {
		return Config{}, fmt.Errorf("SMTP_PORT must be a valid port")
	}
	smtpFrom := strings.TrimSpace(getEnv("SMTP_FROM", ""))
	if smtpEnabled {
		if smtpHost == "" {
			return Config{}, fmt.Errorf("SMTP_HOST is required when SMTP_ENABLED=true")
		}
		if smtpFrom == "" {
			return Config{}, fmt.Errorf("SMTP_FROM is required when SMTP_ENABLED=true")
		}
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "nations-league-api"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		SeedDemoData:       seedDemoData,
		RandomSeed:         randomSeed,
		LogLevel:           parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		FiregateBaseURL:             getEnv("FIREGATE_BASE_URL", "http://localhost:8081"),
		FiregateAPIKey:              strings.TrimSpace(getEnv("FIREGATE_API_KEY", "")),
		FiregateTimeout:             firegateTimeout,
		FiregateMaxRetries:          firegateMaxRetries,
		FiregateCacheTTL:            firegateCacheTTL,
		FiregateCircuitEnabled:      firegateCircuitEnabled,
		FiregateCircuitFailureCount: firegateCircuitFailureCount,
		FiregateCircuitOpenTimeout:  firegateCircuitOpenTimeout,
		FiregateCircuitHalfOpenMax:  firegateCircuitHalfOpenMax,

		GeminiEnabled:             geminiEnabled,
		GeminiBaseURL:             getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiAPIKey:              geminiAPIKey,
		GeminiModel:               getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout:             geminiTimeout,
		GeminiMaxRetries:          geminiMaxRetries,
		GeminiCircuitEnabled:      geminiCircuitEnabled,
		GeminiCircuitFailureCount: geminiCircuitFailureCount,
		GeminiCircuitOpenTimeout:  geminiCircuitOpenTimeout,
		GeminiCircuitHalfOpenMax:  geminiCircuitHalfOpenMax,

		SMTPEnabled:  smtpEnabled,
		SMTPHost:     smtpHost,
		SMTPPort:     smtpPort,
		SMTPUsername: strings.TrimSpace(getEnv("SMTP_USERNAME", "")),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     smtpFrom,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled:     uptraceEnabled,
		UptraceDSN:         uptraceDSN,
		UptraceLogsEnabled: uptraceLogsEnabled,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

// UsePostgres reports whether a document store is configured; without a
// DB URL the service runs on in-memory repositories.
func (c Config) UsePostgres() bool {
	return strings.TrimSpace(c.DBURL) != ""
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
