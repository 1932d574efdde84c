package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 统一配置结构
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Translation TranslationConfig `yaml:"translation"`
	LLM         LLMConfig         `yaml:"llm"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Env           string `yaml:"env"` // dev, staging, production
	Port          string `yaml:"port"`
	MaxBodyBytes  int64  `yaml:"max_body_bytes"`
	MaxConcurrent int64  `yaml:"max_concurrent"` // 同时进行的议事录生成数，0 表示不限制
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
	File   string `yaml:"file"`
}

// TranslationConfig Google 翻译配置
type TranslationConfig struct {
	CredentialsBase64 string `yaml:"credentials_base64"`
	APIKey            string `yaml:"api_key"`
	Endpoint          string `yaml:"endpoint"`
	TargetLanguage    string `yaml:"target_language"`
}

// LLMConfig 议事录生成模型配置
type LLMConfig struct {
	Provider        string `yaml:"provider"` // anthropic, gemini, openai
	Model           string `yaml:"model"`
	MaxTokens       int    `yaml:"max_tokens"`
	BaseURL         string `yaml:"base_url"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
}

// Provider names
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
)

var defaultModels = map[string]string{
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4o",
}

const (
	defaultPort         = "8080"
	defaultMaxBodyBytes = 1 << 20
	defaultMaxTokens    = 4096
)

// LoadDotEnv 读取 .env 文件到环境变量，文件不存在时忽略；已存在的环境变量不会被覆盖
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig 从 CONFIG_FILE 指向的 YAML 文件与环境变量加载配置，环境变量优先
func LoadConfig() (*Config, error) {
	file := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	maxBody, err := getEnvInt64("MAX_BODY_BYTES", orInt64(file.Server.MaxBodyBytes, defaultMaxBodyBytes))
	if err != nil {
		return nil, err
	}
	// 默认不限制；文件中的 0 与未配置含义相同
	maxConcurrent, err := getEnvInt64("MAX_CONCURRENT_REQUESTS", file.Server.MaxConcurrent)
	if err != nil {
		return nil, err
	}
	maxTokens, err := getEnvInt("LLM_MAX_TOKENS", orInt(file.LLM.MaxTokens, defaultMaxTokens))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Env:           getEnv("ENV", or(file.Server.Env, "dev")),
			Port:          getEnv("PORT", or(file.Server.Port, defaultPort)),
			MaxBodyBytes:  maxBody,
			MaxConcurrent: maxConcurrent,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", or(file.Log.Level, "info")),
			Format: getEnv("LOG_FORMAT", or(file.Log.Format, "console")),
			File:   getEnv("LOG_FILE", file.Log.File),
		},
		Translation: TranslationConfig{
			CredentialsBase64: getEnv("GOOGLE_CREDENTIALS_BASE64", file.Translation.CredentialsBase64),
			APIKey:            getEnv("GOOGLE_TRANSLATE_API_KEY", file.Translation.APIKey),
			Endpoint:          getEnv("GOOGLE_TRANSLATE_ENDPOINT", file.Translation.Endpoint),
			TargetLanguage:    getEnv("TRANSLATE_TARGET_LANGUAGE", or(file.Translation.TargetLanguage, "ja")),
		},
		LLM: LLMConfig{
			Provider:        strings.ToLower(getEnv("LLM_PROVIDER", or(file.LLM.Provider, ProviderAnthropic))),
			Model:           getEnv("LLM_MODEL", file.LLM.Model),
			MaxTokens:       maxTokens,
			BaseURL:         getEnv("LLM_BASE_URL", file.LLM.BaseURL),
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", file.LLM.AnthropicAPIKey),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", file.LLM.GeminiAPIKey),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", file.LLM.OpenAIAPIKey),
		},
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultModels[cfg.LLM.Provider]
	}

	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// ValidateConfig 验证配置的有效性
func ValidateConfig(cfg *Config) error {
	var errs []string

	// 1. 端口验证
	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid PORT value: %s (must be 1-65535)", cfg.Server.Port))
	}

	// 2. 日志级别验证
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid LOG_LEVEL: %s (must be: debug, info, warn, error)", cfg.Log.Level))
	}

	// 3. 日志格式验证
	validLogFormats := map[string]bool{"console": true, "json": true}
	if !validLogFormats[cfg.Log.Format] {
		errs = append(errs, fmt.Sprintf("invalid LOG_FORMAT: %s (must be: console, json)", cfg.Log.Format))
	}

	// 4. 环境验证
	validEnvs := map[string]bool{"dev": true, "development": true, "staging": true, "production": true}
	if !validEnvs[cfg.Server.Env] {
		errs = append(errs, fmt.Sprintf("invalid ENV: %s (must be: dev, development, staging, production)", cfg.Server.Env))
	}

	// 5. 请求体上限
	if cfg.Server.MaxBodyBytes <= 0 {
		errs = append(errs, "MAX_BODY_BYTES must be greater than 0")
	}

	if cfg.Server.MaxConcurrent < 0 {
		errs = append(errs, "MAX_CONCURRENT_REQUESTS must not be negative")
	}

	// 6. 模型提供方
	if _, ok := defaultModels[cfg.LLM.Provider]; !ok {
		errs = append(errs, fmt.Sprintf("invalid LLM_PROVIDER: %s (must be: anthropic, gemini, openai)", cfg.LLM.Provider))
	}
	if cfg.LLM.MaxTokens <= 0 {
		errs = append(errs, "LLM_MAX_TOKENS must be greater than 0")
	}

	// 7. 生产环境必须配置模型密钥
	if cfg.IsProduction() && cfg.LLM.APIKey() == "" {
		errs = append(errs, fmt.Sprintf("API key for LLM_PROVIDER=%s is required in production environment", cfg.LLM.Provider))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// APIKey 返回当前提供方对应的密钥
func (l LLMConfig) APIKey() string {
	switch l.Provider {
	case ProviderAnthropic:
		return l.AnthropicAPIKey
	case ProviderGemini:
		return l.GeminiAPIKey
	case ProviderOpenAI:
		return l.OpenAIAPIKey
	default:
		return ""
	}
}

// IsProduction 判断是否为生产环境
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// IsDevelopment 判断是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "dev" || c.Server.Env == "development"
}

// GetServerAddr 获取服务器监听地址
func (c *Config) GetServerAddr() string {
	return ":" + c.Server.Port
}

// PrintConfig 打印配置（脱敏）
func (c *Config) PrintConfig() string {
	return fmt.Sprintf(`Configuration Loaded:
  Environment: %s
  Server Port: %s
  Max Body Bytes: %d
  Max Concurrent: %d
  Logging:
    - Level: %s
    - Format: %s
    - File: %s
  Translation:
    - Credentials: %s
    - API Key: %s
    - Endpoint: %s
    - Target: %s
  LLM:
    - Provider: %s
    - Model: %s
    - Max Tokens: %d
    - API Key: %s`,
		c.Server.Env,
		c.Server.Port,
		c.Server.MaxBodyBytes,
		c.Server.MaxConcurrent,
		c.Log.Level,
		c.Log.Format,
		or(c.Log.File, "<stdout>"),
		maskSecret(c.Translation.CredentialsBase64),
		maskSecret(c.Translation.APIKey),
		or(c.Translation.Endpoint, "<default>"),
		c.Translation.TargetLanguage,
		c.LLM.Provider,
		c.LLM.Model,
		c.LLM.MaxTokens,
		maskSecret(c.LLM.APIKey()),
	)
}

// 辅助函数

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return n, nil
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orInt(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}

func orInt64(value, fallback int64) int64 {
	if value != 0 {
		return value
	}
	return fallback
}

// maskSecret 对敏感信息进行脱敏
func maskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "***" + secret[len(secret)-4:]
}
