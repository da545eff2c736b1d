package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingAPIKey 未配置 LLM API Key，属于启动期致命错误
var ErrMissingAPIKey = errors.New("llm api key is not configured")

// 环境变量中的 API Key，优先级高于配置文件
var apiKeyEnvVars = []string{"GEMINI_API_KEY", "LLM_API_KEY"}

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Feed        FeedConfig        `yaml:"feed"`
	Cache       CacheConfig       `yaml:"cache"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	Provider        string   `yaml:"provider"` // gemini 或 openai
	BaseURL         string   `yaml:"base_url"`
	APIKey          string   `yaml:"api_key"`
	Models          []string `yaml:"models"`  // 按优先级排列的候选模型
	Timeout         int      `yaml:"timeout"` // 单次调用超时（秒）
	JSONMode        *bool    `yaml:"json_mode"`
	SafetyThreshold string   `yaml:"safety_threshold"`
	Language        string   `yaml:"language"`
}

// FeedConfig RSS 抓取相关配置
type FeedConfig struct {
	Timeout        int      `yaml:"timeout"` // 秒
	UserAgents     []string `yaml:"user_agents"`
	Cookie         string   `yaml:"cookie"`
	AcceptLanguage string   `yaml:"accept_language"`
	JitterMS       int      `yaml:"jitter_ms"`
	HomeCap        int      `yaml:"home_cap"`
	TopicCap       int      `yaml:"topic_cap"`
	EnrichSnippets bool     `yaml:"enrich_snippets"`
}

// CacheConfig 结果缓存配置
type CacheConfig struct {
	Interval int  `yaml:"interval"` // 刷新周期（分钟）
	Disabled bool `yaml:"disabled"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig LLM 调用限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// DefaultModels 默认模型回退链，能力强的在前
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-pro",
}

// Default 返回带默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// LoadConfig 从指定路径加载配置，并补齐默认值与环境变量
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults 补齐默认值，并用环境变量覆盖 API Key
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if len(c.LLM.Models) == 0 {
		c.LLM.Models = append([]string(nil), DefaultModels...)
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 60
	}
	if c.LLM.JSONMode == nil {
		on := true
		c.LLM.JSONMode = &on
	}
	if c.LLM.SafetyThreshold == "" {
		c.LLM.SafetyThreshold = "BLOCK_NONE"
	}
	if c.LLM.Language == "" {
		c.LLM.Language = "繁體中文"
	}
	for _, env := range apiKeyEnvVars {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			c.LLM.APIKey = v
			break
		}
	}

	if c.Feed.Timeout <= 0 {
		c.Feed.Timeout = 10
	}
	if c.Feed.JitterMS < 0 {
		c.Feed.JitterMS = 0
	}
	if c.Feed.HomeCap <= 0 {
		c.Feed.HomeCap = 30
	}
	if c.Feed.TopicCap <= 0 {
		c.Feed.TopicCap = 15
	}

	if c.Cache.Interval <= 0 {
		c.Cache.Interval = 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 15
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
}

// Validate 检查启动必需的配置
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	if c.LLM.Provider == "openai" && c.LLM.BaseURL == "" {
		return fmt.Errorf("llm base_url is required for provider %q", c.LLM.Provider)
	}
	return nil
}

// LLMTimeout 单次模型调用超时
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.Timeout) * time.Second
}

// FeedTimeout 单次 RSS 请求超时
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feed.Timeout) * time.Second
}

// CacheInterval 缓存时间桶长度
func (c *Config) CacheInterval() time.Duration {
	return time.Duration(c.Cache.Interval) * time.Minute
}
