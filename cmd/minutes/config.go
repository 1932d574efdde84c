package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	defaultServerURL = "http://localhost:8080"
	defaultTimeout   = 5 * time.Minute
)

// Config 保存 CLI 全局配置
type Config struct {
	ServerURL string        `yaml:"server_url" json:"server_url"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	Output    string        `yaml:"-" json:"-"`
}

// LoadConfig 从命令行标志、环境变量、配置文件加载配置（优先级从高到低）
func LoadConfig(cmd *cobra.Command) *Config {
	cfg := &Config{}

	// 尝试从配置文件读取基础值
	loadConfigFile(cfg, configFilePath())

	// 环境变量覆盖配置文件
	if v := os.Getenv("MINUTES_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}

	// 命令行标志覆盖环境变量
	if v, _ := cmd.Flags().GetString("server-url"); v != "" {
		cfg.ServerURL = v
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output = v
	}

	// 默认值
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}

	return cfg
}

// configFilePath 返回 ~/.minutes/config.yaml，无法确定 HOME 时为空
func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minutes", "config.yaml")
}

func loadConfigFile(cfg *Config, path string) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = yaml.Unmarshal(data, cfg)
}

// addGlobalFlags 为 root 命令添加全局标志
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("server-url", "", "サーバーアドレス (env: MINUTES_SERVER_URL, 既定: "+defaultServerURL+")")
	cmd.PersistentFlags().Duration("timeout", defaultTimeout, "リクエストのタイムアウト")
	cmd.PersistentFlags().StringP("output", "o", "", "出力形式: json / text (既定: text)")
}
