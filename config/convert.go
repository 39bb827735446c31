package config

import (
	"encoding/json"
	"fmt"
	"time"
)

// 预设名称
const (
	PresetServer  = "server"
	PresetMobile  = "mobile"
	PresetMinimal = "minimal"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "router": {"forward_cache_size": 4096, "forward_cache_ttl": "5m"},
//	  "log": {"level": "debug", "format": "json"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "server": 公网中继，大缓存、长保留
//   - "mobile": 小缓存、短保留
//   - "minimal": 最小资源占用，关闭指标
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return ErrNilConfig
	}

	switch presetName {
	case PresetServer:
		cfg.Router.ForwardCacheSize = 1 << 18
		cfg.Router.ForwardCacheTTL = Duration(time.Hour)
		cfg.Router.EnableMetrics = true
	case PresetMobile:
		cfg.Router.ForwardCacheSize = 1024
		cfg.Router.ForwardCacheTTL = Duration(5 * time.Minute)
	case PresetMinimal:
		cfg.Router.ForwardCacheSize = 256
		cfg.Router.ForwardCacheTTL = Duration(time.Minute)
		cfg.Router.EnableMetrics = false
	case "":
		// 空预设，不做任何操作
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
	return nil
}

// CloneConfig 深拷贝配置
func CloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}
	clone := *cfg
	return &clone
}
