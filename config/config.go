// Package config 提供 natrouter 的统一配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//   - 支持预设配置（server/mobile/minimal）
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Router.ForwardCacheSize = 4096
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

// Config 是 natrouter 的完整配置结构
//
//   - Router: 路由核心（转发缓存、请求超时、指标）
//   - Log: 日志输出
type Config struct {
	// Router 路由核心配置
	Router RouterConfig `json:"router"`

	// Log 日志配置
	Log LogConfig `json:"log"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Router: DefaultRouterConfig(),
		Log:    DefaultLogConfig(),
	}
}

// NewServerConfig 创建服务器配置（公网中继节点）
func NewServerConfig() *Config {
	cfg := NewConfig()
	_ = ApplyPreset(cfg, PresetServer)
	return cfg
}

// NewMinimalConfig 创建最小配置（测试 / 嵌入式）
func NewMinimalConfig() *Config {
	cfg := NewConfig()
	_ = ApplyPreset(cfg, PresetMinimal)
	return cfg
}
