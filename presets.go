package natrouter

import (
	"github.com/dep2p/go-natrouter/config"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置常量
// ════════════════════════════════════════════════════════════════════════════

// 预设名称常量
const (
	// PresetNameServer 公网中继节点
	PresetNameServer = config.PresetServer

	// PresetNameMobile 移动端
	PresetNameMobile = config.PresetMobile

	// PresetNameMinimal 最小配置，用于测试
	PresetNameMinimal = config.PresetMinimal
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置获取
// ════════════════════════════════════════════════════════════════════════════

// GetServerConfig 获取公网中继配置
//
// 特点：
//   - 大容量转发缓存（262144 条，保留 1 小时）
//   - 启用指标
func GetServerConfig() *config.Config {
	return config.NewServerConfig()
}

// GetMobileConfig 获取移动端配置
func GetMobileConfig() *config.Config {
	cfg := config.NewConfig()
	_ = config.ApplyPreset(cfg, config.PresetMobile)
	return cfg
}

// GetMinimalConfig 获取最小配置
//
// 仅用于测试，关闭指标。
func GetMinimalConfig() *config.Config {
	return config.NewMinimalConfig()
}
