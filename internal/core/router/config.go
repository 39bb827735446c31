package router

import (
	"fmt"
	"time"

	"github.com/dep2p/go-natrouter/config"
)

// Config 路由核心配置
type Config struct {
	ForwardCacheSize int           // 转发登记缓存容量（默认 65536）
	ForwardCacheTTL  time.Duration // 转发登记最长保留时间（0 = 仅按容量淘汰）
	RequestTimeout   time.Duration // 发起方单次往返超时（0 = 交给传输层）
	EnableMetrics    bool          // 是否注册 Prometheus 指标
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置转换
func ConfigFromUnified(cfg *config.Config) *Config {
	rc := config.DefaultRouterConfig()
	if cfg != nil {
		rc = cfg.Router
	}
	return &Config{
		ForwardCacheSize: rc.ForwardCacheSize,
		ForwardCacheTTL:  rc.ForwardCacheTTL.Duration(),
		RequestTimeout:   rc.RequestTimeout.Duration(),
		EnableMetrics:    rc.EnableMetrics,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.ForwardCacheSize < 1 {
		return fmt.Errorf("%w: ForwardCacheSize must be >= 1", ErrInvalidConfig)
	}
	if c.ForwardCacheTTL < 0 {
		return fmt.Errorf("%w: ForwardCacheTTL must be >= 0", ErrInvalidConfig)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: RequestTimeout must be >= 0", ErrInvalidConfig)
	}
	return nil
}
