package config

import (
	"errors"
	"time"

	"go.uber.org/multierr"
)

// RouterConfig 路由核心配置
type RouterConfig struct {
	// ForwardCacheSize 转发登记（Forward）缓存容量
	//
	// 服务端登记不受此限制，永不因内存压力被淘汰。
	ForwardCacheSize int `json:"forward_cache_size"`

	// ForwardCacheTTL 转发登记最长保留时间（0 = 仅按容量淘汰）
	ForwardCacheTTL Duration `json:"forward_cache_ttl"`

	// RequestTimeout 发起握手/打洞时单次往返的超时（0 = 完全交给传输层）
	RequestTimeout Duration `json:"request_timeout"`

	// EnableMetrics 是否注册 Prometheus 指标
	EnableMetrics bool `json:"enable_metrics"`
}

// DefaultRouterConfig 返回默认路由配置
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		ForwardCacheSize: 65536,
		ForwardCacheTTL:  Duration(20 * time.Minute),
		RequestTimeout:   Duration(10 * time.Second),
		EnableMetrics:    true,
	}
}

// Validate 验证路由配置
//
// 返回所有发现的问题（multierr 聚合）。
func (c RouterConfig) Validate() error {
	var err error
	if c.ForwardCacheSize < 1 {
		err = multierr.Append(err, errors.New("router.forward_cache_size must be >= 1"))
	}
	if c.ForwardCacheTTL < 0 {
		err = multierr.Append(err, errors.New("router.forward_cache_ttl must be >= 0"))
	}
	if c.RequestTimeout < 0 {
		err = multierr.Append(err, errors.New("router.request_timeout must be >= 0"))
	}
	return err
}
