package config

import (
	"errors"

	"go.uber.org/multierr"
)

// ErrNilConfig 配置为空
var ErrNilConfig = errors.New("config is nil")

// Validate 验证配置的有效性
//
// 检查所有子配置，返回聚合后的全部错误，而不是遇到第一个就返回。
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	return multierr.Combine(
		c.Router.Validate(),
		c.Log.Validate(),
	)
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 转发缓存容量非正 -> 使用默认值
//   - 超时时间为负 -> 使用默认值
//   - 日志级别/格式为空 -> 使用默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	def := DefaultRouterConfig()
	if c.Router.ForwardCacheSize < 1 {
		c.Router.ForwardCacheSize = def.ForwardCacheSize
	}
	if c.Router.ForwardCacheTTL < 0 {
		c.Router.ForwardCacheTTL = def.ForwardCacheTTL
	}
	if c.Router.RequestTimeout < 0 {
		c.Router.RequestTimeout = def.RequestTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogConfig().Level
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogConfig().Format
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
