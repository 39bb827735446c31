package natrouter

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-natrouter/config"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 预设与完整配置
	preset string
	config *config.Config

	// 路由覆盖
	router struct {
		forwardCacheSize int
		forwardCacheTTL  *time.Duration
		requestTimeout   *time.Duration
		enableMetrics    *bool
	}

	// 日志覆盖
	log struct {
		level  string
		format string
	}

	gate       Gate
	registerer prometheus.Registerer

	// 用户追加的 Fx 选项
	fxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{}
}

// toConfig 转换为统一配置
//
// 顺序：基础配置（WithConfig 或默认）→ 预设 → 单项覆盖。
func (o *options) toConfig() (*config.Config, error) {
	cfg := config.NewConfig()
	if o.config != nil {
		cfg = config.CloneConfig(o.config)
	}

	if err := config.ApplyPreset(cfg, o.preset); err != nil {
		return nil, err
	}

	// 覆盖: 路由
	if o.router.forwardCacheSize > 0 {
		cfg.Router.ForwardCacheSize = o.router.forwardCacheSize
	}
	if o.router.forwardCacheTTL != nil {
		cfg.Router.ForwardCacheTTL = config.Duration(*o.router.forwardCacheTTL)
	}
	if o.router.requestTimeout != nil {
		cfg.Router.RequestTimeout = config.Duration(*o.router.requestTimeout)
	}
	if o.router.enableMetrics != nil {
		cfg.Router.EnableMetrics = *o.router.enableMetrics
	}

	// 覆盖: 日志
	if o.log.level != "" {
		cfg.Log.Level = o.log.level
	}
	if o.log.format != "" {
		cfg.Log.Format = o.log.format
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ============================================================================
//                              配置选项
// ============================================================================

// WithPreset 使用预设配置
//
// 可选值：PresetNameServer、PresetNameMobile、PresetNameMinimal。
func WithPreset(name string) Option {
	return func(o *options) error {
		switch name {
		case PresetNameServer, PresetNameMobile, PresetNameMinimal:
			o.preset = name
			return nil
		default:
			return fmt.Errorf("unknown preset: %q", name)
		}
	}
}

// WithConfig 使用完整配置作为基础
//
// 预设与其他选项在其之上覆盖，传入的配置不会被修改。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return config.ErrNilConfig
		}
		o.config = cfg
		return nil
	}
}

// WithForwardCache 设置转发登记缓存容量与最长保留时间
//
// ttl 为 0 时只按容量淘汰。
func WithForwardCache(size int, ttl time.Duration) Option {
	return func(o *options) error {
		if size < 1 {
			return fmt.Errorf("forward cache size must be >= 1, got %d", size)
		}
		if ttl < 0 {
			return fmt.Errorf("forward cache ttl must be >= 0, got %s", ttl)
		}
		o.router.forwardCacheSize = size
		o.router.forwardCacheTTL = &ttl
		return nil
	}
}

// WithRequestTimeout 设置发起握手/打洞的单次往返超时
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("request timeout must be >= 0, got %s", d)
		}
		o.router.requestTimeout = &d
		return nil
	}
}

// WithGate 设置入站准入检查
//
// 每条解码成功的入站消息在分发前调用一次，可在此实现限流。
func WithGate(g Gate) Option {
	return func(o *options) error {
		if g == nil {
			return fmt.Errorf("gate cannot be nil")
		}
		o.gate = g
		return nil
	}
}

// WithMetrics 在 reg 上注册 Prometheus 指标
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return fmt.Errorf("registerer cannot be nil")
		}
		enable := true
		o.router.enableMetrics = &enable
		o.registerer = reg
		return nil
	}
}

// WithLog 设置日志级别与格式（"text" / "json"）
func WithLog(level, format string) Option {
	return func(o *options) error {
		o.log.level = level
		o.log.format = format
		return nil
	}
}

// WithFxOptions 追加 Fx 选项，用于替换或装饰内部组件
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
