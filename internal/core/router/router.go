package router

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// ============================================================================
//                              Router
// ============================================================================

// Router 握手与打洞消息的中继路由器
//
// 同时扮演发起方（PeerHandshake / PeerHolepunch）与响应方/中继
// （OnPeerHandshake / OnPeerHolepunch）。两个协议共享同一个注册表。
type Router struct {
	config    *Config
	transport interfaces.Transport
	registry  *Registry
	gate      Gate
	metrics   *Metrics

	mu      sync.Mutex
	started bool
}

// Option 路由器选项
type Option func(*Router)

// WithGate 设置入站准入检查
func WithGate(g Gate) Option {
	return func(r *Router) {
		if g != nil {
			r.gate = g
		}
	}
}

// WithMetrics 设置指标
func WithMetrics(m *Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// NewRouter 创建路由器
//
// cfg 为 nil 时使用默认配置。
func NewRouter(cfg *Config, transport interfaces.Transport, opts ...Option) (*Router, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Router{
		config:    cfg,
		transport: transport,
		registry:  NewRegistry(cfg.ForwardCacheSize, cfg.ForwardCacheTTL),
		gate:      AllowAll,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Start 在传输层上注册入站处理函数
func (r *Router) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}
	r.transport.SetRequestHandler(interfaces.CommandPeerHandshake, r.OnPeerHandshake)
	r.transport.SetRequestHandler(interfaces.CommandPeerHolepunch, r.OnPeerHolepunch)
	r.started = true

	logger.Debug("路由器已启动", "forwardCacheSize", r.config.ForwardCacheSize)
	return nil
}

// Stop 移除入站处理函数
func (r *Router) Stop(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil
	}
	r.transport.RemoveRequestHandler(interfaces.CommandPeerHandshake)
	r.transport.RemoveRequestHandler(interfaces.CommandPeerHolepunch)
	r.started = false
	return nil
}

// Registry 返回状态注册表
func (r *Router) Registry() *Registry {
	return r.registry
}

// Set 写入目标登记
func (r *Router) Set(target types.Target, reg Registration) {
	r.registry.Set(target, reg)
}

// Get 获取目标登记
func (r *Router) Get(target types.Target) (Registration, bool) {
	return r.registry.Get(target)
}

// Delete 删除目标登记
func (r *Router) Delete(target types.Target) {
	r.registry.Delete(target)
}

// SetKey 以任意目标表示（Target / []byte / 十六进制 / Base58）写入登记
func (r *Router) SetKey(target any, reg Registration) error {
	return r.registry.SetKey(target, reg)
}

// GetKey 以任意目标表示获取登记
func (r *Router) GetKey(target any) (Registration, bool, error) {
	return r.registry.GetKey(target)
}

// DeleteKey 以任意目标表示删除登记
func (r *Router) DeleteKey(target any) error {
	return r.registry.DeleteKey(target)
}

// lookup 查找入站请求目标的登记，请求未携带目标时返回零值
func (r *Router) lookup(req interfaces.InboundRequest) (types.Target, Registration) {
	target, ok := req.Target()
	if !ok {
		return target, Registration{}
	}
	reg, _ := r.registry.Get(target)
	return target, reg
}

// withTimeout 为发起方请求附加超时
func (r *Router) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.config.RequestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.config.RequestTimeout)
}

// dropped 记录丢弃
func (r *Router) dropped(protocol Protocol, reason string, target types.Target, req interfaces.InboundRequest, args ...any) {
	r.metrics.drop(protocol, reason)
	logger.Debug("丢弃入站消息",
		append([]any{
			"protocol", protocol.String(),
			"reason", reason,
			"target", target.ShortString(),
			"from", req.From().String(),
		}, args...)...)
}

// badReply 构造发起方错误
func badReply(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadReply, fmt.Sprintf(format, args...))
}

// resolveNext 显式地址优先，其次是登记记住的中继
func resolveNext(explicit *types.Endpoint, reg Registration) *types.Endpoint {
	if explicit != nil {
		return explicit
	}
	return reg.Relay
}

// since 用于日志的耗时
func since(start time.Time) string {
	return time.Since(start).Round(time.Microsecond).String()
}
