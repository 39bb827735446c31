package router

import (
	"context"

	"github.com/dep2p/go-natrouter/pkg/lib/proto/routing"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// Gate 入站消息准入检查
//
// 每条解码成功的入站消息在分发前恰好调用一次 Allow。
// 返回 false 时消息被静默丢弃。
type Gate interface {
	Allow(ctx context.Context, protocol Protocol, mode routing.Mode, from types.Endpoint) bool
}

// GateFunc 函数适配器
type GateFunc func(ctx context.Context, protocol Protocol, mode routing.Mode, from types.Endpoint) bool

// Allow 实现 Gate
func (f GateFunc) Allow(ctx context.Context, protocol Protocol, mode routing.Mode, from types.Endpoint) bool {
	return f(ctx, protocol, mode, from)
}

// AllowAll 放行所有消息
var AllowAll Gate = GateFunc(func(context.Context, Protocol, routing.Mode, types.Endpoint) bool {
	return true
})
