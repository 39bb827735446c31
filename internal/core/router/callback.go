package router

import (
	"context"
	"fmt"

	"github.com/dep2p/go-natrouter/pkg/interfaces"
)

// outcome 服务端回调的结果
//
// 回调返回错误或 panic 时 err 非空；两者都与“没有回复”同样处理。
type outcome[T any] struct {
	reply *T
	err   error
}

// usable 是否得到可用的回复
func (o outcome[T]) usable() bool {
	return o.err == nil && o.reply != nil
}

// call 调用回调并把 panic 转换为错误
func call[T any](fn func() (*T, error)) (o outcome[T]) {
	defer func() {
		if p := recover(); p != nil {
			o = outcome[T]{err: fmt.Errorf("%w: panic: %v", ErrCallbackFailed, p)}
		}
	}()

	reply, err := fn()
	if err != nil {
		return outcome[T]{err: fmt.Errorf("%w: %w", ErrCallbackFailed, err)}
	}
	return outcome[T]{reply: reply}
}

func callHandshake(ctx context.Context, fn interfaces.HandshakeHandler, payload interfaces.HandshakePayload, req interfaces.InboundRequest) outcome[interfaces.HandshakeReply] {
	return call(func() (*interfaces.HandshakeReply, error) {
		return fn(ctx, payload, req)
	})
}

func callHolepunch(ctx context.Context, fn interfaces.HolepunchHandler, payload interfaces.HolepunchPayload, req interfaces.InboundRequest) outcome[interfaces.HolepunchReply] {
	return call(func() (*interfaces.HolepunchReply, error) {
		return fn(ctx, payload, req)
	})
}
