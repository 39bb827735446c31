package memnet

import (
	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// Kind 数据包类型
type Kind uint8

const (
	// KindRequest 请求（含中继）
	KindRequest Kind = iota
	// KindResponse 回复
	KindResponse
)

// String 返回类型名称
func (k Kind) String() string {
	if k == KindResponse {
		return "response"
	}
	return "request"
}

// Packet 网络中传输的数据包
type Packet struct {
	Kind    Kind
	TID     uint64
	Command interfaces.Command
	Target  *types.Target
	Value   []byte

	// From 实际发送方，To 目的端点
	From types.Endpoint
	To   types.Endpoint

	// Socket 发送方指定的本地套接字
	Socket interfaces.Socket

	// CloserNodes 回复是否附带路由提示
	CloserNodes bool
}

// Filter 投递前的过滤器，返回 false 时丢弃数据包
type Filter func(p Packet) bool
