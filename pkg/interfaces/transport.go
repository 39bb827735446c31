package interfaces

import (
	"context"

	"github.com/dep2p/go-natrouter/pkg/types"
)

// ============================================================================
//                              命令
// ============================================================================

// Command 传输层命令号
type Command uint8

const (
	// CommandPeerHandshake 握手命令
	CommandPeerHandshake Command = 0
	// CommandPeerHolepunch 打洞命令
	CommandPeerHolepunch Command = 1
)

// String 返回命令名称
func (c Command) String() string {
	switch c {
	case CommandPeerHandshake:
		return "peer_handshake"
	case CommandPeerHolepunch:
		return "peer_holepunch"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              发送选项
// ============================================================================

// Socket 本地出站套接字
//
// 对路由核心完全不透明，由传输层解释。用于打洞时
// 从特定本地端口发包。
type Socket interface{}

// SendOptions 出站消息的传输层选项
type SendOptions struct {
	// Socket 指定发送使用的本地套接字（nil 表示默认）
	Socket Socket

	// CloserNodes 是否在回复中附带更近节点的路由提示
	CloserNodes bool

	// Token 是否要求消息携带防放大令牌
	Token bool

	// To 回复的目的端点，nil 表示回复给原始请求方
	To *types.Endpoint
}

// ============================================================================
//                              Transport 接口
// ============================================================================

// Response 请求的回复
type Response struct {
	// From 实际发送回复的端点
	From types.Endpoint

	// To 回复送达的本地端点（即对方观测到的本地地址）
	To types.Endpoint

	// Value 回复负载，可能为 nil
	Value []byte

	// CloserNodes 路由提示
	CloserNodes []types.Endpoint
}

// RequestHandler 入站请求处理函数
//
// 每个入站请求在独立的 goroutine 中调用，处理函数可以阻塞。
type RequestHandler func(ctx context.Context, req InboundRequest)

// Transport 请求/回复/中继传输
type Transport interface {
	// Request 向 to 发送请求并等待恰好一个回复
	//
	// 超时或无回复时返回错误。
	Request(ctx context.Context, cmd Command, target types.Target, value []byte, to types.Endpoint, opts SendOptions) (*Response, error)

	// SetRequestHandler 设置命令的入站处理函数
	SetRequestHandler(cmd Command, handler RequestHandler)

	// RemoveRequestHandler 移除命令的入站处理函数
	RemoveRequestHandler(cmd Command)
}

// InboundRequest 入站请求上下文
type InboundRequest interface {
	// Command 请求命令
	Command() Command

	// Target 请求目标，ok 为 false 表示请求未携带目标
	Target() (types.Target, bool)

	// Value 请求负载
	Value() []byte

	// From 直接发送方端点
	From() types.Endpoint

	// To 请求到达的本地端点
	To() types.Endpoint

	// Reply 直接回复请求方（或 opts.To 指定的端点）
	Reply(value []byte, opts SendOptions) error

	// Relay 将请求转发给 to，保留对原始请求方的可追溯性
	Relay(value []byte, to types.Endpoint, opts SendOptions) error
}
