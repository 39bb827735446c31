package interfaces

import (
	"context"

	"github.com/dep2p/go-natrouter/pkg/types"
)

// ============================================================================
//                              握手回调
// ============================================================================

// HandshakePayload 交给服务端的握手数据
type HandshakePayload struct {
	// Noise 不透明的握手字节
	Noise []byte

	// PeerAddress 客户端地址（经中继时由中继填写）
	PeerAddress *types.Endpoint
}

// HandshakeReply 服务端的握手回复
type HandshakeReply struct {
	Noise  []byte
	Socket Socket
}

// HandshakeHandler 服务端握手回调
//
// 返回 (nil, nil) 表示不回复。返回错误或 panic 同样视为不回复。
type HandshakeHandler func(ctx context.Context, payload HandshakePayload, req InboundRequest) (*HandshakeReply, error)

// ============================================================================
//                              打洞回调
// ============================================================================

// HolepunchPayload 交给服务端的打洞数据
type HolepunchPayload struct {
	ID          uint64
	Payload     []byte
	PeerAddress *types.Endpoint
}

// HolepunchReply 服务端的打洞回复
type HolepunchReply struct {
	Payload []byte
	Socket  Socket
}

// HolepunchHandler 服务端打洞回调
type HolepunchHandler func(ctx context.Context, payload HolepunchPayload, req InboundRequest) (*HolepunchReply, error)
