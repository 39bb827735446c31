package noise

import (
	"context"
	"fmt"

	"github.com/dep2p/go-natrouter/internal/core/router"
	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/lib/log"
	"github.com/dep2p/go-natrouter/pkg/types"
)

var logger = log.Logger("core/security/noise")

// ============================================================================
// 服务端
// ============================================================================

// SessionFunc 服务端会话建立回调
//
// peer 为经中继时客户端的公网地址，直连时为 nil。返回错误时拒绝握手，不产生回复。
type SessionFunc func(ctx context.Context, s *Session, peer *types.Endpoint) error

// HandshakeHandler 返回作为服务端登记回调的握手处理函数
func HandshakeHandler(static KeyPair, onSession SessionFunc) interfaces.HandshakeHandler {
	return func(ctx context.Context, p interfaces.HandshakePayload, req interfaces.InboundRequest) (*interfaces.HandshakeReply, error) {
		reply, s, _, err := Respond(static, p.Noise, nil)
		if err != nil {
			logger.Debug("握手消息无效", "from", req.From().String(), "error", err)
			return nil, err
		}

		if onSession != nil {
			if err := onSession(ctx, s, p.PeerAddress); err != nil {
				return nil, err
			}
		}
		return &interfaces.HandshakeReply{Noise: reply}, nil
	}
}

// ============================================================================
// 客户端
// ============================================================================

// Handshaker 发起路由握手的能力（*router.Router 实现）
type Handshaker interface {
	PeerHandshake(ctx context.Context, target types.Target, hr router.HandshakeRequest, to types.Endpoint) (*router.HandshakeResult, error)
}

// Connect 经 to（服务端或第一跳中继）与 remoteStatic 对应的服务端建立会话
//
// relay 非空时作为第一跳中继的下一跳。
func Connect(ctx context.Context, h Handshaker, static KeyPair, remoteStatic []byte, to types.Endpoint, relay *types.Endpoint) (*Session, *router.HandshakeResult, error) {
	target, err := TargetFromPublicKey(remoteStatic)
	if err != nil {
		return nil, nil, err
	}

	initiator, err := NewInitiator(static, remoteStatic)
	if err != nil {
		return nil, nil, err
	}
	msg, err := initiator.Message(nil)
	if err != nil {
		return nil, nil, err
	}

	res, err := h.PeerHandshake(ctx, target, router.HandshakeRequest{Noise: msg, RelayAddress: relay}, to)
	if err != nil {
		return nil, nil, err
	}

	s, _, err := initiator.Finish(res.Noise)
	if err != nil {
		return nil, nil, fmt.Errorf("connect %s: %w", res.ServerAddress, err)
	}
	return s, res, nil
}
