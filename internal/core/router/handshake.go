package router

import (
	"context"
	"fmt"
	"time"

	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/lib/proto/routing"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// ============================================================================
//                              发起方
// ============================================================================

// HandshakeRequest 发起握手的参数
type HandshakeRequest struct {
	// Noise 客户端握手字节
	Noise []byte

	// PeerAddress 可选，一般为空
	PeerAddress *types.Endpoint

	// RelayAddress 可选，指定第一跳中继应转发到的下一跳
	RelayAddress *types.Endpoint
}

// HandshakeResult 握手结果
type HandshakeResult struct {
	// Noise 服务端握手回复
	Noise []byte

	// Relayed 回复是否经过中继
	Relayed bool

	// ServerAddress 服务端地址（经中继时为回复中携带的地址，否则为查询的端点）
	ServerAddress types.Endpoint

	// ClientAddress 本地被对方观测到的地址
	ClientAddress types.Endpoint
}

// PeerHandshake 向 to 发送 FROM_CLIENT 握手并等待恰好一个回复
//
// 回复无法解码、模式不是 REPLY、来源端点不是 to、或缺少 noise 时返回 ErrBadReply。
// 来源端点校验是抵御路径外伪造回复的唯一防线。
// 传输层超时等错误原样包装返回，不是 ErrBadReply。
func (r *Router) PeerHandshake(ctx context.Context, target types.Target, hr HandshakeRequest, to types.Endpoint) (*HandshakeResult, error) {
	value := (&routing.Handshake{
		Mode:         routing.ModeFromClient,
		Noise:        hr.Noise,
		PeerAddress:  hr.PeerAddress,
		RelayAddress: hr.RelayAddress,
	}).Encode()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	res, err := r.transport.Request(ctx, interfaces.CommandPeerHandshake, target, value, to, interfaces.SendOptions{})
	if err != nil {
		r.metrics.request(ProtocolHandshake, resultTransportError)
		return nil, fmt.Errorf("peer handshake to %s: %w", to, err)
	}

	result, err := handshakeResult(res, to)
	if err != nil {
		r.metrics.request(ProtocolHandshake, resultBadReply)
		logger.Debug("握手回复无效", "target", target.ShortString(), "to", to.String(), "error", err)
		return nil, err
	}

	r.metrics.request(ProtocolHandshake, resultOK)
	logger.Debug("握手完成",
		"target", target.ShortString(),
		"to", to.String(),
		"relayed", result.Relayed,
		"rtt", since(start))
	return result, nil
}

func handshakeResult(res *interfaces.Response, to types.Endpoint) (*HandshakeResult, error) {
	hs, err := routing.DecodeHandshake(res.Value)
	if err != nil {
		return nil, badReply("decode handshake: %v", err)
	}
	if hs.Mode != routing.ModeReply {
		return nil, badReply("unexpected mode %s", hs.Mode)
	}
	if !res.From.Equal(to) {
		return nil, badReply("reply from %s, queried %s", res.From, to)
	}
	if !hs.HasNoise() {
		return nil, badReply("reply without noise")
	}

	result := &HandshakeResult{
		Noise:         hs.Noise,
		Relayed:       hs.PeerAddress != nil,
		ServerAddress: to,
		ClientAddress: res.To,
	}
	if hs.PeerAddress != nil {
		result.ServerAddress = *hs.PeerAddress
	}
	return result, nil
}

// ============================================================================
//                              响应方 / 中继
// ============================================================================

// OnPeerHandshake 处理入站握手消息
//
// 根据目标登记与消息模式决定回复、中继或静默丢弃，从不返回错误。
func (r *Router) OnPeerHandshake(ctx context.Context, req interfaces.InboundRequest) {
	target, reg := r.lookup(req)

	hs, err := routing.DecodeHandshake(req.Value())
	if err != nil {
		r.dropped(ProtocolHandshake, dropMalformed, target, req, "error", err)
		return
	}

	if !r.gate.Allow(ctx, ProtocolHandshake, hs.Mode, req.From()) {
		r.dropped(ProtocolHandshake, dropGated, target, req, "mode", hs.Mode.String())
		return
	}

	action := Transition(ProtocolHandshake, reg.HandlesHandshake(), hs.Mode)
	r.metrics.message(ProtocolHandshake, hs.Mode.String(), action)

	// 服务端只要有 noise 就调用回调，之后再按模式决定去向
	if reg.HandlesHandshake() {
		r.serveHandshake(ctx, req, target, reg, hs, action)
		return
	}

	switch action {
	case ActionForward:
		r.forwardHandshake(req, target, reg, hs)
	case ActionForwardSecondHop:
		r.forwardHandshakeSecondHop(req, target, reg, hs)
	case ActionReplyToPeer:
		r.replyHandshakeToPeer(req, target, hs)
	default:
		r.dropped(ProtocolHandshake, dropUnexpectedMode, target, req,
			"mode", hs.Mode.String(), "server", reg.HandlesHandshake())
	}
}

// serveHandshake 本节点是目的服务端
//
// 回调先于模式分支执行：FROM_SERVER、REPLY 或缺少 relayAddress 的
// FROM_SECOND_RELAY 同样会调用回调，回复随后被丢弃。
func (r *Router) serveHandshake(ctx context.Context, req interfaces.InboundRequest, target types.Target, reg Registration, hs *routing.Handshake, action Action) {
	if !hs.HasNoise() {
		r.dropped(ProtocolHandshake, dropMissingNoise, target, req)
		return
	}

	out := callHandshake(ctx, reg.OnHandshake, interfaces.HandshakePayload{
		Noise:       hs.Noise,
		PeerAddress: hs.PeerAddress,
	}, req)
	if out.err != nil {
		r.dropped(ProtocolHandshake, dropCallbackFailed, target, req, "error", out.err)
		return
	}
	if !out.usable() || len(out.reply.Noise) == 0 {
		r.dropped(ProtocolHandshake, dropEmptyReply, target, req)
		return
	}

	if !action.InvokesServer() {
		r.dropped(ProtocolHandshake, dropUnexpectedMode, target, req, "mode", hs.Mode.String(), "server", true)
		return
	}
	if action == ActionServerRelayToRelay && hs.RelayAddress == nil {
		r.dropped(ProtocolHandshake, dropMissingRelay, target, req)
		return
	}

	opts := interfaces.SendOptions{Socket: out.reply.Socket}

	var err error
	switch action {
	case ActionServerReply:
		err = req.Reply((&routing.Handshake{
			Mode:  routing.ModeReply,
			Noise: out.reply.Noise,
		}).Encode(), opts)
	case ActionServerRelayToSender:
		err = req.Relay((&routing.Handshake{
			Mode:        routing.ModeFromServer,
			Noise:       out.reply.Noise,
			PeerAddress: hs.PeerAddress,
		}).Encode(), req.From(), opts)
	case ActionServerRelayToRelay:
		err = req.Relay((&routing.Handshake{
			Mode:        routing.ModeFromServer,
			Noise:       out.reply.Noise,
			PeerAddress: hs.PeerAddress,
		}).Encode(), *hs.RelayAddress, opts)
	}
	if err != nil {
		r.dropped(ProtocolHandshake, dropSendFailed, target, req, "error", err)
	}
}

// forwardHandshake 中继收到 FROM_CLIENT
func (r *Router) forwardHandshake(req interfaces.InboundRequest, target types.Target, reg Registration, hs *routing.Handshake) {
	if !hs.HasNoise() {
		r.dropped(ProtocolHandshake, dropMissingNoise, target, req)
		return
	}

	next := resolveNext(hs.RelayAddress, reg)
	if next == nil {
		// 不知道路由，回复更近节点提示引导客户端
		logger.Debug("无已知中继，回复路由提示", "target", target.ShortString(), "from", req.From().String())
		if err := req.Reply(nil, interfaces.SendOptions{CloserNodes: true}); err != nil {
			r.dropped(ProtocolHandshake, dropSendFailed, target, req, "error", err)
		}
		return
	}

	from := req.From()
	err := req.Relay((&routing.Handshake{
		Mode:        routing.ModeFromRelay,
		Noise:       hs.Noise,
		PeerAddress: &from,
	}).Encode(), *next, interfaces.SendOptions{})
	if err != nil {
		r.dropped(ProtocolHandshake, dropSendFailed, target, req, "error", err)
	}
}

// forwardHandshakeSecondHop 中继收到 FROM_RELAY，作为第二跳继续转发
func (r *Router) forwardHandshakeSecondHop(req interfaces.InboundRequest, target types.Target, reg Registration, hs *routing.Handshake) {
	if reg.Relay == nil {
		r.dropped(ProtocolHandshake, dropNoRoute, target, req)
		return
	}
	if !hs.HasNoise() {
		r.dropped(ProtocolHandshake, dropMissingNoise, target, req)
		return
	}

	// relayAddress 记住第一跳中继，服务端的回复经它返回客户端
	from := req.From()
	err := req.Relay((&routing.Handshake{
		Mode:         routing.ModeFromSecondRelay,
		Noise:        hs.Noise,
		PeerAddress:  hs.PeerAddress,
		RelayAddress: &from,
	}).Encode(), *reg.Relay, interfaces.SendOptions{})
	if err != nil {
		r.dropped(ProtocolHandshake, dropSendFailed, target, req, "error", err)
	}
}

// replyHandshakeToPeer 中继收到 FROM_SERVER，终端回复客户端
func (r *Router) replyHandshakeToPeer(req interfaces.InboundRequest, target types.Target, hs *routing.Handshake) {
	if hs.PeerAddress == nil {
		r.dropped(ProtocolHandshake, dropMissingPeer, target, req)
		return
	}
	if !hs.HasNoise() {
		r.dropped(ProtocolHandshake, dropMissingNoise, target, req)
		return
	}

	from := req.From()
	err := req.Reply((&routing.Handshake{
		Mode:        routing.ModeReply,
		Noise:       hs.Noise,
		PeerAddress: &from,
	}).Encode(), interfaces.SendOptions{To: hs.PeerAddress})
	if err != nil {
		r.dropped(ProtocolHandshake, dropSendFailed, target, req, "error", err)
	}
}
