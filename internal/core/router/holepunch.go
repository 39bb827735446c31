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

// HolepunchRequest 发起打洞的参数
type HolepunchRequest struct {
	ID          uint64
	Payload     []byte
	PeerAddress *types.Endpoint

	// Socket 指定发送使用的本地套接字，用于从特定端口协调打洞
	Socket interfaces.Socket
}

// HolepunchResult 打洞结果
type HolepunchResult struct {
	From        types.Endpoint
	To          types.Endpoint
	Payload     []byte
	PeerAddress *types.Endpoint
}

// PeerHolepunch 向 to 发送 FROM_CLIENT 打洞消息并等待恰好一个回复
//
// 校验规则与 PeerHandshake 相同，但不要求负载非空。
func (r *Router) PeerHolepunch(ctx context.Context, target types.Target, hr HolepunchRequest, to types.Endpoint) (*HolepunchResult, error) {
	value := (&routing.Holepunch{
		Mode:        routing.ModeFromClient,
		ID:          hr.ID,
		Payload:     hr.Payload,
		PeerAddress: hr.PeerAddress,
	}).Encode()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	res, err := r.transport.Request(ctx, interfaces.CommandPeerHolepunch, target, value, to, interfaces.SendOptions{Socket: hr.Socket})
	if err != nil {
		r.metrics.request(ProtocolHolepunch, resultTransportError)
		return nil, fmt.Errorf("peer holepunch to %s: %w", to, err)
	}

	hp, err := routing.DecodeHolepunch(res.Value)
	switch {
	case err != nil:
		err = badReply("decode holepunch: %v", err)
	case hp.Mode != routing.ModeReply:
		err = badReply("unexpected mode %s", hp.Mode)
	case !res.From.Equal(to):
		err = badReply("reply from %s, queried %s", res.From, to)
	}
	if err != nil {
		r.metrics.request(ProtocolHolepunch, resultBadReply)
		logger.Debug("打洞回复无效", "target", target.ShortString(), "to", to.String(), "error", err)
		return nil, err
	}

	r.metrics.request(ProtocolHolepunch, resultOK)
	logger.Debug("打洞协调完成", "target", target.ShortString(), "to", to.String(), "rtt", since(start))

	return &HolepunchResult{
		From:        res.From,
		To:          res.To,
		Payload:     hp.Payload,
		PeerAddress: hp.PeerAddress,
	}, nil
}

// ============================================================================
//                              响应方 / 中继
// ============================================================================

// OnPeerHolepunch 处理入站打洞消息
//
// 打洞没有第二跳：握手阶段已经确定了至多一跳中继。
func (r *Router) OnPeerHolepunch(ctx context.Context, req interfaces.InboundRequest) {
	target, reg := r.lookup(req)

	hp, err := routing.DecodeHolepunch(req.Value())
	if err != nil {
		r.dropped(ProtocolHolepunch, dropMalformed, target, req, "error", err)
		return
	}

	if !r.gate.Allow(ctx, ProtocolHolepunch, hp.Mode, req.From()) {
		r.dropped(ProtocolHolepunch, dropGated, target, req, "mode", hp.Mode.String())
		return
	}

	action := Transition(ProtocolHolepunch, reg.HandlesHolepunch(), hp.Mode)
	r.metrics.message(ProtocolHolepunch, hp.Mode.String(), action)

	switch action {
	case ActionForward:
		r.forwardHolepunch(req, target, reg, hp)
	case ActionServerRelayToSender:
		r.serveHolepunch(ctx, req, target, reg, hp)
	case ActionReplyToPeer:
		r.replyHolepunchToPeer(req, target, hp)
	default:
		r.dropped(ProtocolHolepunch, dropUnexpectedMode, target, req,
			"mode", hp.Mode.String(), "server", reg.HandlesHolepunch())
	}
}

// forwardHolepunch 收到 FROM_CLIENT，转发给显式地址或记住的中继
func (r *Router) forwardHolepunch(req interfaces.InboundRequest, target types.Target, reg Registration, hp *routing.Holepunch) {
	next := resolveNext(hp.PeerAddress, reg)
	if next == nil {
		r.dropped(ProtocolHolepunch, dropNoRoute, target, req)
		return
	}

	from := req.From()
	err := req.Relay((&routing.Holepunch{
		Mode:        routing.ModeFromRelay,
		ID:          hp.ID,
		Payload:     hp.Payload,
		PeerAddress: &from,
	}).Encode(), *next, interfaces.SendOptions{})
	if err != nil {
		r.dropped(ProtocolHolepunch, dropSendFailed, target, req, "error", err)
	}
}

// serveHolepunch 本节点是目的服务端，收到 FROM_RELAY
func (r *Router) serveHolepunch(ctx context.Context, req interfaces.InboundRequest, target types.Target, reg Registration, hp *routing.Holepunch) {
	if hp.PeerAddress == nil {
		r.dropped(ProtocolHolepunch, dropMissingPeer, target, req)
		return
	}

	out := callHolepunch(ctx, reg.OnHolepunch, interfaces.HolepunchPayload{
		ID:          hp.ID,
		Payload:     hp.Payload,
		PeerAddress: hp.PeerAddress,
	}, req)
	if out.err != nil {
		r.dropped(ProtocolHolepunch, dropCallbackFailed, target, req, "error", out.err)
		return
	}
	if !out.usable() {
		r.dropped(ProtocolHolepunch, dropEmptyReply, target, req)
		return
	}

	// 服务端回复的 id 对中继链没有意义，置 0
	err := req.Relay((&routing.Holepunch{
		Mode:        routing.ModeFromServer,
		ID:          0,
		Payload:     out.reply.Payload,
		PeerAddress: hp.PeerAddress,
	}).Encode(), req.From(), interfaces.SendOptions{Socket: out.reply.Socket})
	if err != nil {
		r.dropped(ProtocolHolepunch, dropSendFailed, target, req, "error", err)
	}
}

// replyHolepunchToPeer 收到 FROM_SERVER，终端回复客户端
//
// 缺少 peerAddress 时丢弃。回复没有明确的客户端可投递，若按默认目的地
// 发回直接发送方（服务端），只会把 REPLY 送到并未等待它的节点。
func (r *Router) replyHolepunchToPeer(req interfaces.InboundRequest, target types.Target, hp *routing.Holepunch) {
	if hp.PeerAddress == nil {
		r.dropped(ProtocolHolepunch, dropMissingPeer, target, req)
		return
	}

	from := req.From()
	err := req.Reply((&routing.Holepunch{
		Mode:        routing.ModeReply,
		ID:          hp.ID,
		Payload:     hp.Payload,
		PeerAddress: &from,
	}).Encode(), interfaces.SendOptions{To: hp.PeerAddress})
	if err != nil {
		r.dropped(ProtocolHolepunch, dropSendFailed, target, req, "error", err)
	}
}
