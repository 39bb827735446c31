package router

import (
	"github.com/dep2p/go-natrouter/pkg/lib/proto/routing"
)

// ============================================================================
//                              协议与动作
// ============================================================================

// Protocol 路由协议
type Protocol uint8

const (
	// ProtocolHandshake 握手
	ProtocolHandshake Protocol = iota
	// ProtocolHolepunch 打洞
	ProtocolHolepunch
)

// String 返回协议名称
func (p Protocol) String() string {
	switch p {
	case ProtocolHandshake:
		return "handshake"
	case ProtocolHolepunch:
		return "holepunch"
	default:
		return "unknown"
	}
}

// Action 对入站消息采取的动作
type Action uint8

const (
	// ActionDrop 静默丢弃
	ActionDrop Action = iota
	// ActionServerReply 服务端直接回复请求方（REPLY，终端）
	ActionServerReply
	// ActionServerRelayToSender 服务端把 FROM_SERVER 中继回直接发送方
	ActionServerRelayToSender
	// ActionServerRelayToRelay 服务端把 FROM_SERVER 中继到消息记录的第一跳中继
	ActionServerRelayToRelay
	// ActionForward 中继把客户端请求转发给下一跳（FROM_RELAY）
	ActionForward
	// ActionForwardSecondHop 中继把 FROM_RELAY 转发为 FROM_SECOND_RELAY
	ActionForwardSecondHop
	// ActionReplyToPeer 中继把 FROM_SERVER 作为 REPLY 直接送达客户端
	ActionReplyToPeer
)

// String 返回动作名称
func (a Action) String() string {
	switch a {
	case ActionDrop:
		return "drop"
	case ActionServerReply:
		return "server_reply"
	case ActionServerRelayToSender:
		return "server_relay_to_sender"
	case ActionServerRelayToRelay:
		return "server_relay_to_relay"
	case ActionForward:
		return "forward"
	case ActionForwardSecondHop:
		return "forward_second_hop"
	case ActionReplyToPeer:
		return "reply_to_peer"
	default:
		return "unknown"
	}
}

// InvokesServer 该动作是否需要调用服务端回调
func (a Action) InvokesServer() bool {
	switch a {
	case ActionServerReply, ActionServerRelayToSender, ActionServerRelayToRelay:
		return true
	default:
		return false
	}
}

// ============================================================================
//                              状态转移表
// ============================================================================

type transitionKey struct {
	protocol Protocol
	isServer bool
	mode     routing.Mode
}

// transitions (协议, 是否服务端, 模式) -> 动作，未列出的组合一律丢弃
//
// 打洞的 FROM_CLIENT / FROM_SERVER 与角色无关，两种角色各列一次。
var transitions = map[transitionKey]Action{
	{ProtocolHandshake, true, routing.ModeFromClient}:      ActionServerReply,
	{ProtocolHandshake, true, routing.ModeFromRelay}:       ActionServerRelayToSender,
	{ProtocolHandshake, true, routing.ModeFromSecondRelay}: ActionServerRelayToRelay,
	{ProtocolHandshake, false, routing.ModeFromClient}:     ActionForward,
	{ProtocolHandshake, false, routing.ModeFromRelay}:      ActionForwardSecondHop,
	{ProtocolHandshake, false, routing.ModeFromServer}:     ActionReplyToPeer,

	{ProtocolHolepunch, true, routing.ModeFromClient}:  ActionForward,
	{ProtocolHolepunch, false, routing.ModeFromClient}: ActionForward,
	{ProtocolHolepunch, true, routing.ModeFromRelay}:   ActionServerRelayToSender,
	{ProtocolHolepunch, true, routing.ModeFromServer}:  ActionReplyToPeer,
	{ProtocolHolepunch, false, routing.ModeFromServer}: ActionReplyToPeer,
}

// Transition 查询状态转移表
func Transition(protocol Protocol, isServer bool, mode routing.Mode) Action {
	return transitions[transitionKey{protocol: protocol, isServer: isServer, mode: mode}]
}
