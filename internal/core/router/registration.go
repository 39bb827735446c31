package router

import (
	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// Kind 登记类型
type Kind uint8

const (
	// KindForward 转发登记：只记住“该目标经由中继 X 路由”，可被淘汰
	KindForward Kind = iota
	// KindServer 服务端登记：本节点就是目标，永不被淘汰
	KindServer
)

// String 返回登记类型名称
func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Registration 目标的登记信息（带标签的变体）
//
// 一个目标至多一条登记。Relay 为 nil 表示没有已知中继。
type Registration struct {
	Kind  Kind
	Relay *types.Endpoint

	// 仅 KindServer 使用
	OnHandshake interfaces.HandshakeHandler
	OnHolepunch interfaces.HolepunchHandler
}

// ServerRegistration 创建服务端登记
//
// relay 是服务端期望客户端使用的中继，可以为 nil。
func ServerRegistration(onHandshake interfaces.HandshakeHandler, onHolepunch interfaces.HolepunchHandler, relay *types.Endpoint) Registration {
	return Registration{
		Kind:        KindServer,
		Relay:       relay,
		OnHandshake: onHandshake,
		OnHolepunch: onHolepunch,
	}
}

// ForwardRegistration 创建转发登记
func ForwardRegistration(relay *types.Endpoint) Registration {
	return Registration{Kind: KindForward, Relay: relay}
}

// IsServer 是否为服务端登记
func (r Registration) IsServer() bool {
	return r.Kind == KindServer
}

// HandlesHandshake 本节点是否作为握手的目的服务端
func (r Registration) HandlesHandshake() bool {
	return r.Kind == KindServer && r.OnHandshake != nil
}

// HandlesHolepunch 本节点是否作为打洞的目的服务端
func (r Registration) HandlesHolepunch() bool {
	return r.Kind == KindServer && r.OnHolepunch != nil
}
