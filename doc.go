// Package natrouter 提供 NAT 穿透的握手与打洞中继路由
//
// 客户端与服务端都位于 NAT 之后、无法直连时，由公网中继节点转发
// Noise 握手消息与 UDP 打洞协调消息。一次握手最多经过两跳中继，
// 打洞最多一跳。
//
// # 快速开始
//
//	node, err := natrouter.Start(ctx, transport,
//	    natrouter.WithPreset(natrouter.PresetNameServer),
//	)
//	if err != nil {
//	    return err
//	}
//	defer node.Close()
//
//	// 作为服务端接收握手
//	node.Set(myTarget, natrouter.ServerRegistration(onHandshake, onHolepunch, nil))
//
//	// 作为客户端经中继发起握手
//	res, err := node.PeerHandshake(ctx, serverTarget, natrouter.HandshakeRequest{Noise: msg1}, relayAddr)
//
// # 传输层
//
// 本包不绑定具体的 UDP 实现，调用方提供 Transport（请求/回复/中继三种原语）。
// 测试与示例可使用 internal/core/router/memnet 内存网络。
//
// # 错误
//
// 发起方收到无效或伪造的回复时返回 ErrBadReply；入站消息出错一律静默丢弃。
package natrouter
