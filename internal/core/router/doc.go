// Package router 实现 NAT 穿透的中继路由核心
//
// 客户端与服务端无法直连时，通过 0、1 或 2 跳中继转发握手（Handshake）
// 与打洞（Holepunch）消息，最终建立安全会话并协调 UDP 同时打洞。
//
// # 角色
//
// 每条入站消息根据 target 在状态注册表（Registry）中的登记决定本节点角色：
//   - 服务端登记（Server）：本节点是目的服务端，调用登记的回调
//   - 转发登记（Forward）或无登记：本节点是中继，按 mode 转发或回复
//
// 没有跨消息的会话状态，所有上下文都在消息字段与注册表中。
//
// # 握手路由
//
//	客户端 ──FROM_CLIENT──▶ 中继1 ──FROM_RELAY──▶ 中继2 ──FROM_SECOND_RELAY──▶ 服务端
//	客户端 ◀──REPLY──────── 中继1 ◀──────────────FROM_SERVER──────────────────── 服务端
//
// # 打洞路由
//
//	客户端 ──FROM_CLIENT──▶ 中继 ──FROM_RELAY──▶ 服务端
//	客户端 ◀──REPLY──────── 中继 ◀──FROM_SERVER── 服务端
//
// # 错误处理
//
// 无法解码、缺少字段、无路由、回调失败的消息一律静默丢弃，
// 不产生任何回复，避免成为放大攻击的工具。只有发起方
// （PeerHandshake / PeerHolepunch）会看到 ErrBadReply。
//
// # 扩展点
//
// 每条入站消息在分发前恰好经过一次 Gate，限流等策略可以挂在这里。
package router

import (
	"github.com/dep2p/go-natrouter/pkg/lib/log"
)

var logger = log.Logger("core/router")
