package natrouter

import (
	"github.com/dep2p/go-natrouter/internal/core/router"
	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              版本信息
// ════════════════════════════════════════════════════════════════════════════

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "natrouter " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

type (
	// Target 路由目标标识（32 字节公钥或其哈希）
	Target = types.Target

	// Endpoint 网络端点
	Endpoint = types.Endpoint

	// Registration 目标登记
	Registration = router.Registration

	// HandshakeRequest 发起握手的参数
	HandshakeRequest = router.HandshakeRequest

	// HandshakeResult 握手结果
	HandshakeResult = router.HandshakeResult

	// HolepunchRequest 发起打洞的参数
	HolepunchRequest = router.HolepunchRequest

	// HolepunchResult 打洞结果
	HolepunchResult = router.HolepunchResult

	// Gate 入站准入检查
	Gate = router.Gate

	// GateFunc 准入检查函数适配器
	GateFunc = router.GateFunc

	// Protocol 路由协议
	Protocol = router.Protocol
)

type (
	// Transport 请求/回复/中继传输
	Transport = interfaces.Transport

	// InboundRequest 入站请求
	InboundRequest = interfaces.InboundRequest

	// SendOptions 出站选项
	SendOptions = interfaces.SendOptions

	// HandshakeHandler 服务端握手回调
	HandshakeHandler = interfaces.HandshakeHandler

	// HandshakePayload 交给握手回调的负载
	HandshakePayload = interfaces.HandshakePayload

	// HandshakeReply 握手回调的回复
	HandshakeReply = interfaces.HandshakeReply

	// HolepunchHandler 服务端打洞回调
	HolepunchHandler = interfaces.HolepunchHandler

	// HolepunchPayload 交给打洞回调的负载
	HolepunchPayload = interfaces.HolepunchPayload

	// HolepunchReply 打洞回调的回复
	HolepunchReply = interfaces.HolepunchReply
)

// 协议常量
const (
	ProtocolHandshake = router.ProtocolHandshake
	ProtocolHolepunch = router.ProtocolHolepunch
)

// ════════════════════════════════════════════════════════════════════════════
//                              构造函数
// ════════════════════════════════════════════════════════════════════════════

// ServerRegistration 创建服务端登记
//
// 本节点即目标，登记永不被淘汰。relay 可以为 nil。
func ServerRegistration(onHandshake HandshakeHandler, onHolepunch HolepunchHandler, relay *Endpoint) Registration {
	return router.ServerRegistration(onHandshake, onHolepunch, relay)
}

// ForwardRegistration 创建转发登记
//
// 记住目标经由 relay 路由，容量满时可能被淘汰。
func ForwardRegistration(relay *Endpoint) Registration {
	return router.ForwardRegistration(relay)
}

// ParseTarget 从十六进制或 Base58 字符串解析目标
func ParseTarget(s string) (Target, error) {
	return types.ParseTarget(s)
}

// ParseEndpoint 从 "host:port" 解析端点
func ParseEndpoint(s string) (Endpoint, error) {
	return types.ParseEndpoint(s)
}
