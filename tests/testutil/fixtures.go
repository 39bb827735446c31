// Package testutil 提供测试辅助工具
package testutil

import (
	"bytes"

	"github.com/dep2p/go-natrouter/pkg/types"
)

// 测试数据固件
//
// 文档保留地址段（RFC 5737），确保测试一致性。
var (
	// ClientAddr 客户端（位于 NAT 之后）
	ClientAddr = types.NewEndpoint("198.51.100.10", 40001)

	// RelayAddr 第一跳中继
	RelayAddr = types.NewEndpoint("203.0.113.1", 49737)

	// Relay2Addr 第二跳中继
	Relay2Addr = types.NewEndpoint("203.0.113.2", 49737)

	// ServerAddr 服务端（位于 NAT 之后）
	ServerAddr = types.NewEndpoint("192.0.2.50", 50505)
)

// TestTarget 返回由单一字节填充的目标
func TestTarget(b byte) types.Target {
	t, _ := types.TargetFromBytes(bytes.Repeat([]byte{b}, types.TargetLen))
	return t
}
