package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	natrouter "github.com/dep2p/go-natrouter"
	"github.com/dep2p/go-natrouter/internal/core/router/memnet"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// TestNode 内存网络上的路由节点
type TestNode struct {
	*natrouter.Node

	// Transport 节点的内存传输
	Transport *memnet.Node
}

// Addr 返回节点地址
func (n *TestNode) Addr() types.Endpoint {
	return n.Transport.Addr()
}

// TestNodeBuilder 测试节点构建器
//
// 使用 Builder 模式简化测试节点的创建和配置。
//
// 示例:
//
//	relay := testutil.NewTestNode(t, network, testutil.RelayAddr).
//		WithPreset(natrouter.PresetNameMinimal).
//		Start()
type TestNodeBuilder struct {
	t       *testing.T
	network *memnet.Network
	addr    types.Endpoint
	preset  string
	opts    []natrouter.Option
}

// NewTestNode 创建测试节点构建器
//
// 默认配置:
//   - preset: "minimal"
func NewTestNode(t *testing.T, network *memnet.Network, addr types.Endpoint) *TestNodeBuilder {
	t.Helper()
	return &TestNodeBuilder{
		t:       t,
		network: network,
		addr:    addr,
		preset:  natrouter.PresetNameMinimal,
	}
}

// WithPreset 设置预设配置
func (b *TestNodeBuilder) WithPreset(preset string) *TestNodeBuilder {
	b.t.Helper()
	b.preset = preset
	return b
}

// WithOptions 追加节点选项
func (b *TestNodeBuilder) WithOptions(opts ...natrouter.Option) *TestNodeBuilder {
	b.t.Helper()
	b.opts = append(b.opts, opts...)
	return b
}

// Build 创建但不启动节点
func (b *TestNodeBuilder) Build() *TestNode {
	b.t.Helper()

	transport, err := b.network.Listen(b.addr)
	require.NoError(b.t, err, "监听 %s 失败", b.addr)

	opts := append([]natrouter.Option{natrouter.WithPreset(b.preset)}, b.opts...)
	node, err := natrouter.New(transport, opts...)
	require.NoError(b.t, err, "创建节点失败")

	b.t.Cleanup(func() {
		_ = node.Close()
		_ = transport.Close()
	})
	return &TestNode{Node: node, Transport: transport}
}

// Start 创建并启动节点
func (b *TestNodeBuilder) Start() *TestNode {
	b.t.Helper()

	n := b.Build()
	require.NoError(b.t, n.Start(context.Background()), "启动节点失败")
	return n
}

// NewNetwork 创建测试结束时自动关闭的内存网络
func NewNetwork(t *testing.T, opts ...memnet.Option) *memnet.Network {
	t.Helper()
	n := memnet.NewNetwork(opts...)
	t.Cleanup(func() { _ = n.Close() })
	return n
}
