package natrouter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-natrouter/config"
	"github.com/dep2p/go-natrouter/internal/core/router"
)

// stopTimeout Close 等待停止的最长时间
const stopTimeout = 15 * time.Second

// Node 路由节点
//
// 嵌入 *router.Router，直接提供 Set / Get / Delete / PeerHandshake / PeerHolepunch。
// Start 之后才会处理入站消息。
type Node struct {
	*router.Router

	app    *fx.App
	config *config.Config

	mu      sync.Mutex
	started bool
	closed  bool
}

// ════════════════════════════════════════════════════════════════════════════
//                              构造函数
// ════════════════════════════════════════════════════════════════════════════

// New 创建路由节点
//
// 创建但不启动，需要调用 Start() 开始处理入站消息。
// 发起方操作（PeerHandshake / PeerHolepunch）不需要启动。
//
// 示例：
//
//	node, err := natrouter.New(transport,
//	    natrouter.WithPreset(natrouter.PresetNameServer),
//	    natrouter.WithRequestTimeout(5*time.Second),
//	)
func New(transport Transport, opts ...Option) (*Node, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}

	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	cfg, err := o.toConfig()
	if err != nil {
		return nil, err
	}

	node := &Node{config: cfg}
	node.app, err = buildFxApp(cfg, transport, o, node)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Start 快捷启动函数
//
// 等价于 New() + Start()。
func Start(ctx context.Context, transport Transport, opts ...Option) (*Node, error) {
	node, err := New(transport, opts...)
	if err != nil {
		return nil, err
	}

	if err := node.Start(ctx); err != nil {
		return nil, fmt.Errorf("start node: %w", err)
	}
	return node, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期
// ════════════════════════════════════════════════════════════════════════════

// Start 启动节点，在传输层上注册入站处理函数
func (n *Node) Start(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return ErrNodeClosed
	}
	if n.started {
		return ErrAlreadyStarted
	}
	if err := n.app.Start(ctx); err != nil {
		return err
	}
	n.started = true
	return nil
}

// Stop 停止节点，移除入站处理函数
func (n *Node) Stop(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stopLocked(ctx)
}

func (n *Node) stopLocked(ctx context.Context) error {
	if !n.started {
		return nil
	}
	n.started = false
	return n.app.Stop(ctx)
}

// Close 停止并关闭节点，之后不能再启动
func (n *Node) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return n.stopLocked(ctx)
}

// IsRunning 节点是否已启动
func (n *Node) IsRunning() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.started
}

// Config 返回节点生效配置的副本
func (n *Node) Config() *config.Config {
	return config.CloneConfig(n.config)
}
