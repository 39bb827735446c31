package memnet

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dep2p/go-natrouter/pkg/types"
)

// DefaultTimeout 默认请求超时
const DefaultTimeout = 2 * time.Second

// Option 网络选项
type Option func(*Network)

// WithTimeout 设置请求超时（0 表示只受 ctx 约束）
func WithTimeout(d time.Duration) Option {
	return func(n *Network) {
		n.timeout = d
	}
}

// WithFilter 设置投递过滤器
func WithFilter(f Filter) Option {
	return func(n *Network) {
		n.filter = f
	}
}

// WithLatency 设置每个数据包的投递延迟
func WithLatency(d time.Duration) Option {
	return func(n *Network) {
		n.latency = d
	}
}

// Network 内存模拟网络
type Network struct {
	timeout time.Duration
	latency time.Duration
	filter  Filter

	nextTID atomic.Uint64

	mu     sync.RWMutex
	nodes  map[types.Endpoint]*Node
	closed bool

	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// NewNetwork 创建网络
func NewNetwork(opts ...Option) *Network {
	ctx, cancel := context.WithCancel(context.Background())
	n := &Network{
		timeout: DefaultTimeout,
		nodes:   make(map[types.Endpoint]*Node),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Listen 在 addr 上创建节点
func (n *Network) Listen(addr types.Endpoint) (*Node, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, ErrClosed
	}
	if _, ok := n.nodes[addr]; ok {
		return nil, ErrAddressInUse
	}

	node := newNode(n, addr)
	n.nodes[addr] = node
	return node, nil
}

// Node 返回监听 addr 的节点
func (n *Network) Node(addr types.Endpoint) (*Node, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	node, ok := n.nodes[addr]
	return node, ok
}

// Addrs 返回所有节点地址（按字符串排序）
func (n *Network) Addrs() []types.Endpoint {
	n.mu.RLock()
	addrs := make([]types.Endpoint, 0, len(n.nodes))
	for addr := range n.nodes {
		addrs = append(addrs, addr)
	}
	n.mu.RUnlock()

	slices.SortFunc(addrs, func(a, b types.Endpoint) int {
		return strings.Compare(a.String(), b.String())
	})
	return addrs
}

// Stats 返回已投递与已丢弃的数据包数
func (n *Network) Stats() (delivered, dropped uint64) {
	return n.delivered.Load(), n.dropped.Load()
}

// Close 关闭网络与所有节点，并等待在途数据包处理完毕
func (n *Network) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	nodes := make([]*Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		nodes = append(nodes, node)
	}
	n.mu.Unlock()

	for _, node := range nodes {
		_ = node.Close()
	}
	n.cancel()
	n.inflight.Wait()
	return nil
}

func (n *Network) allocTID() uint64 {
	return n.nextTID.Add(1)
}

func (n *Network) detach(addr types.Endpoint, node *Node) {
	n.mu.Lock()
	if n.nodes[addr] == node {
		delete(n.nodes, addr)
	}
	n.mu.Unlock()
}

// closerNodes 路由提示：除回复方与接收方以外的节点
func (n *Network) closerNodes(exclude ...types.Endpoint) []types.Endpoint {
	var out []types.Endpoint
	for _, addr := range n.Addrs() {
		if !slices.Contains(exclude, addr) {
			out = append(out, addr)
		}
	}
	return out
}

// send 异步投递数据包，语义与 UDP 相同
func (n *Network) send(p Packet) {
	if n.filter != nil && !n.filter(p) {
		n.dropped.Add(1)
		logger.Debug("数据包被过滤", "kind", p.Kind.String(), "from", p.From.String(), "to", p.To.String())
		return
	}

	n.mu.RLock()
	dst, ok := n.nodes[p.To]
	closed := n.closed
	if ok && !closed {
		n.inflight.Add(1)
	}
	n.mu.RUnlock()

	if !ok || closed {
		n.dropped.Add(1)
		logger.Debug("目的地不可达", "kind", p.Kind.String(), "to", p.To.String())
		return
	}

	go func() {
		defer n.inflight.Done()
		if n.latency > 0 {
			select {
			case <-time.After(n.latency):
			case <-n.ctx.Done():
				n.dropped.Add(1)
				return
			}
		}
		n.delivered.Add(1)
		dst.receive(p)
	}()
}
