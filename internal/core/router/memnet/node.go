package memnet

import (
	"context"
	"sync"
	"time"

	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// Node 网络中的一个节点，实现 interfaces.Transport
type Node struct {
	network *Network
	addr    types.Endpoint

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	handlers map[interfaces.Command]interfaces.RequestHandler
	pending  map[uint64]chan *interfaces.Response
	closed   bool
}

var _ interfaces.Transport = (*Node)(nil)

func newNode(n *Network, addr types.Endpoint) *Node {
	ctx, cancel := context.WithCancel(n.ctx)
	return &Node{
		network:  n,
		addr:     addr,
		ctx:      ctx,
		cancel:   cancel,
		handlers: make(map[interfaces.Command]interfaces.RequestHandler),
		pending:  make(map[uint64]chan *interfaces.Response),
	}
}

// Addr 返回节点地址
func (n *Node) Addr() types.Endpoint {
	return n.addr
}

// Request 发送请求并等待恰好一个回复
func (n *Node) Request(ctx context.Context, cmd interfaces.Command, target types.Target, value []byte, to types.Endpoint, opts interfaces.SendOptions) (*interfaces.Response, error) {
	tid := n.network.allocTID()
	ch := make(chan *interfaces.Response, 1)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil, ErrClosed
	}
	n.pending[tid] = ch
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		delete(n.pending, tid)
		n.mu.Unlock()
	}()

	n.network.send(Packet{
		Kind:    KindRequest,
		TID:     tid,
		Command: cmd,
		Target:  &target,
		Value:   value,
		From:    n.addr,
		To:      to,
		Socket:  opts.Socket,
	})

	var timeout <-chan time.Time
	if d := n.network.timeout; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case res, ok := <-ch:
		if !ok {
			return nil, ErrClosed
		}
		return res, nil
	case <-timeout:
		return nil, ErrTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SetRequestHandler 设置命令的入站处理函数
func (n *Node) SetRequestHandler(cmd interfaces.Command, handler interfaces.RequestHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[cmd] = handler
}

// RemoveRequestHandler 移除命令的入站处理函数
func (n *Node) RemoveRequestHandler(cmd interfaces.Command) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.handlers, cmd)
}

// Close 关闭节点，挂起的请求返回 ErrClosed
func (n *Node) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	for tid, ch := range n.pending {
		close(ch)
		delete(n.pending, tid)
	}
	n.mu.Unlock()

	n.cancel()
	n.network.detach(n.addr, n)
	return nil
}

// receive 处理投递到本节点的数据包
func (n *Node) receive(p Packet) {
	switch p.Kind {
	case KindResponse:
		n.resolve(p)
	case KindRequest:
		n.mu.Lock()
		handler, ok := n.handlers[p.Command]
		closed := n.closed
		n.mu.Unlock()

		if closed {
			return
		}
		if !ok {
			logger.Debug("没有处理函数", "command", p.Command.String(), "addr", n.addr.String())
			return
		}
		handler(n.ctx, &request{node: n, packet: p})
	}
}

// resolve 按 tid 唤醒挂起的请求，未知 tid 直接丢弃
func (n *Node) resolve(p Packet) {
	n.mu.Lock()
	ch, ok := n.pending[p.TID]
	if ok {
		delete(n.pending, p.TID)
	}
	n.mu.Unlock()

	if !ok {
		logger.Debug("未知事务号的回复", "tid", p.TID, "from", p.From.String())
		return
	}

	res := &interfaces.Response{
		From:  p.From,
		To:    p.To,
		Value: p.Value,
	}
	if p.CloserNodes {
		res.CloserNodes = n.network.closerNodes(p.From, n.addr)
	}
	ch <- res
}

func (n *Node) isClosed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}
