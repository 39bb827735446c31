package memnet

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

var (
	addrA = types.NewEndpoint("198.51.100.10", 40001)
	addrB = types.NewEndpoint("203.0.113.1", 49737)
	addrC = types.NewEndpoint("192.0.2.50", 50505)
)

func testTarget() types.Target {
	t, _ := types.TargetFromBytes(bytes.Repeat([]byte{0xAB}, types.TargetLen))
	return t
}

func newNetwork(t *testing.T, opts ...Option) *Network {
	t.Helper()
	n := NewNetwork(opts...)
	t.Cleanup(func() { _ = n.Close() })
	return n
}

func listen(t *testing.T, n *Network, addr types.Endpoint) *Node {
	t.Helper()
	node, err := n.Listen(addr)
	require.NoError(t, err)
	return node
}

func echo(node *Node) {
	node.SetRequestHandler(interfaces.CommandPeerHandshake, func(_ context.Context, req interfaces.InboundRequest) {
		_ = req.Reply(append([]byte("echo:"), req.Value()...), interfaces.SendOptions{})
	})
}

func TestRequestReply(t *testing.T) {
	n := newNetwork(t)
	a := listen(t, n, addrA)
	b := listen(t, n, addrB)
	echo(b)

	res, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), []byte("hi"), addrB, interfaces.SendOptions{})
	require.NoError(t, err)

	assert.Equal(t, []byte("echo:hi"), res.Value)
	assert.Equal(t, addrB, res.From)
	assert.Equal(t, addrA, res.To, "观测到的本地地址")
	assert.Nil(t, res.CloserNodes)
}

func TestInboundRequestFields(t *testing.T) {
	n := newNetwork(t)
	a := listen(t, n, addrA)
	b := listen(t, n, addrB)

	got := make(chan interfaces.InboundRequest, 1)
	b.SetRequestHandler(interfaces.CommandPeerHolepunch, func(_ context.Context, req interfaces.InboundRequest) {
		got <- req
		_ = req.Reply(nil, interfaces.SendOptions{})
	})

	_, err := a.Request(context.Background(), interfaces.CommandPeerHolepunch, testTarget(), []byte("v"), addrB, interfaces.SendOptions{})
	require.NoError(t, err)

	req := <-got
	assert.Equal(t, interfaces.CommandPeerHolepunch, req.Command())
	target, ok := req.Target()
	assert.True(t, ok)
	assert.Equal(t, testTarget(), target)
	assert.Equal(t, []byte("v"), req.Value())
	assert.Equal(t, addrA, req.From())
	assert.Equal(t, addrB, req.To())
}

func TestRelayKeepsTID(t *testing.T) {
	n := newNetwork(t)
	a := listen(t, n, addrA)
	b := listen(t, n, addrB)
	c := listen(t, n, addrC)

	// B 转发给 C，C 直接回复 A
	b.SetRequestHandler(interfaces.CommandPeerHandshake, func(_ context.Context, req interfaces.InboundRequest) {
		_ = req.Relay(append([]byte("via-b:"), req.Value()...), addrC, interfaces.SendOptions{})
	})
	c.SetRequestHandler(interfaces.CommandPeerHandshake, func(_ context.Context, req interfaces.InboundRequest) {
		assert.Equal(t, addrB, req.From(), "From 为直接发送方")
		to := addrA
		_ = req.Reply(req.Value(), interfaces.SendOptions{To: &to})
	})

	res, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), []byte("x"), addrB, interfaces.SendOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte("via-b:x"), res.Value)
	assert.Equal(t, addrC, res.From, "From 为实际回复方")
}

func TestCloserNodes(t *testing.T) {
	n := newNetwork(t)
	a := listen(t, n, addrA)
	b := listen(t, n, addrB)
	listen(t, n, addrC)

	b.SetRequestHandler(interfaces.CommandPeerHandshake, func(_ context.Context, req interfaces.InboundRequest) {
		_ = req.Reply(nil, interfaces.SendOptions{CloserNodes: true})
	})

	res, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), nil, addrB, interfaces.SendOptions{})
	require.NoError(t, err)
	assert.Nil(t, res.Value)
	assert.Equal(t, []types.Endpoint{addrC}, res.CloserNodes)
}

func TestTimeout(t *testing.T) {
	t.Run("无处理函数", func(t *testing.T) {
		n := newNetwork(t, WithTimeout(30*time.Millisecond))
		a := listen(t, n, addrA)
		listen(t, n, addrB)

		_, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), nil, addrB, interfaces.SendOptions{})
		assert.ErrorIs(t, err, ErrTimeout)
	})

	t.Run("目的地不存在", func(t *testing.T) {
		n := newNetwork(t, WithTimeout(30*time.Millisecond))
		a := listen(t, n, addrA)

		_, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), nil, addrC, interfaces.SendOptions{})
		assert.ErrorIs(t, err, ErrTimeout)

		_, dropped := n.Stats()
		assert.Equal(t, uint64(1), dropped)
	})

	t.Run("ctx 取消", func(t *testing.T) {
		n := newNetwork(t, WithTimeout(0))
		a := listen(t, n, addrA)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := a.Request(ctx, interfaces.CommandPeerHandshake, testTarget(), nil, addrB, interfaces.SendOptions{})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestFilter(t *testing.T) {
	var seen atomic.Int32
	n := newNetwork(t,
		WithTimeout(30*time.Millisecond),
		WithFilter(func(p Packet) bool {
			seen.Add(1)
			return p.Kind == KindRequest
		}),
	)
	a := listen(t, n, addrA)
	b := listen(t, n, addrB)
	echo(b)

	_, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), nil, addrB, interfaces.SendOptions{})
	assert.ErrorIs(t, err, ErrTimeout, "回复被过滤")
	assert.Equal(t, int32(2), seen.Load())
}

func TestSocketVisibleToFilter(t *testing.T) {
	sockets := make(chan interfaces.Socket, 1)
	n := newNetwork(t, WithFilter(func(p Packet) bool {
		if p.Kind == KindRequest {
			sockets <- p.Socket
		}
		return true
	}))
	a := listen(t, n, addrA)
	b := listen(t, n, addrB)
	echo(b)

	_, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), nil, addrB, interfaces.SendOptions{Socket: "s1"})
	require.NoError(t, err)
	assert.Equal(t, "s1", <-sockets)
}

func TestLatency(t *testing.T) {
	n := newNetwork(t, WithLatency(10*time.Millisecond))
	a := listen(t, n, addrA)
	b := listen(t, n, addrB)
	echo(b)

	start := time.Now()
	_, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), nil, addrB, interfaces.SendOptions{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond, "请求与回复各一次延迟")
}

func TestListen(t *testing.T) {
	n := newNetwork(t)
	listen(t, n, addrA)

	_, err := n.Listen(addrA)
	assert.ErrorIs(t, err, ErrAddressInUse)

	node, ok := n.Node(addrA)
	require.True(t, ok)
	assert.Equal(t, addrA, node.Addr())
	assert.Equal(t, []types.Endpoint{addrA}, n.Addrs())
}

func TestClose(t *testing.T) {
	t.Run("挂起的请求返回 ErrClosed", func(t *testing.T) {
		n := newNetwork(t, WithTimeout(0))
		a := listen(t, n, addrA)
		listen(t, n, addrB)

		errCh := make(chan error, 1)
		go func() {
			_, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), nil, addrB, interfaces.SendOptions{})
			errCh <- err
		}()

		time.Sleep(20 * time.Millisecond)
		require.NoError(t, a.Close())

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, ErrClosed)
		case <-time.After(time.Second):
			t.Fatal("请求未返回")
		}
	})

	t.Run("关闭后释放地址", func(t *testing.T) {
		n := newNetwork(t)
		a := listen(t, n, addrA)
		require.NoError(t, a.Close())
		require.NoError(t, a.Close())

		_, err := a.Request(context.Background(), interfaces.CommandPeerHandshake, testTarget(), nil, addrB, interfaces.SendOptions{})
		assert.ErrorIs(t, err, ErrClosed)

		_, err = n.Listen(addrA)
		assert.NoError(t, err)
	})

	t.Run("关闭网络", func(t *testing.T) {
		n := NewNetwork()
		listen(t, n, addrA)
		require.NoError(t, n.Close())
		require.NoError(t, n.Close())

		_, err := n.Listen(addrB)
		assert.ErrorIs(t, err, ErrClosed)
		assert.Empty(t, n.Addrs())
	})
}
