package routing_test

import (
	"context"
	"sync"
	"testing"

	natrouter "github.com/dep2p/go-natrouter"
	"github.com/dep2p/go-natrouter/tests/testutil"
)

// recorder 记录服务端回调收到的负载
type recorder struct {
	mu         sync.Mutex
	handshakes []natrouter.HandshakePayload
	holepunch  []natrouter.HolepunchPayload
}

func (r *recorder) onHandshake(reply []byte) natrouter.HandshakeHandler {
	return func(_ context.Context, p natrouter.HandshakePayload, _ natrouter.InboundRequest) (*natrouter.HandshakeReply, error) {
		r.mu.Lock()
		r.handshakes = append(r.handshakes, p)
		r.mu.Unlock()
		return &natrouter.HandshakeReply{Noise: reply}, nil
	}
}

func (r *recorder) onHolepunch(reply []byte, socket any) natrouter.HolepunchHandler {
	return func(_ context.Context, p natrouter.HolepunchPayload, _ natrouter.InboundRequest) (*natrouter.HolepunchReply, error) {
		r.mu.Lock()
		r.holepunch = append(r.holepunch, p)
		r.mu.Unlock()
		return &natrouter.HolepunchReply{Payload: reply, Socket: socket}, nil
	}
}

func (r *recorder) handshakeCalls() []natrouter.HandshakePayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]natrouter.HandshakePayload(nil), r.handshakes...)
}

func (r *recorder) holepunchCalls() []natrouter.HolepunchPayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]natrouter.HolepunchPayload(nil), r.holepunch...)
}

func skipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("跳过 E2E 测试")
	}
}

var (
	clientAddr = testutil.ClientAddr
	relayAddr  = testutil.RelayAddr
	relay2Addr = testutil.Relay2Addr
	serverAddr = testutil.ServerAddr
)
