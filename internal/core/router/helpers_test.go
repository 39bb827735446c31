package router

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/lib/proto/routing"
	"github.com/dep2p/go-natrouter/pkg/types"
	"github.com/dep2p/go-natrouter/tests/mocks"
)

var (
	clientAddr = types.NewEndpoint("198.51.100.10", 40001)
	relayAddr  = types.NewEndpoint("203.0.113.1", 49737)
	relay2Addr = types.NewEndpoint("203.0.113.2", 49737)
	serverAddr = types.NewEndpoint("192.0.2.50", 50505)
)

func testTarget(b byte) types.Target {
	t, _ := types.TargetFromBytes(bytes.Repeat([]byte{b}, types.TargetLen))
	return t
}

func newTestRouter(t *testing.T, opts ...Option) (*Router, *mocks.MockTransport) {
	t.Helper()
	tr := mocks.NewMockTransport()
	r, err := NewRouter(DefaultConfig(), tr, opts...)
	require.NoError(t, err)
	return r, tr
}

func handshakeRequest(target types.Target, from types.Endpoint, hs *routing.Handshake) *mocks.MockRequest {
	return mocks.NewMockRequest(interfaces.CommandPeerHandshake, target, hs.Encode(), from)
}

func holepunchRequest(target types.Target, from types.Endpoint, hp *routing.Holepunch) *mocks.MockRequest {
	return mocks.NewMockRequest(interfaces.CommandPeerHolepunch, target, hp.Encode(), from)
}

func decodeHandshake(t *testing.T, b []byte) *routing.Handshake {
	t.Helper()
	hs, err := routing.DecodeHandshake(b)
	require.NoError(t, err)
	return hs
}

func decodeHolepunch(t *testing.T, b []byte) *routing.Holepunch {
	t.Helper()
	hp, err := routing.DecodeHolepunch(b)
	require.NoError(t, err)
	return hp
}

// staticHandshake 返回固定 noise 的握手回调，并记录收到的负载
func staticHandshake(noise []byte, socket interfaces.Socket, got *[]interfaces.HandshakePayload) interfaces.HandshakeHandler {
	return func(_ context.Context, p interfaces.HandshakePayload, _ interfaces.InboundRequest) (*interfaces.HandshakeReply, error) {
		if got != nil {
			*got = append(*got, p)
		}
		return &interfaces.HandshakeReply{Noise: noise, Socket: socket}, nil
	}
}
