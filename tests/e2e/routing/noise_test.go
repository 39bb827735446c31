package routing_test

import (
	"context"
	"testing"

	"github.com/flynn/noise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	natrouter "github.com/dep2p/go-natrouter"
	"github.com/dep2p/go-natrouter/tests/testutil"
)

var cipherSuite = noise.NewCipherSuite(noise.DH25519, noise.CipherChaChaPoly, noise.HashBLAKE2b)

type noiseSession struct {
	send, recv *noise.CipherState
	binding    []byte
}

// TestNoiseHandshake_ThroughTwoRelays 真实的 Noise NN 握手经两跳中继完成，双方得到一致的会话密钥
func TestNoiseHandshake_ThroughTwoRelays(t *testing.T) {
	skipIfShort(t)

	network := testutil.NewNetwork(t)
	target := testutil.TestTarget(0x30)

	sessions := make(chan noiseSession, 1)
	onHandshake := func(_ context.Context, p natrouter.HandshakePayload, _ natrouter.InboundRequest) (*natrouter.HandshakeReply, error) {
		hs, err := noise.NewHandshakeState(noise.Config{
			CipherSuite: cipherSuite,
			Pattern:     noise.HandshakeNN,
			Initiator:   false,
		})
		if err != nil {
			return nil, err
		}
		if _, _, _, err := hs.ReadMessage(nil, p.Noise); err != nil {
			return nil, err
		}
		msg, cs1, cs2, err := hs.WriteMessage(nil, nil)
		if err != nil {
			return nil, err
		}
		// 响应方用 cs2 发送、cs1 接收
		sessions <- noiseSession{send: cs2, recv: cs1, binding: hs.ChannelBinding()}
		return &natrouter.HandshakeReply{Noise: msg}, nil
	}

	server := testutil.NewTestNode(t, network, serverAddr).Start()
	server.Set(target, natrouter.ServerRegistration(onHandshake, nil, nil))

	relay1 := testutil.NewTestNode(t, network, relayAddr).Start()
	relay1.Set(target, natrouter.ForwardRegistration(relay2Addr.Ptr()))
	relay2 := testutil.NewTestNode(t, network, relay2Addr).Start()
	relay2.Set(target, natrouter.ForwardRegistration(serverAddr.Ptr()))

	client := testutil.NewTestNode(t, network, clientAddr).Build()

	hs, err := noise.NewHandshakeState(noise.Config{
		CipherSuite: cipherSuite,
		Pattern:     noise.HandshakeNN,
		Initiator:   true,
	})
	require.NoError(t, err)
	msg1, _, _, err := hs.WriteMessage(nil, nil)
	require.NoError(t, err)

	res, err := client.PeerHandshake(context.Background(), target, natrouter.HandshakeRequest{Noise: msg1}, relayAddr)
	require.NoError(t, err)
	assert.True(t, res.Relayed)
	assert.Equal(t, serverAddr, res.ServerAddress)

	_, cs1, cs2, err := hs.ReadMessage(nil, res.Noise)
	require.NoError(t, err)
	require.NotNil(t, cs1)
	require.NotNil(t, cs2)

	srv := <-sessions
	assert.Equal(t, hs.ChannelBinding(), srv.binding, "双方握手哈希一致")

	// 客户端 -> 服务端
	ct, err := cs1.Encrypt(nil, nil, []byte("hello server"))
	require.NoError(t, err)
	pt, err := srv.recv.Decrypt(nil, nil, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello server"), pt)

	// 服务端 -> 客户端
	ct, err = srv.send.Encrypt(nil, nil, []byte("hello client"))
	require.NoError(t, err)
	pt, err = cs2.Decrypt(nil, nil, ct)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello client"), pt)
}
