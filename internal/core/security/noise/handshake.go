package noise

import (
	"fmt"

	"github.com/flynn/noise"
)

var cipherSuite = noise.NewCipherSuite(noise.DH25519, noise.CipherChaChaPoly, noise.HashBLAKE2b)

// ============================================================================
// Noise IK 握手实现
// ============================================================================

// Initiator IK 握手发起方
//
// 用法：Message 生成第一条消息，Finish 消费响应方的回复。
type Initiator struct {
	hs      *noise.HandshakeState
	written bool
	done    bool
}

// NewInitiator 创建发起方
//
// remoteStatic 为响应方的静态公钥。
func NewInitiator(static KeyPair, remoteStatic []byte) (*Initiator, error) {
	if len(remoteStatic) != KeyLen {
		return nil, ErrInvalidKey
	}
	hs, err := noise.NewHandshakeState(noise.Config{
		CipherSuite:   cipherSuite,
		Pattern:       noise.HandshakeIK,
		Initiator:     true,
		StaticKeypair: static,
		PeerStatic:    remoteStatic,
	})
	if err != nil {
		return nil, fmt.Errorf("create handshake state: %w", err)
	}
	return &Initiator{hs: hs}, nil
}

// Message 生成第一条握手消息（-> e, es, s, ss, payload）
func (i *Initiator) Message(payload []byte) ([]byte, error) {
	if i.written {
		return nil, ErrHandshakeDone
	}
	msg, _, _, err := i.hs.WriteMessage(nil, payload)
	if err != nil {
		return nil, fmt.Errorf("write message 1: %w", err)
	}
	i.written = true
	return msg, nil
}

// Finish 消费响应方的回复（<- e, ee, se, payload），返回会话与对方 payload
func (i *Initiator) Finish(reply []byte) (*Session, []byte, error) {
	if !i.written || i.done {
		return nil, nil, ErrHandshakeDone
	}
	payload, cs1, cs2, err := i.hs.ReadMessage(nil, reply)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read message 2: %v", ErrInvalidHandshake, err)
	}
	if cs1 == nil || cs2 == nil {
		return nil, nil, fmt.Errorf("%w: handshake incomplete", ErrInvalidHandshake)
	}
	i.done = true

	// cs1 = 发送密钥，cs2 = 接收密钥（对于发起者）
	return newSession(cs1, cs2, i.hs.PeerStatic(), i.hs.ChannelBinding()), payload, nil
}

// Respond 作为响应方处理第一条消息
//
// 返回回复消息、会话与发起方 payload。会话的 RemoteStatic 是发起方的静态公钥。
func Respond(static KeyPair, msg, payload []byte) ([]byte, *Session, []byte, error) {
	hs, err := noise.NewHandshakeState(noise.Config{
		CipherSuite:   cipherSuite,
		Pattern:       noise.HandshakeIK,
		Initiator:     false,
		StaticKeypair: static,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create handshake state: %w", err)
	}

	remotePayload, _, _, err := hs.ReadMessage(nil, msg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: read message 1: %v", ErrInvalidHandshake, err)
	}

	reply, cs1, cs2, err := hs.WriteMessage(nil, payload)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("write message 2: %w", err)
	}
	if cs1 == nil || cs2 == nil {
		return nil, nil, nil, fmt.Errorf("%w: handshake incomplete", ErrInvalidHandshake)
	}

	// cs1 = 接收密钥，cs2 = 发送密钥（对于响应者，与发起者相反）
	return reply, newSession(cs2, cs1, hs.PeerStatic(), hs.ChannelBinding()), remotePayload, nil
}
