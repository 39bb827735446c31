package noise

import (
	"sync"

	"github.com/flynn/noise"
)

// ============================================================================
// Session 实现
// ============================================================================

// Session 握手完成后的加密会话
//
// 加密与解密各自串行，可以并发调用。
type Session struct {
	sendMu sync.Mutex
	sendCS *noise.CipherState

	recvMu sync.Mutex
	recvCS *noise.CipherState

	remoteStatic []byte
	binding      []byte
}

func newSession(send, recv *noise.CipherState, remoteStatic, binding []byte) *Session {
	return &Session{
		sendCS:       send,
		recvCS:       recv,
		remoteStatic: append([]byte(nil), remoteStatic...),
		binding:      append([]byte(nil), binding...),
	}
}

// Encrypt 加密一条消息
func (s *Session) Encrypt(plaintext []byte) ([]byte, error) {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	return s.sendCS.Encrypt(nil, nil, plaintext)
}

// Decrypt 解密一条消息
//
// 消息必须按发送顺序解密。
func (s *Session) Decrypt(ciphertext []byte) ([]byte, error) {
	s.recvMu.Lock()
	defer s.recvMu.Unlock()
	return s.recvCS.Decrypt(nil, nil, ciphertext)
}

// RemoteStatic 对方的静态公钥
func (s *Session) RemoteStatic() []byte {
	return s.remoteStatic
}

// HandshakeHash 握手哈希，双方一致，可用于通道绑定
func (s *Session) HandshakeHash() []byte {
	return s.binding
}
