package noise

import "errors"

var (
	// ErrInvalidHandshake 握手失败
	ErrInvalidHandshake = errors.New("noise: invalid handshake")

	// ErrInvalidKey 公钥长度错误
	ErrInvalidKey = errors.New("noise: invalid public key")

	// ErrHandshakeDone 握手已经完成
	ErrHandshakeDone = errors.New("noise: handshake already finished")
)
