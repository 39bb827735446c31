package noise

import (
	"crypto/rand"
	"io"

	"github.com/flynn/noise"
	"lukechampine.com/blake3"

	"github.com/dep2p/go-natrouter/pkg/types"
)

// KeyLen Curve25519 公钥长度
const KeyLen = 32

// KeyPair Curve25519 静态密钥对
type KeyPair = noise.DHKey

// GenerateKeyPair 生成静态密钥对
//
// rng 为 nil 时使用 crypto/rand。
func GenerateKeyPair(rng io.Reader) (KeyPair, error) {
	if rng == nil {
		rng = rand.Reader
	}
	return noise.DH25519.GenerateKeypair(rng)
}

// TargetFromPublicKey 从静态公钥派生路由目标
func TargetFromPublicKey(pub []byte) (types.Target, error) {
	if len(pub) != KeyLen {
		return types.EmptyTarget, ErrInvalidKey
	}
	return types.Target(blake3.Sum256(pub)), nil
}
