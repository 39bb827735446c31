package routing

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dep2p/go-natrouter/pkg/types"
)

const (
	handshakeFieldMode         protowire.Number = 1
	handshakeFieldNoise        protowire.Number = 2
	handshakeFieldPeerAddress  protowire.Number = 3
	handshakeFieldRelayAddress protowire.Number = 4
)

// Handshake 安全会话建立消息
//
// Noise 为 nil 或空表示缺失。端点字段为 nil 表示缺失。
type Handshake struct {
	Mode         Mode
	Noise        []byte
	PeerAddress  *types.Endpoint
	RelayAddress *types.Endpoint
}

// HasNoise 是否携带握手字节
func (m *Handshake) HasNoise() bool {
	return len(m.Noise) > 0
}

// Encode 编码握手消息
func (m *Handshake) Encode() []byte {
	b := make([]byte, 0, 16+len(m.Noise))
	b = protowire.AppendTag(b, handshakeFieldMode, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Mode))
	if len(m.Noise) > 0 {
		b = protowire.AppendTag(b, handshakeFieldNoise, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Noise)
	}
	b = appendEndpoint(b, handshakeFieldPeerAddress, m.PeerAddress)
	b = appendEndpoint(b, handshakeFieldRelayAddress, m.RelayAddress)
	return b
}

// DecodeHandshake 解码握手消息
func DecodeHandshake(b []byte) (*Handshake, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformedMessage)
	}

	m := &Handshake{}
	hasMode := false
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == handshakeFieldMode && typ == protowire.VarintType:
			mode, n, err := consumeMode(b)
			if err != nil {
				return nil, err
			}
			m.Mode = mode
			hasMode = true
			b = b[n:]
		case num == handshakeFieldNoise && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			m.Noise = append([]byte(nil), v...)
			b = b[n:]
		case (num == handshakeFieldPeerAddress || num == handshakeFieldRelayAddress) && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			ep, err := consumeEndpoint(v)
			if err != nil {
				return nil, err
			}
			if num == handshakeFieldPeerAddress {
				m.PeerAddress = ep
			} else {
				m.RelayAddress = ep
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if !hasMode {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, ErrMissingMode)
	}
	if !m.Mode.ValidHandshake() {
		return nil, fmt.Errorf("%w: %w %d", ErrMalformedMessage, ErrInvalidMode, m.Mode)
	}
	return m, nil
}
