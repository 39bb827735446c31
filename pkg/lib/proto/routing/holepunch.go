package routing

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dep2p/go-natrouter/pkg/types"
)

const (
	holepunchFieldMode        protowire.Number = 1
	holepunchFieldID          protowire.Number = 2
	holepunchFieldPayload     protowire.Number = 3
	holepunchFieldPeerAddress protowire.Number = 4
)

// Holepunch UDP 打洞协调消息
type Holepunch struct {
	Mode        Mode
	ID          uint64
	Payload     []byte
	PeerAddress *types.Endpoint
}

// Encode 编码打洞消息
func (m *Holepunch) Encode() []byte {
	b := make([]byte, 0, 16+len(m.Payload))
	b = protowire.AppendTag(b, holepunchFieldMode, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(m.Mode))
	if m.ID != 0 {
		b = protowire.AppendTag(b, holepunchFieldID, protowire.VarintType)
		b = protowire.AppendVarint(b, m.ID)
	}
	if len(m.Payload) > 0 {
		b = protowire.AppendTag(b, holepunchFieldPayload, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Payload)
	}
	return appendEndpoint(b, holepunchFieldPeerAddress, m.PeerAddress)
}

// DecodeHolepunch 解码打洞消息
func DecodeHolepunch(b []byte) (*Holepunch, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrMalformedMessage)
	}

	m := &Holepunch{}
	hasMode := false
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == holepunchFieldMode && typ == protowire.VarintType:
			mode, n, err := consumeMode(b)
			if err != nil {
				return nil, err
			}
			m.Mode = mode
			hasMode = true
			b = b[n:]
		case num == holepunchFieldID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			m.ID = v
			b = b[n:]
		case num == holepunchFieldPayload && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			m.Payload = append([]byte(nil), v...)
			b = b[n:]
		case num == holepunchFieldPeerAddress && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			ep, err := consumeEndpoint(v)
			if err != nil {
				return nil, err
			}
			m.PeerAddress = ep
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
	if !m.Mode.ValidHolepunch() {
		return nil, fmt.Errorf("%w: %w %d", ErrMalformedMessage, ErrInvalidMode, m.Mode)
	}
	return m, nil
}
