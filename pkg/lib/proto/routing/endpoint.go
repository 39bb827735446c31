package routing

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/dep2p/go-natrouter/pkg/types"
)

const (
	endpointFieldHost protowire.Number = 1
	endpointFieldPort protowire.Number = 2
)

// appendEndpoint 以嵌入消息的形式写入端点
func appendEndpoint(b []byte, num protowire.Number, ep *types.Endpoint) []byte {
	if ep == nil {
		return b
	}
	var inner []byte
	inner = protowire.AppendTag(inner, endpointFieldHost, protowire.BytesType)
	inner = protowire.AppendString(inner, ep.Host)
	inner = protowire.AppendTag(inner, endpointFieldPort, protowire.VarintType)
	inner = protowire.AppendVarint(inner, uint64(ep.Port))

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

// consumeEndpoint 解码嵌入的端点消息
func consumeEndpoint(b []byte) (*types.Endpoint, error) {
	var (
		ep      types.Endpoint
		hasHost bool
	)
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == endpointFieldHost && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			ep.Host = v
			hasHost = true
			b = b[n:]
		case num == endpointFieldPort && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			if v > math.MaxUint16 {
				return nil, fmt.Errorf("%w: port %d out of range", ErrMalformedMessage, v)
			}
			ep.Port = uint16(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, malformed(protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if !hasHost || ep.Host == "" {
		return nil, fmt.Errorf("%w: endpoint without host", ErrMalformedMessage)
	}
	return &ep, nil
}

// consumeMode 解码 mode 字段
func consumeMode(b []byte) (Mode, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, n, malformed(protowire.ParseError(n))
	}
	if v > math.MaxUint8 {
		return 0, n, fmt.Errorf("%w: %w %d", ErrMalformedMessage, ErrInvalidMode, v)
	}
	return Mode(v), n, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
}
