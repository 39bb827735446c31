package types

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoint_Equal(t *testing.T) {
	a := NewEndpoint("10.0.0.1", 4000)

	assert.True(t, a.Equal(NewEndpoint("10.0.0.1", 4000)))
	assert.False(t, a.Equal(NewEndpoint("10.0.0.1", 4001)), "端口不同")
	assert.False(t, a.Equal(NewEndpoint("10.0.0.2", 4000)), "主机不同")
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Endpoint
		wantErr error
	}{
		{"IPv4", "1.2.3.4:49737", NewEndpoint("1.2.3.4", 49737), nil},
		{"IPv6", "[::1]:80", NewEndpoint("::1", 80), nil},
		{"缺少端口", "1.2.3.4", Endpoint{}, ErrInvalidEndpoint},
		{"端口越界", "1.2.3.4:70000", Endpoint{}, ErrInvalidPort},
		{"缺少主机", ":80", Endpoint{}, ErrInvalidEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEndpoint(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestEndpoint_AddrPort(t *testing.T) {
	ep := EndpointFromAddrPort(netip.MustParseAddrPort("[::ffff:192.168.1.2]:9000"))
	assert.Equal(t, NewEndpoint("192.168.1.2", 9000), ep)

	ap, err := ep.AddrPort()
	require.NoError(t, err)
	assert.Equal(t, uint16(9000), ap.Port())

	_, err = NewEndpoint("example.org", 1).AddrPort()
	assert.ErrorIs(t, err, ErrInvalidEndpoint)

	udp := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 5353}
	assert.Equal(t, NewEndpoint("127.0.0.1", 5353), EndpointFromUDPAddr(udp))
	assert.True(t, EndpointFromUDPAddr(nil).IsZero())
}

func TestEndpoint_Ptr(t *testing.T) {
	ep := NewEndpoint("1.1.1.1", 1)
	p := ep.Ptr()
	p.Port = 2
	assert.Equal(t, uint16(1), ep.Port, "Ptr 返回副本")
	assert.Equal(t, "<nil>", EndpointString(nil))
	assert.Equal(t, "1.1.1.1:2", EndpointString(p))
}
