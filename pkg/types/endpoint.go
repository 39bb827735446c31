package types

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
)

// ============================================================================
//                              Endpoint - 网络端点
// ============================================================================

// Endpoint 网络端点
//
// 既作为路由目的地，也作为防伪造校验依据：
// 只有当回复确实来自被查询的端点时才接受该回复。
type Endpoint struct {
	Host string
	Port uint16
}

// NewEndpoint 创建端点
func NewEndpoint(host string, port uint16) Endpoint {
	return Endpoint{Host: host, Port: port}
}

// ParseEndpoint 从 "host:port" 解析端点
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if host == "" {
		return Endpoint{}, ErrInvalidEndpoint
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrInvalidPort, portStr)
	}
	return Endpoint{Host: host, Port: uint16(port)}, nil
}

// EndpointFromAddrPort 从 netip.AddrPort 创建端点
func EndpointFromAddrPort(ap netip.AddrPort) Endpoint {
	return Endpoint{Host: ap.Addr().Unmap().String(), Port: ap.Port()}
}

// EndpointFromUDPAddr 从 *net.UDPAddr 创建端点
func EndpointFromUDPAddr(addr *net.UDPAddr) Endpoint {
	if addr == nil {
		return Endpoint{}
	}
	return EndpointFromAddrPort(addr.AddrPort())
}

// AddrPort 转换为 netip.AddrPort
//
// Host 不是 IP 字面量时返回错误。
func (e Endpoint) AddrPort() (netip.AddrPort, error) {
	addr, err := netip.ParseAddr(e.Host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	return netip.AddrPortFrom(addr, e.Port), nil
}

// Equal 逐字段精确比较
func (e Endpoint) Equal(other Endpoint) bool {
	return e.Host == other.Host && e.Port == other.Port
}

// IsZero 检查端点是否为零值
func (e Endpoint) IsZero() bool {
	return e.Host == "" && e.Port == 0
}

// String 返回 "host:port" 形式
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// Ptr 返回端点副本的指针，便于填充可选字段
func (e Endpoint) Ptr() *Endpoint {
	return &e
}

// EndpointString 返回可选端点的字符串形式（nil 返回 "<nil>"，用于日志）
func EndpointString(e *Endpoint) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
