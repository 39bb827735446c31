package memnet

import "errors"

var (
	// ErrTimeout 请求在超时时间内没有收到回复
	ErrTimeout = errors.New("memnet: request timed out")

	// ErrClosed 节点或网络已关闭
	ErrClosed = errors.New("memnet: closed")

	// ErrAddressInUse 地址已被其他节点占用
	ErrAddressInUse = errors.New("memnet: address in use")
)
