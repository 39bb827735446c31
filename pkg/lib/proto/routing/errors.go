package routing

import "errors"

var (
	// ErrMalformedMessage 无法解码的消息
	ErrMalformedMessage = errors.New("routing: malformed message")

	// ErrMissingMode 缺少 mode 字段
	ErrMissingMode = errors.New("routing: missing mode")

	// ErrInvalidMode 模式对该消息类型非法
	ErrInvalidMode = errors.New("routing: invalid mode")
)
