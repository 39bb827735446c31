package router

import "errors"

// Sentinel errors
var (
	// ErrBadReply 回复无法解码、模式错误、来源端点不符或缺少必需字段
	ErrBadReply = errors.New("router: bad reply")

	// ErrCallbackFailed 服务端回调返回错误或 panic
	ErrCallbackFailed = errors.New("router: callback failed")

	// ErrNilTransport 未提供传输层
	ErrNilTransport = errors.New("router: nil transport")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("router: invalid config")

	// ErrAlreadyStarted 已经启动
	ErrAlreadyStarted = errors.New("router: already started")
)
