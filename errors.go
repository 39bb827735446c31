package natrouter

import (
	"errors"

	"github.com/dep2p/go-natrouter/internal/core/router"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 路由错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrBadReply 回复无法解码、模式错误、来源端点不符或缺少必需字段
	ErrBadReply = router.ErrBadReply

	// ErrCallbackFailed 服务端回调返回错误或 panic
	ErrCallbackFailed = router.ErrCallbackFailed

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = router.ErrInvalidConfig

	// ErrNilTransport 未提供传输层
	ErrNilTransport = router.ErrNilTransport

	// ────────────────────────────────────────────────────────────────────────
	// 节点生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrAlreadyStarted 节点已启动
	ErrAlreadyStarted = errors.New("node already started")

	// ErrNodeClosed 节点已关闭
	ErrNodeClosed = errors.New("node closed")
)
