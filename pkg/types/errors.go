// Package types 定义 natrouter 的基础类型
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              Target 相关错误
// ============================================================================

var (
	// ErrEmptyTarget 空目标标识
	ErrEmptyTarget = errors.New("empty target")

	// ErrInvalidTarget 无效的目标标识（长度或编码错误）
	ErrInvalidTarget = errors.New("invalid target: must be 32 bytes, hex or base58")
)

// ============================================================================
//                              Endpoint 相关错误
// ============================================================================

var (
	// ErrInvalidEndpoint 无效的端点
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrInvalidPort 无效的端口
	ErrInvalidPort = errors.New("invalid port")
)
