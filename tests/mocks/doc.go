// Package mocks 提供统一的测试 Mock 实现
//
// # 核心 Mock
//
//   - MockRequest: 模拟 interfaces.InboundRequest，记录 Reply / Relay 调用
//   - MockTransport: 模拟 interfaces.Transport，支持自定义 Request 行为、记录请求
//
// 所有 Mock 都是并发安全的，可在处理函数的 goroutine 中调用。
package mocks
