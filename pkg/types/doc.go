// Package types 定义 natrouter 的基础数据类型
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - target.go   - Target 目标标识（公钥 / 哈希）及规范化键
//   - endpoint.go - Endpoint 网络端点 {Host, Port}
//   - errors.go   - 公共错误定义
//
// # 与 pkg/lib/proto 的区别
//
// pkg/types 定义 Go 内部数据结构（内存结构），
// pkg/lib/proto/routing 定义网络协议消息（wire format）。
package types
