// Package interfaces 定义 natrouter 的外部协作者接口
//
// 路由核心只依赖这里的接口，不关心具体实现：
//   - transport.go - 请求/回复/中继传输（可靠投递、超时、重传由其负责）
//   - router.go    - 服务端注册回调（握手 / 打洞）
//
// 实现方：
//   - internal/core/router/memnet - 内存网络传输（测试与示例）
//   - tests/mocks                 - 记录调用的 Mock
package interfaces
