// Package memnet 提供内存模拟网络，实现 interfaces.Transport
//
// 每个节点监听一个 Endpoint，节点间按 UDP 语义投递数据包：
// 目的地不存在或被过滤器拦截时静默丢弃，由请求方超时发现。
//
// # 事务号
//
// 每个请求分配全网唯一的事务号（tid）。Relay 保留原请求的 tid，
// 因此经过任意多跳后，带 opts.To 的终端 Reply 仍能唤醒原始客户端
// 挂起的 Request。回复的 From 总是实际发送回复的节点。
//
// 使用示例：
//
//	network := memnet.NewNetwork(memnet.WithTimeout(time.Second))
//	defer network.Close()
//
//	relay, _ := network.Listen(types.NewEndpoint("203.0.113.1", 49737))
//	client, _ := network.Listen(types.NewEndpoint("198.51.100.10", 40001))
package memnet

import (
	"github.com/dep2p/go-natrouter/pkg/lib/log"
)

var logger = log.Logger("core/router/memnet")
