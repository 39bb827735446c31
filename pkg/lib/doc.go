// Package lib 包含基础设施工具库
//
// 本目录包含与路由逻辑无关的通用工具库：
//
//   - log: 日志封装
//   - proto/routing: 握手 / 打洞消息的线上编码
//
// # 与 pkg/ 其他目录的关系
//
//   - interfaces/: 外部协作者接口
//   - types/: 公共类型定义
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-natrouter/pkg/lib/log"
//	    "github.com/dep2p/go-natrouter/pkg/lib/proto/routing"
//	)
package lib
