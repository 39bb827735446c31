package natrouter

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-natrouter/config"
	"github.com/dep2p/go-natrouter/internal/core/router"
	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/lib/log"
)

var fxLogger = log.Logger("natrouter/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序：
//  1. 配置与传输层注入
//  2. 可选组件（Gate / Prometheus Registerer）
//  3. 路由模块，启动时在传输层上注册入站处理函数
//  4. 用户追加的 Fx 选项
func buildFxApp(cfg *config.Config, transport interfaces.Transport, o *options, node *Node) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置与传输层
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		fx.Supply(cfg),
		fx.Provide(func() interfaces.Transport { return transport }),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 可选组件
	// ════════════════════════════════════════════════════════════════════════
	if o.gate != nil {
		gate := o.gate
		modules = append(modules, fx.Provide(func() router.Gate { return gate }))
	}
	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 路由模块
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		router.Module(),
		fx.Populate(&node.Router),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 4. 用户扩展
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, o.fxOptions...)

	// 禁用 Fx 日志输出（避免干扰用户日志）
	modules = append(modules, fx.NopLogger)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		fxLogger.Debug("构建 Fx 应用失败", "error", err)
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return app, nil
}
