package router

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-natrouter/config"
	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/lib/log"
)

// RouterInput Router 依赖
type RouterInput struct {
	fx.In

	Config     *config.Config `optional:"true"`
	Transport  interfaces.Transport
	Gate       Gate                  `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// ProvideRouter 提供 Router
func ProvideRouter(input RouterInput) (*Router, error) {
	cfg := ConfigFromUnified(input.Config)

	var opts []Option
	if input.Gate != nil {
		opts = append(opts, WithGate(input.Gate))
	}
	if cfg.EnableMetrics && input.Registerer != nil {
		m, err := NewMetrics(input.Registerer)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithMetrics(m))
	}

	return NewRouter(cfg, input.Transport, opts...)
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("router",
		fx.Provide(ProvideRouter),
		fx.Invoke(configureLogging),
		fx.Invoke(registerLifecycle),
	)
}

// loggingInput 日志配置的输入
type loggingInput struct {
	fx.In
	Config *config.Config `optional:"true"`
}

// configureLogging 按统一配置设置日志
func configureLogging(input loggingInput) error {
	if input.Config == nil {
		return nil
	}
	return log.Configure(os.Stderr, input.Config.Log.Level, input.Config.Log.Format)
}

// registerLifecycleInput 生命周期注册的输入
type registerLifecycleInput struct {
	fx.In
	Lifecycle fx.Lifecycle
	Router    *Router
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(input registerLifecycleInput) {
	input.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return input.Router.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return input.Router.Stop(ctx)
		},
	})
}
