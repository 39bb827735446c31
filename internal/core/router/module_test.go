package router

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-natrouter/config"
	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/lib/proto/routing"
	"github.com/dep2p/go-natrouter/pkg/types"
	"github.com/dep2p/go-natrouter/tests/mocks"
)

func TestModule(t *testing.T) {
	tr := mocks.NewMockTransport()
	var r *Router

	app := fxtest.New(t,
		fx.Provide(func() interfaces.Transport { return tr }),
		Module(),
		fx.Populate(&r),
	)
	app.RequireStart()

	require.NotNil(t, r)
	_, ok := tr.Handler(interfaces.CommandPeerHandshake)
	assert.True(t, ok, "启动后注册握手处理函数")
	_, ok = tr.Handler(interfaces.CommandPeerHolepunch)
	assert.True(t, ok, "启动后注册打洞处理函数")

	app.RequireStop()

	_, ok = tr.Handler(interfaces.CommandPeerHandshake)
	assert.False(t, ok, "停止后移除处理函数")
}

func TestModuleWithConfig(t *testing.T) {
	cfg := config.NewMinimalConfig()
	cfg.Router.ForwardCacheSize = 8
	cfg.Router.EnableMetrics = true

	reg := prometheus.NewRegistry()
	var r *Router

	app := fxtest.New(t,
		fx.Provide(
			func() interfaces.Transport { return mocks.NewMockTransport() },
			func() *config.Config { return cfg },
			func() prometheus.Registerer { return reg },
		),
		Module(),
		fx.Populate(&r),
	)
	defer app.RequireStart().RequireStop()

	assert.Equal(t, 8, r.config.ForwardCacheSize)
	assert.NotNil(t, r.metrics)

	families, err := reg.Gather()
	require.NoError(t, err)
	// 未产生样本的 CounterVec 不会出现在 Gather 结果中
	assert.Empty(t, families)
}

func TestModuleMetricsDisabled(t *testing.T) {
	cfg := config.NewMinimalConfig()
	require.False(t, cfg.Router.EnableMetrics)

	var r *Router
	app := fxtest.New(t,
		fx.Provide(
			func() interfaces.Transport { return mocks.NewMockTransport() },
			func() *config.Config { return cfg },
			func() prometheus.Registerer { return prometheus.NewRegistry() },
		),
		Module(),
		fx.Populate(&r),
	)
	defer app.RequireStart().RequireStop()

	assert.Nil(t, r.metrics)
}

func TestProvideRouterDirectly(t *testing.T) {
	t.Run("缺少传输层", func(t *testing.T) {
		_, err := ProvideRouter(RouterInput{})
		assert.ErrorIs(t, err, ErrNilTransport)
	})

	t.Run("无效配置", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Router.ForwardCacheSize = 0
		_, err := ProvideRouter(RouterInput{Config: cfg, Transport: mocks.NewMockTransport()})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("自定义 Gate", func(t *testing.T) {
		gate := GateFunc(func(context.Context, Protocol, routing.Mode, types.Endpoint) bool { return false })
		r, err := ProvideRouter(RouterInput{Transport: mocks.NewMockTransport(), Gate: gate})
		require.NoError(t, err)
		assert.NotNil(t, r.gate)
	})
}

func TestRouter_StartStop(t *testing.T) {
	r, tr := newTestRouter(t)
	ctx := context.Background()

	require.NoError(t, r.Start(ctx))
	assert.ErrorIs(t, r.Start(ctx), ErrAlreadyStarted)

	_, ok := tr.Handler(interfaces.CommandPeerHolepunch)
	assert.True(t, ok)

	require.NoError(t, r.Stop(ctx))
	require.NoError(t, r.Stop(ctx), "重复停止无副作用")

	_, ok = tr.Handler(interfaces.CommandPeerHolepunch)
	assert.False(t, ok)

	require.NoError(t, r.Start(ctx), "停止后可以重新启动")
}

func TestNewRouter(t *testing.T) {
	_, err := NewRouter(nil, nil)
	assert.ErrorIs(t, err, ErrNilTransport)

	r, err := NewRouter(nil, mocks.NewMockTransport())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), r.config)
}
