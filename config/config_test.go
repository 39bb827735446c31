package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// TestNewConfig 测试创建默认配置
func TestNewConfig(t *testing.T) {
	cfg := NewConfig()
	require.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 65536, cfg.Router.ForwardCacheSize)
	assert.Equal(t, 20*time.Minute, cfg.Router.ForwardCacheTTL.Duration())
	assert.True(t, cfg.Router.EnableMetrics)
}

// TestConfig_Validate_Aggregates 测试验证聚合所有错误
func TestConfig_Validate_Aggregates(t *testing.T) {
	cfg := NewConfig()
	cfg.Router.ForwardCacheSize = 0
	cfg.Router.RequestTimeout = Duration(-time.Second)
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Contains(t, err.Error(), "forward_cache_size")
	assert.Contains(t, err.Error(), "request_timeout")
	assert.Contains(t, err.Error(), "log.format")

	var nilCfg *Config
	assert.ErrorIs(t, nilCfg.Validate(), ErrNilConfig)
}

// TestValidateAndFix 测试自动修复
func TestValidateAndFix(t *testing.T) {
	t.Run("nil 返回默认配置", func(t *testing.T) {
		cfg, err := ValidateAndFix(nil)
		require.NoError(t, err)
		assert.Equal(t, NewConfig(), cfg)
	})

	t.Run("修复非法值", func(t *testing.T) {
		cfg := &Config{}
		cfg.Router.ForwardCacheTTL = Duration(-1)

		fixed, err := ValidateAndFix(cfg)
		require.NoError(t, err)
		assert.Equal(t, DefaultRouterConfig().ForwardCacheSize, fixed.Router.ForwardCacheSize)
		assert.Equal(t, DefaultRouterConfig().ForwardCacheTTL, fixed.Router.ForwardCacheTTL)
		assert.Equal(t, "info", fixed.Log.Level)
	})

	t.Run("无法修复的错误", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Log.Level = "chatty"
		_, err := ValidateAndFix(cfg)
		assert.Error(t, err)
	})
}

// TestFromJSON 测试 JSON 加载
func TestFromJSON(t *testing.T) {
	data := []byte(`{
		"router": {"forward_cache_size": 128, "forward_cache_ttl": "90s", "request_timeout": 1000000000},
		"log": {"level": "debug", "format": "json"}
	}`)

	cfg, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Router.ForwardCacheSize)
	assert.Equal(t, 90*time.Second, cfg.Router.ForwardCacheTTL.Duration())
	assert.Equal(t, time.Second, cfg.Router.RequestTimeout.Duration())
	assert.True(t, cfg.Router.EnableMetrics, "未出现的字段保留默认值")
	assert.Equal(t, "debug", cfg.Log.Level)
	require.NoError(t, cfg.Validate())

	out, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"forward_cache_ttl": "1m30s"`)

	_, err = FromJSON([]byte(`{"router": {"forward_cache_ttl": "soon"}}`))
	assert.Error(t, err)
}

// TestApplyPreset 测试预设
func TestApplyPreset(t *testing.T) {
	server := NewServerConfig()
	assert.Equal(t, 1<<18, server.Router.ForwardCacheSize)
	assert.NoError(t, server.Validate())

	minimal := NewMinimalConfig()
	assert.False(t, minimal.Router.EnableMetrics)
	assert.NoError(t, minimal.Validate())

	cfg := NewConfig()
	require.NoError(t, ApplyPreset(cfg, PresetMobile))
	assert.Equal(t, 1024, cfg.Router.ForwardCacheSize)

	assert.Error(t, ApplyPreset(cfg, "satellite"))
	assert.ErrorIs(t, ApplyPreset(nil, PresetServer), ErrNilConfig)
}

// TestCloneConfig 测试拷贝互不影响
func TestCloneConfig(t *testing.T) {
	cfg := NewConfig()
	clone := CloneConfig(cfg)
	clone.Router.ForwardCacheSize = 1
	assert.NotEqual(t, cfg.Router.ForwardCacheSize, clone.Router.ForwardCacheSize)
	assert.Nil(t, CloneConfig(nil))
}
