package testutil

import (
	"context"
	"testing"
	"time"
)

// defaultInterval 内存网络下的默认检查间隔
const defaultInterval = 5 * time.Millisecond

// WaitForCondition 等待条件满足或超时
//
// 返回：条件是否满足（超时返回 false）
func WaitForCondition(t *testing.T, timeout time.Duration, interval time.Duration, condition func() bool) bool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// 立即检查一次
	if condition() {
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if condition() {
				return true
			}
		}
	}
}

// Eventually 在指定时间内重试条件检查，超时则 fail 测试
//
// 示例:
//
//	testutil.Eventually(t, time.Second, func() bool {
//	    _, dropped := network.Stats()
//	    return dropped > 0
//	}, "数据包应被丢弃")
func Eventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	t.Helper()
	if !WaitForCondition(t, timeout, defaultInterval, condition) {
		t.Fatalf("等待超时: %s", msg)
	}
}
