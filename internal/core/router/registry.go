package router

import (
	"sort"
	"sync"
	"time"

	"github.com/dep2p/go-natrouter/pkg/types"
)

// ============================================================================
//                              Registry - 状态注册表
// ============================================================================

// Registry 目标状态注册表
//
// 每个目标至多一条登记：服务端登记存放在永不淘汰的表中，
// 转发登记存放在有界缓存中。写入一种登记会同时删除另一种。
// 查找时先查服务端表再查转发缓存。
//
// 同一目标的并发写入以最后一次为准。
type Registry struct {
	mu       sync.RWMutex
	servers  map[string]Registration
	forwards *forwardStore
}

// NewRegistry 创建注册表
//
// forwardSize/forwardTTL 只约束转发登记。
func NewRegistry(forwardSize int, forwardTTL time.Duration) *Registry {
	return &Registry{
		servers:  make(map[string]Registration),
		forwards: newForwardStore(forwardSize, forwardTTL),
	}
}

// Set 写入目标的登记（互斥写入两个存储之一）
func (r *Registry) Set(target types.Target, reg Registration) {
	r.set(target.Key(), reg)
}

// Get 获取目标的登记
func (r *Registry) Get(target types.Target) (Registration, bool) {
	return r.get(target.Key())
}

// Delete 删除目标的全部登记
func (r *Registry) Delete(target types.Target) {
	r.delete(target.Key())
}

// SetKey 以任意目标表示写入登记
//
// target 可以是 types.Target、[]byte 或十六进制 / Base58 字符串，
// 同一目标的不同表示命中同一条登记。
func (r *Registry) SetKey(target any, reg Registration) error {
	k, err := types.TargetKey(target)
	if err != nil {
		return err
	}
	r.set(k, reg)
	return nil
}

// GetKey 以任意目标表示获取登记
func (r *Registry) GetKey(target any) (Registration, bool, error) {
	k, err := types.TargetKey(target)
	if err != nil {
		return Registration{}, false, err
	}
	reg, ok := r.get(k)
	return reg, ok, nil
}

// DeleteKey 以任意目标表示删除登记
func (r *Registry) DeleteKey(target any) error {
	k, err := types.TargetKey(target)
	if err != nil {
		return err
	}
	r.delete(k)
	return nil
}

func (r *Registry) set(k string, reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reg.IsServer() {
		r.servers[k] = reg
		r.forwards.remove(k)
		return
	}
	r.forwards.set(k, reg)
	delete(r.servers, k)
}

func (r *Registry) get(k string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, ok := r.servers[k]; ok {
		return reg, true
	}
	return r.forwards.get(k)
}

func (r *Registry) delete(k string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.servers, k)
	r.forwards.remove(k)
}

// Len 返回服务端登记数与转发登记数
func (r *Registry) Len() (servers, forwards int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.servers), r.forwards.len()
}

// ServerKeys 返回所有服务端登记的目标键（已排序）
func (r *Registry) ServerKeys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.servers))
	for k := range r.servers {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Strings(keys)
	return keys
}
