package router

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// forwardStore 有界、可淘汰的转发登记存储
//
// 按容量（LRU）与存活时间双重淘汰。只存放 KindForward 登记。
type forwardStore struct {
	cache *expirable.LRU[string, Registration]
}

func newForwardStore(size int, ttl time.Duration) *forwardStore {
	return &forwardStore{
		cache: expirable.NewLRU[string, Registration](size, nil, ttl),
	}
}

func (s *forwardStore) set(key string, reg Registration) {
	s.cache.Add(key, reg)
}

func (s *forwardStore) get(key string) (Registration, bool) {
	return s.cache.Get(key)
}

func (s *forwardStore) remove(key string) {
	s.cache.Remove(key)
}

func (s *forwardStore) len() int {
	return s.cache.Len()
}
