package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// ErrNoResponse 默认 Request 行为：没有回复
var ErrNoResponse = errors.New("mock transport: no response")

// RequestCall 记录 Request 调用
type RequestCall struct {
	Command interfaces.Command
	Target  types.Target
	Value   []byte
	To      types.Endpoint
	Opts    interfaces.SendOptions
}

// MockTransport 模拟 Transport 接口实现
type MockTransport struct {
	// 可覆盖的方法
	RequestFunc func(ctx context.Context, call RequestCall) (*interfaces.Response, error)

	mu       sync.Mutex
	requests []RequestCall
	handlers map[interfaces.Command]interfaces.RequestHandler
}

// NewMockTransport 创建 MockTransport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		handlers: make(map[interfaces.Command]interfaces.RequestHandler),
	}
}

// Request 记录请求并调用 RequestFunc
func (m *MockTransport) Request(ctx context.Context, cmd interfaces.Command, target types.Target, value []byte, to types.Endpoint, opts interfaces.SendOptions) (*interfaces.Response, error) {
	call := RequestCall{Command: cmd, Target: target, Value: value, To: to, Opts: opts}

	m.mu.Lock()
	m.requests = append(m.requests, call)
	m.mu.Unlock()

	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, call)
	}
	return nil, ErrNoResponse
}

// SetRequestHandler 设置处理函数
func (m *MockTransport) SetRequestHandler(cmd interfaces.Command, handler interfaces.RequestHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[cmd] = handler
}

// RemoveRequestHandler 移除处理函数
func (m *MockTransport) RemoveRequestHandler(cmd interfaces.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.handlers, cmd)
}

// Handler 返回已注册的处理函数
func (m *MockTransport) Handler(cmd interfaces.Command) (interfaces.RequestHandler, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handlers[cmd]
	return h, ok
}

// Requests 返回所有 Request 调用
func (m *MockTransport) Requests() []RequestCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RequestCall(nil), m.requests...)
}

var _ interfaces.Transport = (*MockTransport)(nil)
