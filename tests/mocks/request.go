package mocks

import (
	"sync"

	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// SendKind 出站动作类型
type SendKind int

const (
	// SendReply Reply 调用
	SendReply SendKind = iota
	// SendRelay Relay 调用
	SendRelay
)

// String 返回动作名称
func (k SendKind) String() string {
	if k == SendReply {
		return "reply"
	}
	return "relay"
}

// SendCall 记录一次 Reply / Relay
type SendCall struct {
	Kind  SendKind
	Value []byte
	To    *types.Endpoint // 仅 Relay
	Opts  interfaces.SendOptions
}

// MockRequest 模拟入站请求
type MockRequest struct {
	CommandValue interfaces.Command
	TargetValue  *types.Target
	ValueBytes   []byte
	FromValue    types.Endpoint
	ToValue      types.Endpoint

	// 可覆盖的方法
	ReplyFunc func(value []byte, opts interfaces.SendOptions) error
	RelayFunc func(value []byte, to types.Endpoint, opts interfaces.SendOptions) error

	mu    sync.Mutex
	calls []SendCall
}

// NewMockRequest 创建入站请求
func NewMockRequest(cmd interfaces.Command, target types.Target, value []byte, from types.Endpoint) *MockRequest {
	return &MockRequest{
		CommandValue: cmd,
		TargetValue:  &target,
		ValueBytes:   value,
		FromValue:    from,
		ToValue:      types.NewEndpoint("127.0.0.1", 49737),
	}
}

// Command 请求命令
func (m *MockRequest) Command() interfaces.Command {
	return m.CommandValue
}

// Target 请求目标
func (m *MockRequest) Target() (types.Target, bool) {
	if m.TargetValue == nil {
		return types.EmptyTarget, false
	}
	return *m.TargetValue, true
}

// Value 请求负载
func (m *MockRequest) Value() []byte {
	return m.ValueBytes
}

// From 发送方
func (m *MockRequest) From() types.Endpoint {
	return m.FromValue
}

// To 本地端点
func (m *MockRequest) To() types.Endpoint {
	return m.ToValue
}

// Reply 记录回复
func (m *MockRequest) Reply(value []byte, opts interfaces.SendOptions) error {
	m.record(SendCall{Kind: SendReply, Value: value, Opts: opts})
	if m.ReplyFunc != nil {
		return m.ReplyFunc(value, opts)
	}
	return nil
}

// Relay 记录中继
func (m *MockRequest) Relay(value []byte, to types.Endpoint, opts interfaces.SendOptions) error {
	m.record(SendCall{Kind: SendRelay, Value: value, To: &to, Opts: opts})
	if m.RelayFunc != nil {
		return m.RelayFunc(value, to, opts)
	}
	return nil
}

func (m *MockRequest) record(c SendCall) {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
}

// Calls 返回所有出站调用
func (m *MockRequest) Calls() []SendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SendCall(nil), m.calls...)
}

// Replies 返回所有 Reply 调用
func (m *MockRequest) Replies() []SendCall {
	return m.filter(SendReply)
}

// Relays 返回所有 Relay 调用
func (m *MockRequest) Relays() []SendCall {
	return m.filter(SendRelay)
}

func (m *MockRequest) filter(kind SendKind) []SendCall {
	var out []SendCall
	for _, c := range m.Calls() {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

var _ interfaces.InboundRequest = (*MockRequest)(nil)
