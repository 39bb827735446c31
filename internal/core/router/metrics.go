package router

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// 丢弃原因
const (
	dropMalformed      = "malformed"
	dropGated          = "gated"
	dropNoRoute        = "no_route"
	dropMissingNoise   = "missing_noise"
	dropMissingPeer    = "missing_peer_address"
	dropMissingRelay   = "missing_relay_address"
	dropCallbackFailed = "callback_failed"
	dropEmptyReply     = "empty_reply"
	dropUnexpectedMode = "unexpected_mode"
	dropSendFailed     = "send_failed"
)

// 发起方结果
const (
	resultOK             = "ok"
	resultBadReply       = "bad_reply"
	resultTransportError = "transport_error"
)

// Metrics 路由指标
//
// 所有方法对 nil 接收者安全，未启用指标时直接传 nil。
type Metrics struct {
	messages         *prometheus.CounterVec
	drops            *prometheus.CounterVec
	callbackFailures *prometheus.CounterVec
	requests         *prometheus.CounterVec
}

// NewMetrics 创建并注册指标
//
// reg 为 nil 时只创建不注册。重复注册时复用已注册的采集器。
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natrouter",
			Name:      "messages_total",
			Help:      "Inbound routing messages by protocol, mode and dispatch action.",
		}, []string{"protocol", "mode", "action"}),
		drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natrouter",
			Name:      "dropped_total",
			Help:      "Inbound routing messages silently dropped, by reason.",
		}, []string{"protocol", "reason"}),
		callbackFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natrouter",
			Name:      "callback_failures_total",
			Help:      "Server callbacks that returned an error or panicked.",
		}, []string{"protocol"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "natrouter",
			Name:      "requests_total",
			Help:      "Initiated handshake/holepunch round trips by result.",
		}, []string{"protocol", "result"}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.messages, err = registerCounterVec(reg, m.messages); err != nil {
		return nil, err
	}
	if m.drops, err = registerCounterVec(reg, m.drops); err != nil {
		return nil, err
	}
	if m.callbackFailures, err = registerCounterVec(reg, m.callbackFailures); err != nil {
		return nil, err
	}
	if m.requests, err = registerCounterVec(reg, m.requests); err != nil {
		return nil, err
	}
	return m, nil
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (m *Metrics) message(protocol Protocol, mode string, action Action) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(protocol.String(), mode, action.String()).Inc()
}

func (m *Metrics) drop(protocol Protocol, reason string) {
	if m == nil {
		return
	}
	m.drops.WithLabelValues(protocol.String(), reason).Inc()
	if reason == dropCallbackFailed {
		m.callbackFailures.WithLabelValues(protocol.String()).Inc()
	}
}

func (m *Metrics) request(protocol Protocol, result string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(protocol.String(), result).Inc()
}
