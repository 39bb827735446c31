package memnet

import (
	"github.com/dep2p/go-natrouter/pkg/interfaces"
	"github.com/dep2p/go-natrouter/pkg/types"
)

// request 入站请求
type request struct {
	node   *Node
	packet Packet
}

var _ interfaces.InboundRequest = (*request)(nil)

func (r *request) Command() interfaces.Command {
	return r.packet.Command
}

func (r *request) Target() (types.Target, bool) {
	if r.packet.Target == nil {
		return types.EmptyTarget, false
	}
	return *r.packet.Target, true
}

func (r *request) Value() []byte {
	return r.packet.Value
}

func (r *request) From() types.Endpoint {
	return r.packet.From
}

func (r *request) To() types.Endpoint {
	return r.packet.To
}

// Reply 以原请求的 tid 回复，opts.To 非空时发往该端点
func (r *request) Reply(value []byte, opts interfaces.SendOptions) error {
	if r.node.isClosed() {
		return ErrClosed
	}
	to := r.packet.From
	if opts.To != nil {
		to = *opts.To
	}
	r.node.network.send(Packet{
		Kind:        KindResponse,
		TID:         r.packet.TID,
		Command:     r.packet.Command,
		Target:      r.packet.Target,
		Value:       value,
		From:        r.node.addr,
		To:          to,
		Socket:      opts.Socket,
		CloserNodes: opts.CloserNodes,
	})
	return nil
}

// Relay 以原请求的 tid 把请求转发给 to
func (r *request) Relay(value []byte, to types.Endpoint, opts interfaces.SendOptions) error {
	if r.node.isClosed() {
		return ErrClosed
	}
	r.node.network.send(Packet{
		Kind:    KindRequest,
		TID:     r.packet.TID,
		Command: r.packet.Command,
		Target:  r.packet.Target,
		Value:   value,
		From:    r.node.addr,
		To:      to,
		Socket:  opts.Socket,
	})
	return nil
}
