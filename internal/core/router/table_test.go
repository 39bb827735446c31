package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dep2p/go-natrouter/pkg/lib/proto/routing"
)

func TestTransition_Handshake(t *testing.T) {
	tests := []struct {
		isServer bool
		mode     routing.Mode
		want     Action
	}{
		{true, routing.ModeFromClient, ActionServerReply},
		{true, routing.ModeFromRelay, ActionServerRelayToSender},
		{true, routing.ModeFromSecondRelay, ActionServerRelayToRelay},
		{true, routing.ModeFromServer, ActionDrop},
		{true, routing.ModeReply, ActionDrop},

		{false, routing.ModeFromClient, ActionForward},
		{false, routing.ModeFromRelay, ActionForwardSecondHop},
		{false, routing.ModeFromServer, ActionReplyToPeer},
		{false, routing.ModeFromSecondRelay, ActionDrop},
		{false, routing.ModeReply, ActionDrop},
	}

	for _, tt := range tests {
		got := Transition(ProtocolHandshake, tt.isServer, tt.mode)
		assert.Equal(t, tt.want, got, "server=%v mode=%s", tt.isServer, tt.mode)
	}
}

func TestTransition_Holepunch(t *testing.T) {
	tests := []struct {
		isServer bool
		mode     routing.Mode
		want     Action
	}{
		{true, routing.ModeFromClient, ActionForward},
		{true, routing.ModeFromRelay, ActionServerRelayToSender},
		{true, routing.ModeFromServer, ActionReplyToPeer},
		{true, routing.ModeFromSecondRelay, ActionDrop},
		{true, routing.ModeReply, ActionDrop},

		{false, routing.ModeFromClient, ActionForward},
		{false, routing.ModeFromRelay, ActionDrop},
		{false, routing.ModeFromServer, ActionReplyToPeer},
		{false, routing.ModeFromSecondRelay, ActionDrop},
		{false, routing.ModeReply, ActionDrop},
	}

	for _, tt := range tests {
		got := Transition(ProtocolHolepunch, tt.isServer, tt.mode)
		assert.Equal(t, tt.want, got, "server=%v mode=%s", tt.isServer, tt.mode)
	}
}

func TestTransition_UnknownProtocol(t *testing.T) {
	assert.Equal(t, ActionDrop, Transition(Protocol(9), true, routing.ModeFromClient))
	assert.Equal(t, "unknown", Protocol(9).String())
}

func TestAction(t *testing.T) {
	assert.True(t, ActionServerReply.InvokesServer())
	assert.True(t, ActionServerRelayToSender.InvokesServer())
	assert.True(t, ActionServerRelayToRelay.InvokesServer())
	assert.False(t, ActionForward.InvokesServer())
	assert.False(t, ActionReplyToPeer.InvokesServer())
	assert.False(t, ActionDrop.InvokesServer())

	assert.Equal(t, "forward_second_hop", ActionForwardSecondHop.String())
	assert.Equal(t, "unknown", Action(99).String())
}
