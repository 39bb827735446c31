package routing

// Mode 消息模式
type Mode uint8

const (
	// ModeFromClient 客户端发出
	ModeFromClient Mode = 0
	// ModeFromServer 服务端发出（经中继返回客户端）
	ModeFromServer Mode = 1
	// ModeFromRelay 第一跳中继发出
	ModeFromRelay Mode = 2
	// ModeFromSecondRelay 第二跳中继发出（仅握手）
	ModeFromSecondRelay Mode = 3
	// ModeReply 终端回复，直接送达原始请求方
	ModeReply Mode = 4
)

// String 返回模式名称
func (m Mode) String() string {
	switch m {
	case ModeFromClient:
		return "FROM_CLIENT"
	case ModeFromServer:
		return "FROM_SERVER"
	case ModeFromRelay:
		return "FROM_RELAY"
	case ModeFromSecondRelay:
		return "FROM_SECOND_RELAY"
	case ModeReply:
		return "REPLY"
	default:
		return "UNKNOWN"
	}
}

// ValidHandshake 是否为合法的握手模式
func (m Mode) ValidHandshake() bool {
	return m <= ModeReply
}

// ValidHolepunch 是否为合法的打洞模式（打洞没有第二跳中继）
func (m Mode) ValidHolepunch() bool {
	return m <= ModeReply && m != ModeFromSecondRelay
}
