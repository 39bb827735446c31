// Package routing 定义握手与打洞路由消息的线格式
//
// 消息采用 Protobuf 线格式（google.golang.org/protobuf/encoding/protowire）
// 手工编解码，字段定义如下：
//
//	message Endpoint  { string host = 1; uint32 port = 2; }
//	message Handshake { uint32 mode = 1; bytes noise = 2; Endpoint peer_address = 3; Endpoint relay_address = 4; }
//	message Holepunch { uint32 mode = 1; uint64 id = 2; bytes payload = 3; Endpoint peer_address = 4; }
//
// 未知字段被跳过。mode 字段必须出现。任何解码失败都返回
// ErrMalformedMessage，路由入口据此静默丢弃消息。
package routing
