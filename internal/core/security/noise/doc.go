// Package noise 在路由握手之上建立 Noise IK 安全会话
//
// 握手字节对路由器完全不透明，本包负责生成与消费它们：
// 客户端用 Initiator 生成第一条消息交给 PeerHandshake，
// 服务端用 HandshakeHandler 作为登记的握手回调。
//
// # 协议
//
// 使用 Noise_IK_25519_ChaChaPoly_BLAKE2b 模式：
//   - IK: 一个往返，发起者事先知道响应者的静态公钥
//   - 25519: Curve25519 用于 DH 密钥交换
//   - ChaChaPoly: ChaCha20-Poly1305 用于对称加密
//   - BLAKE2b: 用于密钥派生
//
// # 握手流程
//
//	-> e, es, s, ss, payload     (FROM_CLIENT 的 noise 字段)
//	<- e, ee, se, payload        (REPLY 的 noise 字段)
//
// # 路由目标
//
// 服务端的路由目标是其静态公钥的 BLAKE3 哈希，见 TargetFromPublicKey。
package noise
