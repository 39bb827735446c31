package types

import (
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
)

// ============================================================================
//                              Target - 目标标识
// ============================================================================

// TargetLen Target 的固定字节长度
const TargetLen = 32

// Target 路由目标标识
//
// 网络公钥或其哈希，定长 32 字节。
//
// 外部表示格式：
//   - Key(): 小写十六进制，注册表查找使用的规范键
//   - String(): Base58 编码（用户可读）
//   - ShortString(): Base58 前缀（日志简短标识）
type Target [TargetLen]byte

// EmptyTarget 空目标
var EmptyTarget Target

// Key 返回规范化的注册表键
//
// 相同字节的 Target 无论来源（原始字节 / 十六进制字符串 / Base58）
// 都得到相同的键。
func (t Target) Key() string {
	return hex.EncodeToString(t[:])
}

// String 返回 Target 的 Base58 字符串表示
func (t Target) String() string {
	if t.IsEmpty() {
		return ""
	}
	return base58.Encode(t[:])
}

// ShortString 返回 Target 的短字符串表示
func (t Target) ShortString() string {
	s := t.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// Bytes 返回 Target 的字节切片
func (t Target) Bytes() []byte {
	return t[:]
}

// Equal 比较两个 Target 是否相等
func (t Target) Equal(other Target) bool {
	return t == other
}

// IsEmpty 检查 Target 是否为空
func (t Target) IsEmpty() bool {
	return t == EmptyTarget
}

// TargetFromBytes 从字节切片创建 Target
func TargetFromBytes(b []byte) (Target, error) {
	if len(b) == 0 {
		return EmptyTarget, ErrEmptyTarget
	}
	if len(b) != TargetLen {
		return EmptyTarget, ErrInvalidTarget
	}
	var t Target
	copy(t[:], b)
	return t, nil
}

// ParseTarget 从字符串解析 Target
//
// 支持两种格式：
//   - 64 字符十六进制（大小写不敏感）
//   - Base58
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EmptyTarget, ErrEmptyTarget
	}

	if len(s) == hex.EncodedLen(TargetLen) {
		if b, err := hex.DecodeString(s); err == nil {
			return TargetFromBytes(b)
		}
	}

	b, err := base58.Decode(s)
	if err != nil {
		return EmptyTarget, ErrInvalidTarget
	}
	return TargetFromBytes(b)
}

// TargetKey 将任意表示的目标标识规范化为注册表键
//
// 接受 Target、[]byte 或 string（十六进制 / Base58）。
func TargetKey(v any) (string, error) {
	switch t := v.(type) {
	case Target:
		return t.Key(), nil
	case *Target:
		if t == nil {
			return "", ErrEmptyTarget
		}
		return t.Key(), nil
	case []byte:
		target, err := TargetFromBytes(t)
		if err != nil {
			return "", err
		}
		return target.Key(), nil
	case string:
		target, err := ParseTarget(t)
		if err != nil {
			return "", err
		}
		return target.Key(), nil
	default:
		return "", ErrInvalidTarget
	}
}
