package types

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTargetBytes() []byte {
	return bytes.Repeat([]byte{0xab, 0x01}, TargetLen/2)
}

func TestTargetFromBytes(t *testing.T) {
	t.Run("有效长度", func(t *testing.T) {
		target, err := TargetFromBytes(testTargetBytes())
		require.NoError(t, err)
		assert.Equal(t, testTargetBytes(), target.Bytes())
	})

	t.Run("空输入", func(t *testing.T) {
		_, err := TargetFromBytes(nil)
		assert.ErrorIs(t, err, ErrEmptyTarget)
	})

	t.Run("长度错误", func(t *testing.T) {
		_, err := TargetFromBytes([]byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestParseTarget(t *testing.T) {
	raw := testTargetBytes()
	want, err := TargetFromBytes(raw)
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"小写十六进制", hex.EncodeToString(raw), false},
		{"大写十六进制", strings.ToUpper(hex.EncodeToString(raw)), false},
		{"Base58", want.String(), false},
		{"空字符串", "", true},
		{"非法字符", "0OIl!!", true},
		{"长度不足", "abcd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTarget(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestTargetKey_Normalization(t *testing.T) {
	raw := testTargetBytes()
	target, err := TargetFromBytes(raw)
	require.NoError(t, err)

	inputs := []any{
		target,
		&target,
		raw,
		hex.EncodeToString(raw),
		strings.ToUpper(hex.EncodeToString(raw)),
		target.String(),
	}

	for _, in := range inputs {
		key, err := TargetKey(in)
		require.NoError(t, err)
		assert.Equal(t, target.Key(), key, "input %T", in)
	}

	_, err = TargetKey(42)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	var nilTarget *Target
	_, err = TargetKey(nilTarget)
	assert.ErrorIs(t, err, ErrEmptyTarget)
}

func TestTarget_Strings(t *testing.T) {
	assert.Equal(t, "", EmptyTarget.String())
	assert.True(t, EmptyTarget.IsEmpty())

	target, err := TargetFromBytes(testTargetBytes())
	require.NoError(t, err)
	assert.False(t, target.IsEmpty())
	assert.Len(t, target.ShortString(), 8)
	assert.True(t, strings.HasPrefix(target.String(), target.ShortString()))
	assert.Len(t, target.Key(), 64)
	assert.True(t, target.Equal(target))
}
