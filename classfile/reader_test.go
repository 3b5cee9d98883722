package classfile

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	t.Run("big endian primitives", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{
			0x7f,
			0x12, 0x34,
			0xde, 0xad, 0xbe, 0xef,
			'a', 'b', 'c',
		}))
		require.Equal(t, uint8(0x7f), r.ReadU1())
		require.Equal(t, uint16(0x1234), r.ReadU2())
		require.Equal(t, uint32(0xdeadbeef), r.ReadU4())
		require.Equal(t, []byte("abc"), r.ReadBytes(3))
		require.NoError(t, r.Err())
		require.Equal(t, int64(10), r.Offset())
	})

	t.Run("short read is sticky", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03}))
		require.Equal(t, uint16(0x0102), r.ReadU2())
		require.Equal(t, uint32(0), r.ReadU4())
		require.ErrorIs(t, r.Err(), ErrUnexpectedEOF)

		require.Equal(t, uint8(0), r.ReadU1())
		require.Nil(t, r.ReadBytes(1))
		require.ErrorIs(t, r.Err(), ErrUnexpectedEOF)
	})

	t.Run("empty stream", func(t *testing.T) {
		r := NewReader(bytes.NewReader(nil))
		r.ReadU1()
		require.ErrorIs(t, r.Err(), ErrUnexpectedEOF)
	})

	t.Run("zero length bytes", func(t *testing.T) {
		r := NewReader(bytes.NewReader(nil))
		require.Equal(t, []byte{}, r.ReadBytes(0))
		require.NoError(t, r.Err())
	})
}
