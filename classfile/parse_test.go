package classfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/cpdump/internal/cptest"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	b := cptest.New().Version(3, 45)
	foo := b.Utf8("Foo")
	b.Class(foo)

	cf, err := Parse(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	require.Equal(t, uint16(3), cf.MinorVersion)
	require.Equal(t, uint16(45), cf.MajorVersion)
	require.Equal(t, uint16(3), cf.ConstantPoolCount)
	require.Equal(t, "45.3", cf.Version())
	require.Len(t, cf.ConstantPool, 2)
}

func TestParseFile(t *testing.T) {
	b := cptest.New()
	b.Utf8("java/lang/Object")
	path := filepath.Join(t.TempDir(), "Object.class")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))

	cf, err := ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, uint16(52), cf.MajorVersion)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.class"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckMagic(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, CheckMagic(bytes.NewReader([]byte{0xCA, 0xFE, 0xBA, 0xBE})))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := CheckMagic(bytes.NewReader([]byte{0xCA, 0xFE, 0xD0, 0x0D}))
		require.ErrorIs(t, err, ErrNotAClassFile)
		require.Contains(t, err.Error(), "0xCAFED00D")
	})

	t.Run("too short", func(t *testing.T) {
		err := CheckMagic(bytes.NewReader([]byte{0xCA, 0xFE}))
		require.ErrorIs(t, err, ErrNotAClassFile)
		require.ErrorIs(t, err, ErrUnexpectedEOF)
	})

	t.Run("parse rejects", func(t *testing.T) {
		data := cptest.New().Bytes()
		data[0] = 0x00
		cf, err := Parse(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrNotAClassFile)
		require.Nil(t, cf)
	})
}

func TestParseHeaderTruncated(t *testing.T) {
	t.Run("versions", func(t *testing.T) {
		_, err := ParseHeader(bytes.NewReader([]byte{0x00, 0x00, 0x00}))
		require.ErrorIs(t, err, ErrUnexpectedEOF)
	})

	t.Run("pool count", func(t *testing.T) {
		_, err := ParseHeader(bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x34, 0x00}))
		require.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestDecodeConstantPoolRoundTrip(t *testing.T) {
	b := cptest.New()
	b.Utf8("Foo")                    // 1
	b.Class(1)                       // 2
	b.Utf8("bar")                    // 3
	b.Utf8("()V")                    // 4
	b.NameAndType(3, 4)              // 5
	b.Fieldref(2, 5)                 // 6
	b.Methodref(2, 5)                // 7
	b.InterfaceMethodref(2, 5)       // 8
	b.StringConst(3)                 // 9
	b.Integer(-7)                    // 10
	b.FloatBits(0x3fc00000)          // 11
	b.Long(-2)                       // 12, 13
	b.DoubleBits(0x400921fb54442d18) // 14, 15
	b.MethodHandle(6, 7)             // 16
	b.MethodType(4)                  // 17
	b.InvokeDynamic(0, 5)            // 18

	cp, err := DecodeConstantPool(b.Count(), NewReader(bytes.NewReader(b.Pool()[2:])))
	require.NoError(t, err)

	want := ConstantPool{
		&ConstantUtf8Info{Bytes: []byte("Foo")},
		&ConstantClassInfo{NameIndex: 1},
		&ConstantUtf8Info{Bytes: []byte("bar")},
		&ConstantUtf8Info{Bytes: []byte("()V")},
		&ConstantNameAndTypeInfo{NameIndex: 3, DescriptorIndex: 4},
		&ConstantFieldrefInfo{ClassIndex: 2, NameAndTypeIndex: 5},
		&ConstantMethodrefInfo{ClassIndex: 2, NameAndTypeIndex: 5},
		&ConstantInterfaceMethodrefInfo{ClassIndex: 2, NameAndTypeIndex: 5},
		&ConstantStringInfo{StringIndex: 3},
		&ConstantIntegerInfo{Bytes: 0xfffffff9},
		&ConstantFloatInfo{Bytes: 0x3fc00000},
		&ConstantLongInfo{HighBytes: 0xffffffff, LowBytes: 0xfffffffe},
		nil,
		&ConstantDoubleInfo{HighBytes: 0x400921fb, LowBytes: 0x54442d18},
		nil,
		&ConstantMethodHandleInfo{ReferenceKind: RefInvokeStatic, ReferenceIndex: 7},
		&ConstantMethodTypeInfo{DescriptorIndex: 4},
		&ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: 0, NameAndTypeIndex: 5},
	}
	require.Equal(t, want, cp)
	require.Equal(t, 16, cp.Stored())

	require.Equal(t, int32(-7), cp[9].(*ConstantIntegerInfo).Value())
	require.Equal(t, float32(1.5), cp[10].(*ConstantFloatInfo).Value())
	require.Equal(t, int64(-2), cp[11].(*ConstantLongInfo).Value())
	require.Equal(t, uint64(0x400921fb54442d18), cp[13].(*ConstantDoubleInfo).Bits())
}

func TestDecodeConstantPoolEmpty(t *testing.T) {
	for _, count := range []uint16{0, 1} {
		cp, err := DecodeConstantPool(count, NewReader(bytes.NewReader(nil)))
		require.NoError(t, err)
		require.Empty(t, cp)
	}
}

func TestDecodeConstantPoolWideSlots(t *testing.T) {
	b := cptest.New()
	b.Long(1)   // 1, 2
	b.Double(2) // 3, 4
	b.Utf8("x") // 5

	cp, err := DecodeConstantPool(b.Count(), NewReader(bytes.NewReader(b.Pool()[2:])))
	require.NoError(t, err)
	require.Len(t, cp, 5)
	require.Nil(t, cp[1])
	require.Nil(t, cp[3])
	require.IsType(t, &ConstantUtf8Info{}, cp[4])
	require.Equal(t, 3, cp.Stored())
}

func TestDecodeConstantPoolWideAtEnd(t *testing.T) {
	// A wide entry in the last slot leaves nothing after it to skip into.
	b := cptest.New()
	b.Utf8("x")
	b.Long(5)

	cp, err := DecodeConstantPool(b.Count()-1, NewReader(bytes.NewReader(b.Pool()[2:])))
	require.NoError(t, err)
	require.Len(t, cp, 2)
	require.Equal(t, int64(5), cp[1].(*ConstantLongInfo).Value())
}

func TestDecodeConstantPoolUnknownTag(t *testing.T) {
	b := cptest.New()
	b.Utf8("before")
	b.Raw(200)
	b.Utf8("after")

	cp, err := DecodeConstantPool(b.Count(), NewReader(bytes.NewReader(b.Pool()[2:])))
	require.NoError(t, err)
	require.Len(t, cp, 3)
	require.Equal(t, &ConstantUnknownInfo{RawTag: 200}, cp[1])
	require.Equal(t, ConstantTag(200), cp[1].Tag())
	require.False(t, cp[1].Tag().Known())
	require.Equal(t, []byte("after"), cp[2].(*ConstantUtf8Info).Bytes)
}

func TestDecodeConstantPoolTruncated(t *testing.T) {
	t.Run("utf8 payload", func(t *testing.T) {
		data := []byte{byte(ConstantUtf8), 0x00, 0x0a, 'a', 'b', 'c'}
		cp, err := DecodeConstantPool(2, NewReader(bytes.NewReader(data)))
		require.ErrorIs(t, err, ErrUnexpectedEOF)
		require.Contains(t, err.Error(), "entry 1")
		require.Nil(t, cp)
	})

	t.Run("missing entries", func(t *testing.T) {
		b := cptest.New()
		b.Utf8("only")
		_, err := DecodeConstantPool(b.Count()+1, NewReader(bytes.NewReader(b.Pool()[2:])))
		require.ErrorIs(t, err, ErrUnexpectedEOF)
		require.Contains(t, err.Error(), "entry 2")
	})

	t.Run("second half of long", func(t *testing.T) {
		data := []byte{byte(ConstantLong), 0x00, 0x00, 0x00, 0x01, 0x00, 0x00}
		_, err := DecodeConstantPool(3, NewReader(bytes.NewReader(data)))
		require.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestUtf8Display(t *testing.T) {
	utf := &ConstantUtf8Info{Bytes: []byte("hello\nworld")}
	require.Equal(t, []byte("hello"), utf.Display())
	require.Equal(t, []byte("hello\nworld"), utf.Bytes)

	plain := &ConstantUtf8Info{Bytes: []byte("plain")}
	require.Equal(t, []byte("plain"), plain.Display())
}

func TestMethodHandleKind(t *testing.T) {
	name, err := RefGetField.Name()
	require.NoError(t, err)
	require.Equal(t, "REF_getField", name)

	name, err = RefInvokeInterface.Name()
	require.NoError(t, err)
	require.Equal(t, "REF_invokeInterface", name)

	for _, k := range []MethodHandleKind{0, 10, 255} {
		_, err := k.Name()
		require.ErrorIs(t, err, ErrInvalidMethodHandleKind)
		require.False(t, k.Valid())
	}
}

func TestConstantTagString(t *testing.T) {
	require.Equal(t, "Methodref", ConstantMethodref.String())
	require.Equal(t, "InvokeDynamic", ConstantInvokeDynamic.String())
	require.Equal(t, "Unknown(17)", ConstantTag(17).String())
	require.True(t, ConstantDouble.Wide())
	require.False(t, ConstantInteger.Wide())
}
