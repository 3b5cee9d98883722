// Package cptest builds synthetic class files for tests. Entry methods return
// the 1-based pool index assigned to the new entry.
package cptest

import (
	"bytes"
	"encoding/binary"
	"math"
)

const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagInvokeDynamic      = 18
)

type Builder struct {
	minor, major uint16
	next         uint16
	pool         bytes.Buffer
}

func New() *Builder {
	return &Builder{major: 52, next: 1}
}

func (b *Builder) Version(minor, major uint16) *Builder {
	b.minor, b.major = minor, major
	return b
}

// Count is the constant_pool_count the builder will write.
func (b *Builder) Count() uint16 {
	return b.next
}

func (b *Builder) u1(v uint8)  { b.pool.WriteByte(v) }
func (b *Builder) u2(v uint16) { binary.Write(&b.pool, binary.BigEndian, v) }
func (b *Builder) u4(v uint32) { binary.Write(&b.pool, binary.BigEndian, v) }

func (b *Builder) take(slots uint16) uint16 {
	index := b.next
	b.next += slots
	return index
}

func (b *Builder) Utf8(s string) uint16 {
	b.u1(tagUtf8)
	b.u2(uint16(len(s)))
	b.pool.WriteString(s)
	return b.take(1)
}

func (b *Builder) Integer(v int32) uint16 {
	b.u1(tagInteger)
	b.u4(uint32(v))
	return b.take(1)
}

func (b *Builder) FloatBits(bits uint32) uint16 {
	b.u1(tagFloat)
	b.u4(bits)
	return b.take(1)
}

func (b *Builder) Float(v float32) uint16 {
	return b.FloatBits(math.Float32bits(v))
}

func (b *Builder) Long(v int64) uint16 {
	b.u1(tagLong)
	b.u4(uint32(uint64(v) >> 32))
	b.u4(uint32(v))
	return b.take(2)
}

func (b *Builder) DoubleBits(bits uint64) uint16 {
	b.u1(tagDouble)
	b.u4(uint32(bits >> 32))
	b.u4(uint32(bits))
	return b.take(2)
}

func (b *Builder) Double(v float64) uint16 {
	return b.DoubleBits(math.Float64bits(v))
}

func (b *Builder) Class(nameIndex uint16) uint16 {
	b.u1(tagClass)
	b.u2(nameIndex)
	return b.take(1)
}

func (b *Builder) StringConst(stringIndex uint16) uint16 {
	b.u1(tagString)
	b.u2(stringIndex)
	return b.take(1)
}

func (b *Builder) pair(tag uint8, first, second uint16) uint16 {
	b.u1(tag)
	b.u2(first)
	b.u2(second)
	return b.take(1)
}

func (b *Builder) Fieldref(classIndex, natIndex uint16) uint16 {
	return b.pair(tagFieldref, classIndex, natIndex)
}

func (b *Builder) Methodref(classIndex, natIndex uint16) uint16 {
	return b.pair(tagMethodref, classIndex, natIndex)
}

func (b *Builder) InterfaceMethodref(classIndex, natIndex uint16) uint16 {
	return b.pair(tagInterfaceMethodref, classIndex, natIndex)
}

func (b *Builder) NameAndType(nameIndex, descriptorIndex uint16) uint16 {
	return b.pair(tagNameAndType, nameIndex, descriptorIndex)
}

func (b *Builder) InvokeDynamic(bootstrapIndex, natIndex uint16) uint16 {
	return b.pair(tagInvokeDynamic, bootstrapIndex, natIndex)
}

func (b *Builder) MethodHandle(kind uint8, referenceIndex uint16) uint16 {
	b.u1(tagMethodHandle)
	b.u1(kind)
	b.u2(referenceIndex)
	return b.take(1)
}

func (b *Builder) MethodType(descriptorIndex uint16) uint16 {
	b.u1(tagMethodType)
	b.u2(descriptorIndex)
	return b.take(1)
}

// Raw appends a tag byte followed by payload verbatim and claims one slot.
func (b *Builder) Raw(tag uint8, payload ...byte) uint16 {
	b.u1(tag)
	b.pool.Write(payload)
	return b.take(1)
}

// Pool returns constant_pool_count followed by the encoded entries.
func (b *Builder) Pool() []byte {
	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, b.next)
	out.Write(b.pool.Bytes())
	return out.Bytes()
}

// Header returns the version fields followed by Pool, the stream that follows
// the magic number.
func (b *Builder) Header() []byte {
	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, b.minor)
	binary.Write(&out, binary.BigEndian, b.major)
	out.Write(b.Pool())
	return out.Bytes()
}

// Bytes returns a class file prefix: magic, versions and constant pool.
func (b *Builder) Bytes() []byte {
	return append([]byte{0xCA, 0xFE, 0xBA, 0xBE}, b.Header()...)
}
