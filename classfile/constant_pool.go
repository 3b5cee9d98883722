package classfile

import (
	"bytes"
	"math"
)

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Bytes []byte
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

// Display returns the payload up to its first newline. The returned slice
// aliases Bytes and must not be modified.
func (c *ConstantUtf8Info) Display() []byte {
	if i := bytes.IndexByte(c.Bytes, '\n'); i >= 0 {
		return c.Bytes[:i:i]
	}
	return c.Bytes
}

type ConstantIntegerInfo struct {
	Bytes uint32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }
func (c *ConstantIntegerInfo) Value() int32     { return int32(c.Bytes) }

type ConstantFloatInfo struct {
	Bytes uint32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }
func (c *ConstantFloatInfo) Value() float32   { return math.Float32frombits(c.Bytes) }

type ConstantLongInfo struct {
	HighBytes uint32
	LowBytes  uint32
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }
func (c *ConstantLongInfo) Bits() uint64     { return uint64(c.HighBytes)<<32 | uint64(c.LowBytes) }
func (c *ConstantLongInfo) Value() int64     { return int64(c.Bits()) }

type ConstantDoubleInfo struct {
	HighBytes uint32
	LowBytes  uint32
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }
func (c *ConstantDoubleInfo) Bits() uint64     { return uint64(c.HighBytes)<<32 | uint64(c.LowBytes) }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

// ConstantUnknownInfo marks a slot whose tag byte was not recognized. Nothing
// after the tag byte was consumed for it.
type ConstantUnknownInfo struct {
	RawTag uint8
}

func (c *ConstantUnknownInfo) Tag() ConstantTag { return ConstantTag(c.RawTag) }

// ConstantPool holds entry N at position N-1. The slot following a Long or
// Double entry is nil.
type ConstantPool []ConstantPoolEntry

// Entry returns the entry at the 1-based index.
func (cp ConstantPool) Entry(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp) {
		return nil, unresolvable(index, "is out of range")
	}
	entry := cp[index-1]
	if entry == nil {
		return nil, unresolvable(index, "is the unused slot of a wide entry")
	}
	return entry, nil
}

// Stored counts the slots that hold an entry, unknown ones included.
func (cp ConstantPool) Stored() int {
	n := 0
	for _, entry := range cp {
		if entry != nil {
			n++
		}
	}
	return n
}
