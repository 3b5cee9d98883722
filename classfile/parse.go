package classfile

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cpdump.classfile")

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse checks the magic number and then reads the header and constant pool.
func Parse(rd io.Reader) (*ClassFile, error) {
	if err := CheckMagic(rd); err != nil {
		return nil, err
	}
	return ParseHeader(rd)
}

// CheckMagic consumes four bytes and fails with ErrNotAClassFile unless they
// are 0xCAFEBABE.
func CheckMagic(rd io.Reader) error {
	r := NewReader(rd)
	magic := r.ReadU4()
	if r.Err() != nil {
		return fmt.Errorf("%w: failed to read magic: %w", ErrNotAClassFile, r.Err())
	}
	if magic != Magic {
		return fmt.Errorf("%w: invalid magic number 0x%X (expected 0xCAFEBABE)", ErrNotAClassFile, magic)
	}
	return nil
}

// ParseHeader reads the version fields and the constant pool from a stream
// positioned right after the magic number.
func ParseHeader(rd io.Reader) (*ClassFile, error) {
	r := NewReader(rd)

	cf := &ClassFile{
		MinorVersion: r.ReadU2(),
		MajorVersion: r.ReadU2(),
	}
	if r.Err() != nil {
		return nil, fmt.Errorf("failed to read version: %w", r.Err())
	}

	cf.ConstantPoolCount = r.ReadU2()
	if r.Err() != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", r.Err())
	}

	cp, err := DecodeConstantPool(cf.ConstantPoolCount, r)
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = cp
	log.Debugf("class file %s: %d constant pool slots, %d stored", cf.Version(), len(cp), cp.Stored())
	return cf, nil
}

// DecodeConstantPool reads count-1 pool slots from r. Long and Double entries
// take two slots, the second of which is left nil. An unrecognized tag
// becomes a ConstantUnknownInfo and decoding carries on with the next byte.
// Running out of input fails the whole decode.
func DecodeConstantPool(count uint16, r *Reader) (ConstantPool, error) {
	if count == 0 {
		return ConstantPool{}, nil
	}

	cp := make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		entry, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cp[i-1] = entry
		if unknown, ok := entry.(*ConstantUnknownInfo); ok {
			log.Infof("constant pool entry #%d: unrecognized tag byte %d", i, unknown.RawTag)
			continue
		}
		if entry.Tag().Wide() {
			i++
		}
	}
	return cp, nil
}

func readConstantPoolEntry(r *Reader) (ConstantPoolEntry, error) {
	tag := ConstantTag(r.ReadU1())
	if r.Err() != nil {
		return nil, r.Err()
	}

	var entry ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		length := r.ReadU2()
		entry = &ConstantUtf8Info{Bytes: r.ReadBytes(int(length))}

	case ConstantInteger:
		entry = &ConstantIntegerInfo{Bytes: r.ReadU4()}

	case ConstantFloat:
		entry = &ConstantFloatInfo{Bytes: r.ReadU4()}

	case ConstantLong:
		high := r.ReadU4()
		low := r.ReadU4()
		entry = &ConstantLongInfo{HighBytes: high, LowBytes: low}

	case ConstantDouble:
		high := r.ReadU4()
		low := r.ReadU4()
		entry = &ConstantDoubleInfo{HighBytes: high, LowBytes: low}

	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.ReadU2()}

	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.ReadU2()}

	case ConstantFieldref:
		classIndex := r.ReadU2()
		nameAndTypeIndex := r.ReadU2()
		entry = &ConstantFieldrefInfo{
			ClassIndex:       classIndex,
			NameAndTypeIndex: nameAndTypeIndex,
		}

	case ConstantMethodref:
		classIndex := r.ReadU2()
		nameAndTypeIndex := r.ReadU2()
		entry = &ConstantMethodrefInfo{
			ClassIndex:       classIndex,
			NameAndTypeIndex: nameAndTypeIndex,
		}

	case ConstantInterfaceMethodref:
		classIndex := r.ReadU2()
		nameAndTypeIndex := r.ReadU2()
		entry = &ConstantInterfaceMethodrefInfo{
			ClassIndex:       classIndex,
			NameAndTypeIndex: nameAndTypeIndex,
		}

	case ConstantNameAndType:
		nameIndex := r.ReadU2()
		descriptorIndex := r.ReadU2()
		entry = &ConstantNameAndTypeInfo{
			NameIndex:       nameIndex,
			DescriptorIndex: descriptorIndex,
		}

	case ConstantMethodHandle:
		referenceKind := MethodHandleKind(r.ReadU1())
		referenceIndex := r.ReadU2()
		entry = &ConstantMethodHandleInfo{
			ReferenceKind:  referenceKind,
			ReferenceIndex: referenceIndex,
		}

	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.ReadU2()}

	case ConstantInvokeDynamic:
		bootstrapMethodAttrIndex := r.ReadU2()
		nameAndTypeIndex := r.ReadU2()
		entry = &ConstantInvokeDynamicInfo{
			BootstrapMethodAttrIndex: bootstrapMethodAttrIndex,
			NameAndTypeIndex:         nameAndTypeIndex,
		}

	default:
		return &ConstantUnknownInfo{RawTag: uint8(tag)}, nil
	}

	if r.Err() != nil {
		return nil, fmt.Errorf("%s: %w", tag, r.Err())
	}
	return entry, nil
}
