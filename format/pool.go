package format

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/cpdump/classfile"
)

// Line is one rendered constant pool entry.
type Line struct {
	Index uint16
	Text  string
}

// EntryError reports a constant pool entry that could not be rendered.
type EntryError struct {
	Index uint16
	Tag   classfile.ConstantTag
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("constant pool entry #%d (%s): %v", e.Index, e.Tag, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// rendering is the value column and optional comment of an entry.
type rendering struct {
	kind    string
	value   string
	comment string
}

func (r rendering) line(index uint16) string {
	pad := "\t\t"
	if len(r.kind) > 10 {
		pad = "\t"
	}
	text := "#" + strconv.Itoa(int(index)) + " = " + r.kind + pad + r.value
	if r.comment != "" {
		text += "\t\t// " + r.comment
	}
	return text
}

// FormatPool renders every stored entry of cp in index order. Ghost slots
// after Long and Double entries produce nothing. Entries that cannot be
// rendered are left out of the listing and reported as *EntryError.
func FormatPool(cp classfile.ConstantPool) ([]Line, []error) {
	lines := make([]Line, 0, len(cp))
	var errs []error
	for pos, entry := range cp {
		if entry == nil {
			continue
		}
		index := uint16(pos + 1)
		r, err := render(cp, entry)
		if err != nil {
			errs = append(errs, &EntryError{Index: index, Tag: entry.Tag(), Err: err})
			continue
		}
		lines = append(lines, Line{Index: index, Text: r.line(index)})
	}
	return lines, errs
}

// FormatEntry renders the single entry at index.
func FormatEntry(cp classfile.ConstantPool, index uint16) (string, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return "", err
	}
	r, err := render(cp, entry)
	if err != nil {
		return "", &EntryError{Index: index, Tag: entry.Tag(), Err: err}
	}
	return r.line(index), nil
}

func render(cp classfile.ConstantPool, entry classfile.ConstantPoolEntry) (rendering, error) {
	r := rendering{kind: entry.Tag().String()}

	switch e := entry.(type) {
	case *classfile.ConstantClassInfo:
		name, err := cp.ResolveUtf8(e.NameIndex)
		if err != nil {
			return r, err
		}
		r.value = ref(e.NameIndex)
		r.comment = string(name)

	case *classfile.ConstantFieldrefInfo:
		return renderMember(cp, r, e.ClassIndex, e.NameAndTypeIndex)

	case *classfile.ConstantMethodrefInfo:
		return renderMember(cp, r, e.ClassIndex, e.NameAndTypeIndex)

	case *classfile.ConstantInterfaceMethodrefInfo:
		return renderMember(cp, r, e.ClassIndex, e.NameAndTypeIndex)

	case *classfile.ConstantNameAndTypeInfo:
		name, err := cp.ResolveUtf8(e.NameIndex)
		if err != nil {
			return r, err
		}
		descriptor, err := cp.ResolveUtf8(e.DescriptorIndex)
		if err != nil {
			return r, err
		}
		r.value = ref(e.NameIndex) + ":" + ref(e.DescriptorIndex)
		r.comment = string(name) + ":" + string(descriptor)

	case *classfile.ConstantStringInfo:
		s, err := cp.ResolveUtf8(e.StringIndex)
		if err != nil {
			return r, err
		}
		r.value = ref(e.StringIndex)
		r.comment = string(s)

	case *classfile.ConstantIntegerInfo:
		r.value = strconv.FormatInt(int64(e.Value()), 10)

	case *classfile.ConstantFloatInfo:
		r.value = formatFloat(e.Bytes)

	case *classfile.ConstantLongInfo:
		r.value = strconv.FormatInt(e.Value(), 10) + "l"

	case *classfile.ConstantDoubleInfo:
		r.value = formatDouble(e.Bits())

	case *classfile.ConstantUtf8Info:
		r.value = string(e.Display())

	case *classfile.ConstantMethodHandleInfo:
		kind, err := e.ReferenceKind.Name()
		if err != nil {
			return r, err
		}
		className, name, descriptor, err := cp.MemberRef(e.ReferenceIndex)
		if err != nil {
			return r, err
		}
		r.value = strconv.Itoa(int(e.ReferenceKind)) + ":" + ref(e.ReferenceIndex)
		r.comment = kind + " " + className + "." + name + ":" + descriptor

	case *classfile.ConstantMethodTypeInfo:
		descriptor, err := cp.ResolveUtf8(e.DescriptorIndex)
		if err != nil {
			return r, err
		}
		r.value = ref(e.DescriptorIndex)
		r.comment = string(descriptor)

	case *classfile.ConstantInvokeDynamicInfo:
		name, descriptor, err := cp.NameAndType(e.NameAndTypeIndex)
		if err != nil {
			return r, err
		}
		r.value = ref(e.BootstrapMethodAttrIndex) + ":" + ref(e.NameAndTypeIndex)
		r.comment = ref(e.BootstrapMethodAttrIndex) + ":" + name + ":" + descriptor

	case *classfile.ConstantUnknownInfo:
		return r, fmt.Errorf("%w: tag byte %d", classfile.ErrUnrecognizedTag, e.RawTag)

	default:
		return r, fmt.Errorf("%w: %T", classfile.ErrUnrecognizedTag, entry)
	}

	return r, nil
}

func renderMember(cp classfile.ConstantPool, r rendering, classIndex, natIndex uint16) (rendering, error) {
	className, err := cp.ResolveUtf8(classIndex)
	if err != nil {
		return r, err
	}
	name, descriptor, err := cp.NameAndType(natIndex)
	if err != nil {
		return r, err
	}
	r.value = ref(classIndex) + "." + ref(natIndex)
	r.comment = string(className) + "." + name + ":" + descriptor
	return r, nil
}

func ref(index uint16) string {
	return "#" + strconv.Itoa(int(index))
}
