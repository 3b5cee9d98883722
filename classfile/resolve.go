package classfile

import "fmt"

// link returns the first index-valued field of entry. Resolution treats it as
// the entry's name index regardless of what the field means for that tag.
func link(entry ConstantPoolEntry) (uint16, bool) {
	switch e := entry.(type) {
	case *ConstantClassInfo:
		return e.NameIndex, true
	case *ConstantStringInfo:
		return e.StringIndex, true
	case *ConstantFieldrefInfo:
		return e.ClassIndex, true
	case *ConstantMethodrefInfo:
		return e.ClassIndex, true
	case *ConstantInterfaceMethodrefInfo:
		return e.ClassIndex, true
	case *ConstantNameAndTypeInfo:
		return e.NameIndex, true
	case *ConstantMethodHandleInfo:
		return e.ReferenceIndex, true
	case *ConstantMethodTypeInfo:
		return e.DescriptorIndex, true
	case *ConstantInvokeDynamicInfo:
		return e.BootstrapMethodAttrIndex, true
	}
	return 0, false
}

// ResolveUtf8 follows links from index until it lands on a Utf8 entry and
// returns its payload truncated at the first newline. Starting from anything
// other than a Utf8 or Class entry walks the entry's first index field, which
// is only meaningful for well-formed chains.
func (cp ConstantPool) ResolveUtf8(index uint16) ([]byte, error) {
	cur := index
	for hop := 0; hop <= MaxResolveHops; hop++ {
		entry, err := cp.Entry(cur)
		if err != nil {
			return nil, err
		}
		if utf, ok := entry.(*ConstantUtf8Info); ok {
			return utf.Display(), nil
		}
		next, ok := link(entry)
		if !ok {
			return nil, unresolvable(cur, fmt.Sprintf("is a %s entry with no name link", entry.Tag()))
		}
		cur = next
	}
	return nil, unresolvable(index, fmt.Sprintf("did not reach a Utf8 entry within %d hops", MaxResolveHops))
}

func (cp ConstantPool) resolveString(index uint16) (string, error) {
	b, err := cp.ResolveUtf8(index)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// pair returns the two index fields of an entry laid out like a member
// reference: Fieldref, Methodref, InterfaceMethodref, NameAndType and
// InvokeDynamic.
func (cp ConstantPool) pair(index uint16) (uint16, uint16, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return 0, 0, err
	}
	switch e := entry.(type) {
	case *ConstantFieldrefInfo:
		return e.ClassIndex, e.NameAndTypeIndex, nil
	case *ConstantMethodrefInfo:
		return e.ClassIndex, e.NameAndTypeIndex, nil
	case *ConstantInterfaceMethodrefInfo:
		return e.ClassIndex, e.NameAndTypeIndex, nil
	case *ConstantNameAndTypeInfo:
		return e.NameIndex, e.DescriptorIndex, nil
	case *ConstantInvokeDynamicInfo:
		return e.BootstrapMethodAttrIndex, e.NameAndTypeIndex, nil
	}
	return 0, 0, unresolvable(index, fmt.Sprintf("is a %s entry, not a reference", entry.Tag()))
}

// NameAndType resolves the entry at index as a name and descriptor pair.
func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	nameIndex, descriptorIndex, err := cp.pair(index)
	if err != nil {
		return "", "", err
	}
	if name, err = cp.resolveString(nameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.resolveString(descriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// MemberRef resolves a Fieldref, Methodref or InterfaceMethodref at index into
// the owning class name and the member's name and descriptor.
func (cp ConstantPool) MemberRef(index uint16) (className, name, descriptor string, err error) {
	classIndex, natIndex, err := cp.pair(index)
	if err != nil {
		return "", "", "", err
	}
	if className, err = cp.resolveString(classIndex); err != nil {
		return "", "", "", err
	}
	if name, descriptor, err = cp.NameAndType(natIndex); err != nil {
		return "", "", "", err
	}
	return className, name, descriptor, nil
}

// ClassName resolves the Class entry at index to its internal name.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	entry, err := cp.Entry(index)
	if err != nil {
		return "", err
	}
	class, ok := entry.(*ConstantClassInfo)
	if !ok {
		return "", unresolvable(index, fmt.Sprintf("is a %s entry, not a Class", entry.Tag()))
	}
	return cp.resolveString(class.NameIndex)
}
