package classfile

import "strconv"

// ClassFile holds the parts of a class file this package reads: the version
// header and the constant pool.
type ClassFile struct {
	MinorVersion      uint16
	MajorVersion      uint16
	ConstantPoolCount uint16
	ConstantPool      ConstantPool
}

// Version returns the class file version as "major.minor".
func (cf *ClassFile) Version() string {
	return strconv.Itoa(int(cf.MajorVersion)) + "." + strconv.Itoa(int(cf.MinorVersion))
}
