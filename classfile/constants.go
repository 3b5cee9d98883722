package classfile

import "strconv"

const (
	Magic = 0xCAFEBABE
)

// MaxResolveHops bounds how many links ResolveUtf8 follows before giving up.
const MaxResolveHops = 32

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantInvokeDynamic      ConstantTag = 18
)

var tagNames = map[ConstantTag]string{
	ConstantUtf8:               "Utf8",
	ConstantInteger:            "Integer",
	ConstantFloat:              "Float",
	ConstantLong:               "Long",
	ConstantDouble:             "Double",
	ConstantClass:              "Class",
	ConstantString:             "String",
	ConstantFieldref:           "Fieldref",
	ConstantMethodref:          "Methodref",
	ConstantInterfaceMethodref: "InterfaceMethodref",
	ConstantNameAndType:        "NameAndType",
	ConstantMethodHandle:       "MethodHandle",
	ConstantMethodType:         "MethodType",
	ConstantInvokeDynamic:      "InvokeDynamic",
}

// String returns the javap name of the tag, or "Unknown(N)".
func (t ConstantTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown(" + strconv.Itoa(int(t)) + ")"
}

// Known reports whether t is one of the tags this package decodes.
func (t ConstantTag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

// Wide reports whether entries with this tag occupy two pool slots.
func (t ConstantTag) Wide() bool {
	return t == ConstantLong || t == ConstantDouble
}

type MethodHandleKind uint8

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

var referenceKindNames = [...]string{
	"REF_getField",
	"REF_getStatic",
	"REF_putField",
	"REF_putStatic",
	"REF_invokeVirtual",
	"REF_invokeStatic",
	"REF_invokeSpecial",
	"REF_newInvokeSpecial",
	"REF_invokeInterface",
}

func (k MethodHandleKind) Valid() bool {
	return k >= RefGetField && k <= RefInvokeInterface
}

// Name returns the REF_ name of the kind. Kinds outside 1..9 are an error.
func (k MethodHandleKind) Name() (string, error) {
	if !k.Valid() {
		return "", invalidKindError(k)
	}
	return referenceKindNames[k-1], nil
}

func (k MethodHandleKind) String() string {
	name, err := k.Name()
	if err != nil {
		return "REF_" + strconv.Itoa(int(k))
	}
	return name
}
