package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/cpdump/classfile"
)

type JSONEncoder struct {
	w     io.Writer
	opts  options
	class *classfile.ClassFile
	errs  []error
}

func NewJSONEncoder(w io.Writer, opts ...Option) *JSONEncoder {
	return &JSONEncoder{w: w, opts: newOptions(opts)}
}

func (e *JSONEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	text = append(text, '\n')
	if _, err = e.w.Write(text); err != nil {
		return err
	}
	report(e.opts.diag, e.errs)
	return nil
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildClassData()
	return json.MarshalIndent(data, "", "  ")
}

// Diagnostics returns the per-entry errors of the last encode.
func (e *JSONEncoder) Diagnostics() []error {
	return e.errs
}

type jsonClass struct {
	Version           jsonVersion `json:"version"`
	ConstantPoolCount uint16      `json:"constantPoolCount"`
	ConstantPool      []jsonEntry `json:"constantPool"`
}

type jsonVersion struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

type jsonEntry struct {
	Index   uint16         `json:"index"`
	Tag     string         `json:"tag"`
	Fields  map[string]any `json:"fields,omitempty"`
	Value   string         `json:"value,omitempty"`
	Comment string         `json:"comment,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (e *JSONEncoder) buildClassData() jsonClass {
	c := e.class
	data := jsonClass{
		Version:           jsonVersion{Major: c.MajorVersion, Minor: c.MinorVersion},
		ConstantPoolCount: c.ConstantPoolCount,
		ConstantPool:      make([]jsonEntry, 0, len(c.ConstantPool)),
	}

	e.errs = nil
	for pos, entry := range c.ConstantPool {
		if entry == nil {
			continue
		}
		index := uint16(pos + 1)
		je := jsonEntry{
			Index:  index,
			Tag:    entry.Tag().String(),
			Fields: entryFields(entry),
		}
		r, err := render(c.ConstantPool, entry)
		if err != nil {
			err = &EntryError{Index: index, Tag: entry.Tag(), Err: err}
			e.errs = append(e.errs, err)
			je.Error = err.Error()
		} else {
			je.Value = r.value
			je.Comment = r.comment
		}
		data.ConstantPool = append(data.ConstantPool, je)
	}
	return data
}

func entryFields(entry classfile.ConstantPoolEntry) map[string]any {
	switch e := entry.(type) {
	case *classfile.ConstantClassInfo:
		return map[string]any{"nameIndex": e.NameIndex}
	case *classfile.ConstantFieldrefInfo:
		return map[string]any{"classIndex": e.ClassIndex, "nameAndTypeIndex": e.NameAndTypeIndex}
	case *classfile.ConstantMethodrefInfo:
		return map[string]any{"classIndex": e.ClassIndex, "nameAndTypeIndex": e.NameAndTypeIndex}
	case *classfile.ConstantInterfaceMethodrefInfo:
		return map[string]any{"classIndex": e.ClassIndex, "nameAndTypeIndex": e.NameAndTypeIndex}
	case *classfile.ConstantNameAndTypeInfo:
		return map[string]any{"nameIndex": e.NameIndex, "descriptorIndex": e.DescriptorIndex}
	case *classfile.ConstantStringInfo:
		return map[string]any{"stringIndex": e.StringIndex}
	case *classfile.ConstantIntegerInfo:
		return map[string]any{"bytes": e.Bytes}
	case *classfile.ConstantFloatInfo:
		return map[string]any{"bytes": e.Bytes}
	case *classfile.ConstantLongInfo:
		return map[string]any{"highBytes": e.HighBytes, "lowBytes": e.LowBytes}
	case *classfile.ConstantDoubleInfo:
		return map[string]any{"highBytes": e.HighBytes, "lowBytes": e.LowBytes}
	case *classfile.ConstantUtf8Info:
		return map[string]any{"length": len(e.Bytes)}
	case *classfile.ConstantMethodHandleInfo:
		return map[string]any{"referenceKind": uint8(e.ReferenceKind), "referenceIndex": e.ReferenceIndex}
	case *classfile.ConstantMethodTypeInfo:
		return map[string]any{"descriptorIndex": e.DescriptorIndex}
	case *classfile.ConstantInvokeDynamicInfo:
		return map[string]any{"bootstrapMethodAttrIndex": e.BootstrapMethodAttrIndex, "nameAndTypeIndex": e.NameAndTypeIndex}
	}
	return nil
}
