package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cpdump/classfile"
)

// TextEncoder writes the version header and constant pool in javap style.
type TextEncoder struct {
	w     io.Writer
	opts  options
	class *classfile.ClassFile
	errs  []error
}

func NewTextEncoder(w io.Writer, opts ...Option) *TextEncoder {
	return &TextEncoder{w: w, opts: newOptions(opts)}
}

func (e *TextEncoder) Encode(cf *classfile.ClassFile) error {
	e.class = cf
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err = e.w.Write(text); err != nil {
		return err
	}
	report(e.opts.diag, e.errs)
	return nil
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "minor version: %d\n", c.MinorVersion)
	fmt.Fprintf(&sb, "major version: %d\n\n", c.MajorVersion)

	lines, errs := FormatPool(c.ConstantPool)
	for _, line := range lines {
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}
	e.errs = errs

	return []byte(sb.String()), nil
}

// Diagnostics returns the per-entry errors of the last encode.
func (e *TextEncoder) Diagnostics() []error {
	return e.errs
}
