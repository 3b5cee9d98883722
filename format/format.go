package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/cpdump/classfile"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cpdump.format")

type Encoder interface {
	encoding.TextMarshaler
	Encode(cf *classfile.ClassFile) error
	Diagnostics() []error
}

type Option func(*options)

type options struct {
	diag io.Writer
}

// WithDiagnostics makes the encoder write one line per entry it could not
// render to w.
func WithDiagnostics(w io.Writer) Option {
	return func(o *options) {
		o.diag = w
	}
}

func newOptions(opts []Option) options {
	o := options{diag: io.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func report(w io.Writer, errs []error) {
	for _, err := range errs {
		log.Info(err.Error())
		fmt.Fprintln(w, err)
	}
}
