package classfile

import (
	"errors"
	"fmt"
)

var (
	ErrNotAClassFile           = errors.New("not a class file")
	ErrUnexpectedEOF           = errors.New("unexpected end of class file")
	ErrUnrecognizedTag         = errors.New("unrecognized constant pool tag")
	ErrUnresolvableReference   = errors.New("unresolvable constant pool reference")
	ErrInvalidMethodHandleKind = errors.New("invalid method handle reference kind")
)

func invalidKindError(k MethodHandleKind) error {
	return fmt.Errorf("%w: %d", ErrInvalidMethodHandleKind, k)
}

func unresolvable(index uint16, reason string) error {
	return fmt.Errorf("%w: #%d %s", ErrUnresolvableReference, index, reason)
}
