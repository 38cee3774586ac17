package errors

import (
	"fmt"
	"strings"
)

// Append combines any number of errors into a single one. Nil errors are
// ignored. If all given errors are nil, nil is returned. Multi errors are
// flattened so that the result is never nested.
func Append(errs ...error) error {
	var res multiError
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiError); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiError []error

func (errs multiError) Error() string {
	switch len(errs) {
	case 0:
		return "<nil>"
	case 1:
		return errs[0].Error()
	}
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(errs), strings.Join(msgs, "\n\t"))
}

// Code returns the code of the first contained error, consistent with a
// fail fast processing of the collection.
func (errs multiError) Code() uint32 {
	if len(errs) == 0 {
		return 0
	}
	return Code(errs[0])
}

// Unpack implements the unpacker interface and gives access to all
// contained errors.
func (errs multiError) Unpack() []error {
	return errs
}

// unpacker is implemented by errors that are a collection of other
// errors.
type unpacker interface {
	Unpack() []error
}
