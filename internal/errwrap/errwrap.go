// Package errwrap wraps and aggregates errors for the lexer pipeline.
package errwrap

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf adds a formatted message to err. A nil err stays nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Append joins err onto reterr. Either may be nil; with both nil the result
// is nil.
func Append(reterr, err error) error {
	if reterr == nil {
		return err
	}
	if err == nil {
		return reterr
	}
	return multierror.Append(reterr, err)
}

// Flatten returns the individual errors inside err. A plain error yields a
// single element slice, nil yields nil.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]error, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, Flatten(e)...)
		}
		return out
	}
	return []error{err}
}

// Cause unwraps err down to the error that was first wrapped.
func Cause(err error) error {
	return errors.Cause(err)
}

// String returns err.Error(), or an empty string for nil.
func String(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
