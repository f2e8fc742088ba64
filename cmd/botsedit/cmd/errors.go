package cmd

import (
	"errors"

	"github.com/ssargent/botsedit/pkg/codec"
	"github.com/ssargent/botsedit/pkg/session"
	"github.com/ssargent/botsedit/pkg/stash"
)

// describeError turns an error into the message shown to the user,
// prefixed by what kind of failure it is.
func describeError(err error) string {
	var ioErr *codec.IOError
	switch {
	case errors.As(err, &ioErr):
		return "cannot access file: " + err.Error()
	case errors.Is(err, codec.ErrFormat):
		return "invalid data: " + err.Error()
	case errors.Is(err, codec.ErrIndex):
		return "no such record: " + err.Error()
	case errors.Is(err, session.ErrNoSelection):
		return "no record selected, run 'botsedit select <index>' first"
	case errors.Is(err, session.ErrUnknownField):
		return err.Error() + ", run 'botsedit fields' for the list"
	case errors.Is(err, stash.ErrNotFound):
		return err.Error()
	default:
		return err.Error()
	}
}
