// Package env provides a convenient way to convert environment
// variables into Go data. It is similar in design to package
// flag.
package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/printfn/hextoggle/errors"
)

// ErrInvalid is the root of the error returned by Parse
// when one or more variables hold unparsable values.
var ErrInvalid = errors.New("invalid environment")

var funcs []func() error

// Int returns a new int pointer.
// When Parse is called,
// env var name will be parsed
// and the resulting value
// will be assigned to the returned location.
func Int(name string, value int) *int {
	p := new(int)
	IntVar(p, name, value)
	return p
}

// IntVar defines an int var with the specified
// name and default value. The argument p points
// to an int variable in which to store the
// value of the environment var.
func IntVar(p *int, name string, value int) {
	*p = value
	funcs = append(funcs, func() error {
		if s := os.Getenv(name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return errors.Wrap(err, name)
			}
			*p = v
		}
		return nil
	})
}

// Bool returns a new bool pointer.
// When Parse is called,
// env var name will be parsed
// and the resulting value
// will be assigned to the returned location.
// Parsing uses strconv.ParseBool.
func Bool(name string, value bool) *bool {
	p := new(bool)
	BoolVar(p, name, value)
	return p
}

// BoolVar defines a bool var with the specified
// name and default value. The argument p points
// to a bool variable in which to store the value
// of the environment variable.
func BoolVar(p *bool, name string, value bool) {
	*p = value
	funcs = append(funcs, func() error {
		if s := os.Getenv(name); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return errors.Wrap(err, name)
			}
			*p = v
		}
		return nil
	})
}

// String returns a new string pointer.
// When Parse is called,
// env var name will be assigned
// to the returned location.
func String(name string, value string) *string {
	p := new(string)
	StringVar(p, name, value)
	return p
}

// StringVar defines a string with the
// specified name and default value. The
// argument p points to a string variable in
// which to store the value of the environment
// var.
func StringVar(p *string, name string, value string) {
	*p = value
	funcs = append(funcs, func() error {
		if s := os.Getenv(name); s != "" {
			*p = s
		}
		return nil
	})
}

// Parse parses known env vars
// and assigns the values to the variables
// that were previously registered.
// Every variable is attempted; if any cannot be parsed,
// the returned error has root ErrInvalid
// and names each offending variable.
func Parse() error {
	var msgs []string
	for _, f := range funcs {
		if err := f(); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	if len(msgs) > 0 {
		return errors.WithDetail(ErrInvalid, strings.Join(msgs, "; "))
	}
	return nil
}
