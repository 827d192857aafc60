// Package testutil holds assertions shared by the tests
// of several packages.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/printfn/hextoggle/errors"
)

var wd, _ = os.Getwd()

// ExpectEqual reports a test error, with a diff,
// if actual and expected differ.
func ExpectEqual(t testing.TB, actual, expected interface{}, msg string) {
	t.Helper()
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("%s: mismatch (-expected +actual):\n%s\n%s", msg, diff, stackTrace())
	}
}

// ExpectError reports a test error if the root of
// the error returned by fn is not expected.
func ExpectError(t testing.TB, expected error, msg string, fn func() error) {
	t.Helper()
	actual := fn()
	if expected != errors.Root(actual) {
		t.Errorf("%s: got error %v, expected %v\n%s", msg, actual, expected, stackTrace())
	}
}

// FatalErr fails the test, printing err
// along with the stack trace it carries, if any.
func FatalErr(t testing.TB, err error) {
	t.Helper()
	args := []interface{}{err}
	for _, frame := range errors.Stack(err) {
		file := frame.File
		if rel, err := filepath.Rel(wd, file); err == nil && !strings.HasPrefix(rel, "../") {
			file = rel
		}
		funcname := frame.Func[strings.LastIndexByte(frame.Func, '/')+1:]
		funcname = funcname[strings.IndexByte(funcname, '.')+1:]
		s := fmt.Sprintf("\n%s:%d: %s", file, frame.Line, funcname)
		args = append(args, s)
	}
	t.Fatal(args...)
}

func stackTrace() []byte {
	buf := make([]byte, 16384)
	n := runtime.Stack(buf, false)
	return buf[:n]
}
