package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v2"

	"github.com/printfn/hextoggle/encoding/hexdump"
	"github.com/printfn/hextoggle/env"
	"github.com/printfn/hextoggle/errors"
	"github.com/printfn/hextoggle/fileutil"
	"github.com/printfn/hextoggle/log"
	"github.com/printfn/hextoggle/log/rotation"
	"github.com/printfn/hextoggle/metrics"
	"github.com/printfn/hextoggle/toggle"
)

// Exit statuses.
const (
	exitOK = iota
	exitInvalidArgs
	exitOpen
	exitCleanup
	exitInvalidInput
	exitInternal
)

var (
	errInvalidArgs = errors.New("invalid arguments")
	errOpen        = errors.New("failed to open files")
	errCleanup     = errors.New("failed to clean up files")
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

var (
	blockBatch = env.Int("HEXTOGGLE_BLOCK_BATCH", hexdump.DefaultBatchBlocks)
	logFile    = env.String("HEXTOGGLE_LOG_FILE", "")
	logSize    = env.Int("HEXTOGGLE_LOG_SIZE", 5e6)
	logCount   = env.Int("HEXTOGGLE_LOG_COUNT", 3)
)

func main() {
	ctx := context.Background()
	err := env.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hextoggle: %v\n", err)
		os.Exit(exitInvalidArgs)
	}

	var lf *rotation.File
	if *logFile != "" {
		lf = rotation.Create(*logFile, *logSize, *logCount)
		log.SetOutput(lf)
	}
	log.SetPrefix("app", "hextoggle", "pid", os.Getpid())

	code := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr)
	if lf != nil {
		lf.Close()
	}
	os.Exit(code)
}

// job is one conversion, as described by the command line.
type job struct {
	in, out operand
	mode    toggle.Mode
	dryRun  bool
	verbose bool
	batch   int
}

func (j *job) logf(ctx context.Context, format string, a ...interface{}) {
	if j.verbose {
		log.Printf(ctx, format, a...)
	}
}

// run executes the command line in args
// and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printkv(ctx,
				log.KeyMessage, "panic",
				log.KeyError, r,
				log.KeyStack, debug.Stack(),
			)
			fmt.Fprintf(stderr, "hextoggle: %v: %v\n", toggle.ErrInternal, r)
			code = exitInternal
		}
	}()

	flags, operands := splitArgs(args[1:])
	app := newApp(stderr, func(c *cli.Context) error {
		j, err := newJob(c, operands)
		if err != nil {
			cli.ShowAppHelp(c)
			return err
		}
		return j.run(ctx, stdin, stdout)
	})

	err := app.Run(append([]string{args[0]}, flags...))
	if err != nil {
		fmt.Fprintf(stderr, "hextoggle: %v\n", err)
		return exitStatus(err)
	}
	return exitOK
}

func newJob(c *cli.Context, operands []operand) (*job, error) {
	j := &job{
		dryRun:  c.Bool("dry-run"),
		verbose: c.Bool("verbose"),
		batch:   *blockBatch,
	}
	switch {
	case c.Bool("decode") && c.Bool("encode"):
		return nil, errors.WithDetail(errInvalidArgs, "--decode and --encode are exclusive")
	case c.Bool("decode"):
		j.mode = toggle.Decode
	case c.Bool("encode"):
		j.mode = toggle.Encode
	}

	var err error
	j.in, j.out, err = resolveOperands(operands, j.mode != toggle.Auto)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (j *job) run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	ctx = log.AddPrefixkv(ctx, "input", j.in, "output", j.out)

	r := stdin
	if j.in.stdio {
		j.logf(ctx, "reading from stdin")
	} else {
		f, err := os.Open(j.in.name)
		if err != nil {
			return errors.Sub(errOpen, errors.Wrap(err))
		}
		defer f.Close()
		r = f
		j.logf(ctx, "reading from input file")
	}

	var (
		w       *bufio.Writer
		pending *fileutil.Pending
		direct  *os.File
	)
	switch {
	case j.dryRun:
		j.logf(ctx, "dry run: not writing to any output file")
	case j.out.stdio:
		w = bufio.NewWriter(stdout)
		j.logf(ctx, "writing to stdout")
	case inPlace(j.in, j.out):
		var err error
		pending, err = fileutil.CreateTemp(j.out.name)
		if err != nil {
			return errors.Sub(errOpen, err)
		}
		defer pending.Abort()
		w = bufio.NewWriter(pending)
		j.logf(ctx, "writing to temporary file %s", pending.Name())
	default:
		var err error
		direct, err = os.Create(j.out.name)
		if err != nil {
			return errors.Sub(errOpen, errors.Wrap(err))
		}
		defer direct.Close()
		w = bufio.NewWriter(direct)
		j.logf(ctx, "writing directly to output file")
	}

	opt := toggle.Options{Mode: j.mode, BatchBlocks: j.batch}
	var rep *toggle.Report
	var err error
	if w == nil {
		rep, err = toggle.Convert(nil, r, opt)
	} else {
		rep, err = toggle.Convert(w, r, opt)
	}
	if err != nil {
		return err
	}
	if w != nil {
		if err := w.Flush(); err != nil {
			return errors.Wrap(err, "writing output")
		}
	}
	if direct != nil {
		if err := direct.Close(); err != nil {
			return errors.Wrap(err, "closing output")
		}
	}
	if pending != nil {
		if f, ok := r.(*os.File); ok {
			f.Close()
		}
		j.logf(ctx, "moving file %s to %s", pending.Name(), pending.Target())
		if err := pending.Commit(); err != nil {
			return errors.Sub(errCleanup, err)
		}
	}

	if j.verbose {
		kv := []interface{}{
			log.KeyMessage, "converted",
			"direction", rep.Mode,
			"fallback", rep.Fallback,
			"bytes_in", rep.BytesRead,
			"bytes_out", rep.BytesWritten,
			"sha3_256", hex.EncodeToString(rep.Digest),
		}
		log.Printkv(ctx, append(kv, metrics.Keyvals()...)...)
	}
	return nil
}

func exitStatus(err error) int {
	switch root := errors.Root(err); root.(type) {
	case *hexdump.FormatError:
		return exitInvalidInput
	default:
		switch root {
		case errInvalidArgs:
			return exitInvalidArgs
		case errCleanup:
			return exitCleanup
		case toggle.ErrInternal:
			return exitInternal
		}
	}
	// Everything else is an I/O failure: opening files,
	// or reading and writing them midway.
	return exitOpen
}
