package main

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/printfn/hextoggle/errors"
)

const helpTemplate = `{{.Name}} v{{.Version}}

Usage: {{.Name}} [file]            # toggle file in-place
       {{.Name}} [input] [output]  # read input, write to output
       {{.Name}} -                 # read from stdin, write to stdout

Options:
{{range .VisibleFlags}}   {{.}}
{{end}}
Return codes:
  0   success
  1   invalid arguments
  2   failed to open input files
  3   failed to clean up files
  4   invalid input
  5   internal assertion failed
`

func init() {
	// -v is taken by --verbose.
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

// newApp returns the command line parser. It writes help and
// version text to w, and never calls os.Exit.
func newApp(w io.Writer, action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name:                   "hextoggle",
		Usage:                  "convert binary files to hex dumps and back",
		Version:                version,
		Writer:                 w,
		ErrWriter:              w,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		CustomAppHelpTemplate:  helpTemplate,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "discard results",
			},
			&cli.BoolFlag{
				Name:    "decode",
				Aliases: []string{"d"},
				Usage:   "force decode (hex to binary)",
			},
			&cli.BoolFlag{
				Name:    "encode",
				Aliases: []string{"e"},
				Usage:   "force encode (binary to hex)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log each step to stderr",
				EnvVars: []string{"HEXTOGGLE_VERBOSE"},
			},
		},
		Action: action,
		OnUsageError: func(c *cli.Context, err error, _ bool) error {
			cli.ShowAppHelp(c)
			return errors.WithDetail(errInvalidArgs, err.Error())
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}
