// Package maincmd implements the example host CLI's command dispatch: a
// Cmd struct populated by github.com/mna/mainer's flag parser, with one
// method per subcommand, mirroring the teacher's own internal/maincmd.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "calcscript"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> <path>
       %[1]s -h|--help
       %[1]s -v|--version

Example host CLI for the CalcScript runtime.

The <command> can be one of:
       run                       Parse and execute the script at <path>
                                 with the demo line-oriented parser, print
                                 its result.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --async                   Run the script through the async entry
                                 point instead of the sync one.
       --max-statements N        Override the statement quota (0 disables
                                 it). Overrides CALCSCRIPT_MAX_STATEMENTS
                                 and any --options-file value.
       --options-file PATH       Load execution options from a YAML file.

More information:
       https://github.com/craigahobbs/calcscript-go
`, binName)
)

// Cmd is the CLI's flag/state record, populated by mainer.Parser.Parse and
// dispatched by Main. Grounded on the teacher's own Cmd (internal/maincmd/
// maincmd.go), trimmed to this module's one subcommand.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Async         bool   `flag:"async"`
	MaxStatements int    `flag:"max-statements"`
	OptionsFile   string `flag:"options-file"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

// cmds maps a subcommand name to the Cmd method that implements it.
func (c *Cmd) cmds() map[string]func(context.Context, mainer.Stdio, []string) error {
	return map[string]func(context.Context, mainer.Stdio, []string) error{
		"run": c.Run,
	}
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	c.cmdFn = c.cmds()[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if cmdName == "run" && len(c.args[1:]) != 1 {
		return fmt.Errorf("run: exactly one script path must be provided")
	}
	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

// Main parses args, validates them, and dispatches to the matched
// subcommand, mirroring the teacher's own Cmd.Main.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}
