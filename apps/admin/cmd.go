package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/schoolms/core"
	"github.com/trezcool/schoolms/core/school"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

const forceFlag = "-force"

type commandLine struct {
	conf *core.Config
	log  core.Logger
	svc  *school.Service
	reg  *school.Registry
	out  io.Writer

	loadErr error // records rejected while loading reg
	force   bool  // save even when loadErr is set
}

type command struct {
	name          string
	usage         string
	needsRegistry bool
	mutates       bool
	run           func(cli *commandLine, args []string) error
}

var commands = []command{
	{name: "add-student", needsRegistry: true, usage: "-name NAME -age AGE -email EMAIL -id ID - add a student", mutates: true, run: (*commandLine).addStudent},
	{name: "add-instructor", needsRegistry: true, usage: "-name NAME -age AGE -email EMAIL -id ID - add an instructor", mutates: true, run: (*commandLine).addInstructor},
	{name: "add-course", needsRegistry: true, usage: "-id ID -name NAME - add a course", mutates: true, run: (*commandLine).addCourse},
	{name: "enroll", needsRegistry: true, usage: "-student ID -course ID [-by-name] - register a student in a course", mutates: true, run: (*commandLine).enroll},
	{name: "assign", needsRegistry: true, usage: "-instructor ID -course ID [-by-name] - assign an instructor to a course", mutates: true, run: (*commandLine).assign},
	{name: "edit", needsRegistry: true, usage: "-type student|instructor|course -id ID [-name NAME -age AGE -email EMAIL -new-id ID] - edit a record", mutates: true, run: (*commandLine).edit},
	{name: "delete", needsRegistry: true, usage: "-type student|instructor|course -id ID - delete a record", mutates: true, run: (*commandLine).remove},
	{name: "list", needsRegistry: true, usage: "[-format table|json|yaml] - display all records", run: (*commandLine).list},
	{name: "search", needsRegistry: true, usage: "-by name|id|course -q TEXT [-format table|json|yaml] - search records", run: (*commandLine).search},
	{name: "introduce", needsRegistry: true, usage: "-type student|instructor -id ID - print a self introduction", run: (*commandLine).introduce},
	{name: "export-csv", needsRegistry: true, usage: "[-o FILE] - write the enrollment roster as CSV", run: (*commandLine).exportCSV},
	{name: "show-csv", usage: "[-f FILE] [-q TEXT] - print the CSV roster rows matching TEXT", run: (*commandLine).showCSV},
	{name: "roster-add", usage: "[-f FILE] -student NAME -course NAME - append a registration row to the CSV roster", run: (*commandLine).rosterAdd},
	{name: "roster-edit", usage: "[-f FILE] -row N -student NAME -course NAME - edit a CSV roster row", run: (*commandLine).rosterEdit},
	{name: "roster-delete", usage: "[-f FILE] -row N - delete a CSV roster row", run: (*commandLine).rosterDelete},
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintf(cli.out, "Usage: admin [%s] COMMAND [flags]\n", forceFlag)
	_, _ = fmt.Fprintf(cli.out, "  %s saves record changes even when some saved records were rejected (they are dropped)\n", forceFlag)
	_, _ = fmt.Fprintln(cli.out, "Commands:")
	for _, cmd := range commands {
		_, _ = fmt.Fprintf(cli.out, "  %s %s\n", cmd.name, cmd.usage)
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses args into fs, mapping -h to errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) > 1 && args[1] == forceFlag {
		cli.force = true
		args = append([]string{args[0]}, args[2:]...)
	}
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	for _, cmd := range commands {
		if cmd.name != args[1] {
			continue
		}
		if cmd.needsRegistry {
			if err := cli.load(); err != nil {
				return err
			}
		}
		if cmd.mutates && cli.loadErr != nil && !cli.force {
			return errors.Wrapf(cli.loadErr, "refusing to save over rejected records (rerun with %s to drop them)", forceFlag)
		}
		if err := cmd.run(cli, args[2:]); err != nil {
			return err
		}
		if cmd.mutates {
			return cli.svc.Save(cli.reg)
		}
		return nil
	}
	cli.printUsage()
	return errHelp
}

// load reads the registry once. Malformed records are reported by the
// service and skipped; the remaining records can still be read, and the
// rejection is kept in loadErr so that nothing is saved over them.
func (cli *commandLine) load() error {
	if cli.reg != nil {
		return nil
	}
	reg, err := cli.svc.Load()
	if reg == nil {
		return err
	}
	cli.reg, cli.loadErr = reg, err
	return nil
}

func (cli *commandLine) isTerminal() bool {
	f, ok := cli.out.(*os.File)
	return ok && isTerminalFunc(int(f.Fd()))
}

// table prints rows as aligned columns. The header is only printed to a terminal.
func (cli *commandLine) table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	if cli.isTerminal() {
		_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	}
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

// printError writes err for a human; validation errors get one line per field.
func printError(w io.Writer, err error) {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		_, _ = fmt.Fprintln(w, "invalid input:")
		for _, fe := range vErr.Fields {
			_, _ = fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Reason)
		}
		return
	}
	_, _ = fmt.Fprintf(w, "error: %v\n", err)
}
